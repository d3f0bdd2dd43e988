package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/entities"
)

// Percentage returns learned as a whole-number share of total, rounding
// halves to even. An empty dictionary is 0% learned.
func Percentage(learned int, total int64) int {
	if total <= 0 || learned <= 0 {
		return 0
	}
	if int64(learned) >= total {
		return 100
	}
	return int(math.RoundToEven(float64(learned) / float64(total) * 100))
}

// ProgressInput is a partial update. A nil LearnedWords leaves the stored
// set alone; an empty slice clears it.
type ProgressInput struct {
	LearnedWords *[]uint `json:"learned_words"`
}

type ProgressService struct {
	dicts    DictionaryStore
	words    WordStore
	progress ProgressStore
	policy   *access.Policy
}

func NewProgressService(deps Dependencies) *ProgressService {
	return &ProgressService{
		dicts:    deps.Dictionaries,
		words:    deps.Words,
		progress: deps.Progress,
		policy:   deps.Policy,
	}
}

// Get returns the caller's progress on the dictionary, creating an empty
// record on first access.
func (s *ProgressService) Get(ctx context.Context, userID, dictionaryID uint) (*ProgressView, error) {
	dict, err := loadAccessible(ctx, s.dicts, s.policy, userID, dictionaryID)
	if err != nil {
		return nil, err
	}

	progress, _, err := s.progress.GetOrCreate(ctx, userID, dict.ID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, progress)
}

// Save replaces the learned-word set when one is given. created reports
// whether this call created the progress record.
func (s *ProgressService) Save(ctx context.Context, userID, dictionaryID uint, in ProgressInput) (*ProgressView, bool, error) {
	dict, err := loadAccessible(ctx, s.dicts, s.policy, userID, dictionaryID)
	if err != nil {
		return nil, false, err
	}

	var words []entities.Word
	if in.LearnedWords != nil {
		ids := uniqueIDs(*in.LearnedWords)
		words, err = s.words.FindInDictionary(ctx, dict.ID, ids)
		if err != nil {
			return nil, false, err
		}
		if len(words) != len(ids) {
			return nil, false, ValidationError("validation failed", map[string]string{
				"learned_words": fmt.Sprintf("words %s do not belong to this dictionary", formatIDs(missingIDs(ids, words))),
			})
		}
	}

	progress, created, err := s.progress.GetOrCreate(ctx, userID, dict.ID)
	if err != nil {
		return nil, false, err
	}
	if in.LearnedWords != nil {
		if err := s.progress.ReplaceLearnedWords(ctx, progress, words); err != nil {
			return nil, false, err
		}
	}

	view, err := s.view(ctx, progress)
	if err != nil {
		return nil, false, err
	}
	return view, created, nil
}

func (s *ProgressService) view(ctx context.Context, p *entities.LearningProgress) (*ProgressView, error) {
	total, err := s.words.CountByDictionary(ctx, p.DictionaryID)
	if err != nil {
		return nil, err
	}

	learned := p.LearnedWordIDs()
	sort.Slice(learned, func(i, j int) bool { return learned[i] < learned[j] })

	return &ProgressView{
		ID:                 p.ID,
		Dictionary:         p.DictionaryID,
		LearnedWords:       learned,
		LearnedWordsCount:  len(learned),
		TotalWords:         total,
		ProgressPercentage: Percentage(len(learned), total),
		LastUpdated:        p.LastUpdated,
	}, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func missingIDs(ids []uint, found []entities.Word) []uint {
	present := make(map[uint]bool, len(found))
	for _, w := range found {
		present[w.ID] = true
	}
	var missing []uint
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func formatIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
