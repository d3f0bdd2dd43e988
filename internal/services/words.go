package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/lexibazaar/marketplace/internal/access"
	"github.com/lexibazaar/marketplace/internal/entities"
)

type WordInput struct {
	DictionaryID uint   `json:"dictionary_id" validate:"required"`
	Word         string `json:"word" validate:"required,max=100"`
	Translation  string `json:"translation" validate:"required,max=100"`
	Example      string `json:"example"`
	ImageURL     string `json:"image_url" validate:"omitempty,url,max=2048"`
}

type WordService struct {
	dicts  DictionaryStore
	words  WordStore
	policy *access.Policy
	images ImageFinder
	logger *zap.Logger
}

func NewWordService(deps Dependencies) *WordService {
	return &WordService{
		dicts:  deps.Dictionaries,
		words:  deps.Words,
		policy: deps.Policy,
		images: deps.Images,
		logger: deps.logger(),
	}
}

// Create adds a word to a dictionary the caller owns. Without an image URL
// one is looked up using the word itself.
func (s *WordService) Create(ctx context.Context, userID uint, in WordInput) (*entities.Word, error) {
	in.Word = strings.TrimSpace(in.Word)
	in.Translation = strings.TrimSpace(in.Translation)
	in.Example = strings.TrimSpace(in.Example)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	dict, err := loadDictionary(ctx, s.dicts, in.DictionaryID)
	if err != nil {
		if errors.Is(err, ErrDictionaryNotFound) {
			return nil, ValidationError("validation failed", map[string]string{
				"dictionary_id": "dictionary does not exist",
			})
		}
		return nil, err
	}
	if !s.policy.CanModify(userID, dict) {
		return nil, ErrNotOwnerAddWords
	}

	if in.ImageURL == "" {
		in.ImageURL = lookupImage(ctx, s.images, s.logger, in.Word)
	}

	word := &entities.Word{
		DictionaryID: dict.ID,
		Word:         in.Word,
		Translation:  in.Translation,
		Example:      in.Example,
		ImageURL:     in.ImageURL,
	}
	if err := s.words.Create(ctx, word); err != nil {
		return nil, err
	}
	return word, nil
}

// List returns the words of a dictionary the caller owns or purchased.
func (s *WordService) List(ctx context.Context, userID, dictionaryID uint) ([]entities.Word, error) {
	dict, err := loadAccessible(ctx, s.dicts, s.policy, userID, dictionaryID)
	if err != nil {
		return nil, err
	}

	words, err := s.words.ListByDictionary(ctx, dict.ID)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []entities.Word{}
	}
	return words, nil
}
