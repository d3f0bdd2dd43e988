// Package words provides database operations for dictionary words.
package words

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lexibazaar/marketplace/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, word *entities.Word) error {
	if err := r.db.WithContext(ctx).Create(word).Error; err != nil {
		return fmt.Errorf("create word: %w", err)
	}
	return nil
}

// ListByDictionary returns the dictionary's words in insertion order.
func (r *Repository) ListByDictionary(ctx context.Context, dictionaryID uint) ([]entities.Word, error) {
	var words []entities.Word
	err := r.db.WithContext(ctx).
		Where("dictionary_id = ?", dictionaryID).
		Order("id").
		Find(&words).Error
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

func (r *Repository) CountByDictionary(ctx context.Context, dictionaryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Word{}).
		Where("dictionary_id = ?", dictionaryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return count, nil
}

// CountByDictionaries returns word counts keyed by dictionary id. Dictionaries
// without words are absent from the map.
func (r *Repository) CountByDictionaries(ctx context.Context, dictionaryIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(dictionaryIDs))
	if len(dictionaryIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		DictionaryID uint
		Count        int64
	}
	err := r.db.WithContext(ctx).Model(&entities.Word{}).
		Select("dictionary_id, COUNT(*) AS count").
		Where("dictionary_id IN ?", dictionaryIDs).
		Group("dictionary_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count words by dictionary: %w", err)
	}

	for _, row := range rows {
		counts[row.DictionaryID] = row.Count
	}
	return counts, nil
}

// FindInDictionary returns the words among ids that belong to the dictionary.
func (r *Repository) FindInDictionary(ctx context.Context, dictionaryID uint, ids []uint) ([]entities.Word, error) {
	var words []entities.Word
	if len(ids) == 0 {
		return words, nil
	}
	err := r.db.WithContext(ctx).
		Where("dictionary_id = ? AND id IN ?", dictionaryID, ids).
		Order("id").
		Find(&words).Error
	if err != nil {
		return nil, fmt.Errorf("find words in dictionary: %w", err)
	}
	return words, nil
}

// ExistsInDictionary is used by seeding to avoid inserting the same word twice.
func (r *Repository) ExistsInDictionary(ctx context.Context, dictionaryID uint, word string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Word{}).
		Where("dictionary_id = ? AND word = ?", dictionaryID, word).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check word: %w", err)
	}
	return count > 0, nil
}
