// Package progress stores per-user learning progress for dictionaries.
package progress

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexibazaar/marketplace/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the progress record for (userID, dictionaryID),
// inserting an empty one if none exists. created is true only for the call
// that performed the insert; concurrent callers race on the unique index and
// exactly one of them wins.
func (r *Repository) GetOrCreate(ctx context.Context, userID, dictionaryID uint) (*entities.LearningProgress, bool, error) {
	fresh := entities.LearningProgress{
		UserID:       userID,
		DictionaryID: dictionaryID,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "dictionary_id"}},
			DoNothing: true,
		}).
		Create(&fresh)
	if result.Error != nil {
		return nil, false, fmt.Errorf("create progress: %w", result.Error)
	}
	created := result.RowsAffected == 1

	var progress entities.LearningProgress
	err := r.db.WithContext(ctx).
		Preload("LearnedWords", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Where("user_id = ? AND dictionary_id = ?", userID, dictionaryID).
		First(&progress).Error
	if err != nil {
		return nil, false, fmt.Errorf("load progress: %w", err)
	}
	return &progress, created, nil
}

// ReplaceLearnedWords swaps the learned-word set for words and bumps
// last_updated.
func (r *Repository) ReplaceLearnedWords(ctx context.Context, progress *entities.LearningProgress, words []entities.Word) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assoc := tx.Model(progress).Association("LearnedWords")
		if len(words) == 0 {
			if err := assoc.Clear(); err != nil {
				return err
			}
		} else if err := assoc.Replace(words); err != nil {
			return err
		}
		return tx.Model(progress).Update("last_updated", now).Error
	})
	if err != nil {
		return fmt.Errorf("replace learned words: %w", err)
	}

	progress.LearnedWords = words
	progress.LastUpdated = now
	return nil
}
