// Package dictionaries provides database operations for dictionaries,
// including the cascading delete that removes everything hanging off one.
package dictionaries

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, dict *entities.Dictionary) error {
	if err := r.db.WithContext(ctx).Create(dict).Error; err != nil {
		return fmt.Errorf("create dictionary: %w", err)
	}
	return nil
}

// GetByID returns gorm.ErrRecordNotFound when the dictionary does not exist.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Dictionary, error) {
	var dict entities.Dictionary
	if err := r.db.WithContext(ctx).First(&dict, id).Error; err != nil {
		return nil, err
	}
	return &dict, nil
}

// Update loads the dictionary inside a transaction, lets mutate change it and
// saves the result. An error from mutate rolls back and is returned as is.
// On postgres the row stays locked until commit, so concurrent updates of
// the same dictionary apply one after the other.
func (r *Repository) Update(ctx context.Context, id uint, mutate func(*entities.Dictionary) error) (*entities.Dictionary, error) {
	var dict entities.Dictionary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if database.SupportsRowLocks(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&dict, id).Error; err != nil {
			return err
		}

		if err := mutate(&dict); err != nil {
			return err
		}

		return tx.Save(&dict).Error
	})
	if err != nil {
		return nil, err
	}
	return &dict, nil
}

// Delete removes the dictionary together with its words, purchases, progress
// records and learned-word links in one transaction.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progressIDs := tx.Model(&entities.LearningProgress{}).Select("id").Where("dictionary_id = ?", id)
		wordIDs := tx.Model(&entities.Word{}).Select("id").Where("dictionary_id = ?", id)

		if err := tx.Exec(
			"DELETE FROM learning_progress_words WHERE learning_progress_id IN (?) OR word_id IN (?)",
			progressIDs, wordIDs,
		).Error; err != nil {
			return fmt.Errorf("delete learned words: %w", err)
		}
		if err := tx.Where("dictionary_id = ?", id).Delete(&entities.LearningProgress{}).Error; err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := tx.Where("dictionary_id = ?", id).Delete(&entities.Purchase{}).Error; err != nil {
			return fmt.Errorf("delete purchases: %w", err)
		}
		if err := tx.Where("dictionary_id = ?", id).Delete(&entities.Word{}).Error; err != nil {
			return fmt.Errorf("delete words: %w", err)
		}

		result := tx.Delete(&entities.Dictionary{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete dictionary: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListAccessible returns the dictionaries userID owns or has purchased,
// each once, ordered by id.
func (r *Repository) ListAccessible(ctx context.Context, userID uint) ([]entities.Dictionary, error) {
	var dicts []entities.Dictionary
	purchased := r.db.Model(&entities.Purchase{}).Select("dictionary_id").Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID, purchased).
		Order("id").
		Find(&dicts).Error
	if err != nil {
		return nil, fmt.Errorf("list accessible dictionaries: %w", err)
	}
	return dicts, nil
}

// ListForSale returns every dictionary currently listed in the marketplace.
func (r *Repository) ListForSale(ctx context.Context) ([]entities.Dictionary, error) {
	var dicts []entities.Dictionary
	err := r.db.WithContext(ctx).
		Where("is_for_sale = ?", true).
		Order("id").
		Find(&dicts).Error
	if err != nil {
		return nil, fmt.Errorf("list marketplace dictionaries: %w", err)
	}
	return dicts, nil
}

// GetByOwnerAndName is used by seeding to stay idempotent.
func (r *Repository) GetByOwnerAndName(ctx context.Context, ownerID uint, name string) (*entities.Dictionary, error) {
	var dict entities.Dictionary
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&dict).Error
	if err != nil {
		return nil, err
	}
	return &dict, nil
}
