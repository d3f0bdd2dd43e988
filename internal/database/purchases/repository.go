// Package purchases provides database operations for dictionary purchases.
package purchases

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

// Create inserts a purchase. A second purchase of the same dictionary by the
// same user violates idx_purchases_user_dictionary; that error is returned
// unwrapped for database.IsUniqueViolation.
func (r *Repository) Create(ctx context.Context, purchase *entities.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *Repository) Exists(ctx context.Context, userID, dictionaryID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Purchase{}).
		Where("user_id = ? AND dictionary_id = ?", userID, dictionaryID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return count > 0, nil
}

// PurchasedAmong returns the subset of dictionaryIDs that userID has bought.
func (r *Repository) PurchasedAmong(ctx context.Context, userID uint, dictionaryIDs []uint) (map[uint]bool, error) {
	purchased := make(map[uint]bool)
	if userID == 0 || len(dictionaryIDs) == 0 {
		return purchased, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&entities.Purchase{}).
		Where("user_id = ? AND dictionary_id IN ?", userID, dictionaryIDs).
		Pluck("dictionary_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	for _, id := range ids {
		purchased[id] = true
	}
	return purchased, nil
}
