package services

import (
	"context"
	"mime/multipart"

	"github.com/lexibazaar/marketplace/internal/database/users"
	"github.com/lexibazaar/marketplace/internal/entities"
)

// DictionaryStore persists dictionaries.
type DictionaryStore interface {
	Create(ctx context.Context, dict *entities.Dictionary) error
	GetByID(ctx context.Context, id uint) (*entities.Dictionary, error)
	Update(ctx context.Context, id uint, mutate func(*entities.Dictionary) error) (*entities.Dictionary, error)
	Delete(ctx context.Context, id uint) error
	ListAccessible(ctx context.Context, userID uint) ([]entities.Dictionary, error)
	ListForSale(ctx context.Context) ([]entities.Dictionary, error)
}

// WordStore persists words and answers count queries.
type WordStore interface {
	Create(ctx context.Context, word *entities.Word) error
	ListByDictionary(ctx context.Context, dictionaryID uint) ([]entities.Word, error)
	CountByDictionary(ctx context.Context, dictionaryID uint) (int64, error)
	CountByDictionaries(ctx context.Context, dictionaryIDs []uint) (map[uint]int64, error)
	FindInDictionary(ctx context.Context, dictionaryID uint, ids []uint) ([]entities.Word, error)
}

// PurchaseStore persists purchases.
type PurchaseStore interface {
	Create(ctx context.Context, purchase *entities.Purchase) error
	Exists(ctx context.Context, userID, dictionaryID uint) (bool, error)
	PurchasedAmong(ctx context.Context, userID uint, dictionaryIDs []uint) (map[uint]bool, error)
}

// ProgressStore persists learning progress.
type ProgressStore interface {
	GetOrCreate(ctx context.Context, userID, dictionaryID uint) (*entities.LearningProgress, bool, error)
	ReplaceLearnedWords(ctx context.Context, progress *entities.LearningProgress, words []entities.Word) error
}

// UserStore reads and updates accounts.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	UpdateNotifications(ctx context.Context, id uint, s users.NotificationSettings) (*entities.User, error)
	UsernamesByIDs(ctx context.Context, ids []uint) (map[uint]string, error)
}

// CoverStorage keeps uploaded cover images.
type CoverStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(path string) error
	URL(baseURL, path string) string
}

// Auditor records security-relevant events.
type Auditor interface {
	LogPurchase(ctx context.Context, purchase *entities.Purchase, dictionaryName string)
	LogDictionaryDelete(ctx context.Context, userID uint, dict *entities.Dictionary)
}

// ImageFinder looks up an illustrative image URL for a search query.
type ImageFinder interface {
	Find(ctx context.Context, query string) (string, error)
}
