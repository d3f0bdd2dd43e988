package dbtest

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lexibazaar/marketplace/internal/entities"
)

// CreateUser inserts a user named username with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		Username:           username,
		Email:              fmt.Sprintf("%s@example.com", username),
		PasswordHash:       "not-a-real-hash",
		NotificationHour:   entities.DefaultNotificationHour,
		NotificationMinute: entities.DefaultNotificationMinute,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateDictionary inserts a dictionary owned by ownerID. opts run before the
// insert and may change any field.
func CreateDictionary(t *testing.T, db *gorm.DB, ownerID uint, name string, opts ...func(*entities.Dictionary)) *entities.Dictionary {
	t.Helper()
	dict := &entities.Dictionary{
		OwnerID:       ownerID,
		Name:          name,
		SourceLang:    "en",
		TargetLang:    "de",
		Price:         decimal.Zero,
		TemporaryDays: entities.DefaultTemporaryDays,
	}
	for _, opt := range opts {
		opt(dict)
	}
	require.NoError(t, db.Create(dict).Error)
	return dict
}

// ForSale lists a dictionary with a description and price.
func ForSale(price string) func(*entities.Dictionary) {
	return func(d *entities.Dictionary) {
		d.IsForSale = true
		if d.Description == "" {
			d.Description = "A dictionary for sale"
		}
		d.Price = decimal.RequireFromString(price)
	}
}

// CreateWords inserts n words into the dictionary.
func CreateWords(t *testing.T, db *gorm.DB, dictionaryID uint, n int) []entities.Word {
	t.Helper()
	words := make([]entities.Word, 0, n)
	for i := 0; i < n; i++ {
		w := entities.Word{
			DictionaryID: dictionaryID,
			Word:         fmt.Sprintf("word-%d", i+1),
			Translation:  fmt.Sprintf("wort-%d", i+1),
		}
		require.NoError(t, db.Create(&w).Error)
		words = append(words, w)
	}
	return words
}

// CreatePurchase records a permanent purchase.
func CreatePurchase(t *testing.T, db *gorm.DB, userID, dictionaryID uint) *entities.Purchase {
	t.Helper()
	p := &entities.Purchase{
		UserID:       userID,
		DictionaryID: dictionaryID,
		AccessType:   entities.AccessTypePermanent,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
