package services

import (
	"time"

	"github.com/lexibazaar/marketplace/internal/entities"
)

// DictionaryView is a dictionary as one particular caller sees it.
type DictionaryView struct {
	ID                   uint      `json:"id"`
	Owner                uint      `json:"owner"`
	OwnerUsername        string    `json:"owner_username"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	SourceLang           string    `json:"source_lang"`
	TargetLang           string    `json:"target_lang"`
	Price                string    `json:"price"`
	AllowTemporaryAccess bool      `json:"allow_temporary_access"`
	TemporaryDays        int       `json:"temporary_days"`
	IsForSale            bool      `json:"is_for_sale"`
	CoverImage           *string   `json:"cover_image"`
	CoverImageURL        *string   `json:"cover_image_url"`
	IsOwner              bool      `json:"is_owner"`
	WordCount            int64     `json:"word_count"`
	IsPurchased          bool      `json:"is_purchased"`
	CreatedAt            time.Time `json:"created_at"`
}

type ProgressView struct {
	ID                 uint      `json:"id"`
	Dictionary         uint      `json:"dictionary"`
	LearnedWords       []uint    `json:"learned_words"`
	LearnedWordsCount  int       `json:"learned_words_count"`
	TotalWords         int64     `json:"total_words"`
	ProgressPercentage int       `json:"progress_percentage"`
	LastUpdated        time.Time `json:"last_updated"`
}

type ProfileView struct {
	ID                   uint   `json:"id"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Balance              string `json:"balance"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	NotificationHour     int    `json:"notification_hour"`
	NotificationMinute   int    `json:"notification_minute"`
}

type PurchaseReceipt struct {
	ID             uint                `json:"id"`
	DictionaryID   uint                `json:"dictionary_id"`
	DictionaryName string              `json:"dictionary_name"`
	AccessType     entities.AccessType `json:"access_type"`
	PurchasedAt    time.Time           `json:"purchased_at"`
	Message        string              `json:"message"`
}

func newProfileView(u *entities.User) ProfileView {
	return ProfileView{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		Balance:              u.Balance.StringFixed(2),
		NotificationsEnabled: u.NotificationsEnabled,
		NotificationHour:     u.NotificationHour,
		NotificationMinute:   u.NotificationMinute,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
