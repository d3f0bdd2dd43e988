// Package users provides database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByEmail(ctx, "ana@example.com")
package users

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lexibazaar/marketplace/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user. Unique violations on username or email are returned
// unwrapped so callers can classify them with database.IsUniqueViolation.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether any account uses email (case-insensitive).
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

// UsernameExists reports whether username is taken.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count users by username: %w", err)
	}
	return count > 0, nil
}

// NotificationSettings carries a partial update; nil fields are left alone.
type NotificationSettings struct {
	Enabled *bool
	Hour    *int
	Minute  *int
}

// UpdateNotifications applies the non-nil settings and returns the updated user.
func (r *Repository) UpdateNotifications(ctx context.Context, id uint, s NotificationSettings) (*entities.User, error) {
	updates := map[string]interface{}{}
	if s.Enabled != nil {
		updates["notifications_enabled"] = *s.Enabled
	}
	if s.Hour != nil {
		updates["notification_hour"] = *s.Hour
	}
	if s.Minute != nil {
		updates["notification_minute"] = *s.Minute
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("update notification settings: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// UsernamesByIDs returns the usernames of the given users keyed by id.
func (r *Repository) UsernamesByIDs(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID       uint
		Username string
	}
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Select("id, username").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load usernames: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Username
	}
	return names, nil
}
