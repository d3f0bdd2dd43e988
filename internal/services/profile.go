package services

import (
	"context"

	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/database/users"
)

// ProfileInput holds the only profile fields a user may change. Identity
// and balance are read-only.
type ProfileInput struct {
	NotificationsEnabled *bool `json:"notifications_enabled"`
	NotificationHour     *int  `json:"notification_hour" validate:"omitempty,min=0,max=23"`
	NotificationMinute   *int  `json:"notification_minute" validate:"omitempty,min=0,max=59"`
}

type ProfileService struct {
	users UserStore
}

func NewProfileService(deps Dependencies) *ProfileService {
	return &ProfileService{users: deps.Users}
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	view := newProfileView(user)
	return &view, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileInput) (*ProfileView, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateNotifications(ctx, userID, users.NotificationSettings{
		Enabled: in.NotificationsEnabled,
		Hour:    in.NotificationHour,
		Minute:  in.NotificationMinute,
	})
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	view := newProfileView(user)
	return &view, nil
}
