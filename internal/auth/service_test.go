package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lexibazaar/marketplace/internal/database/dbtest"
	"github.com/lexibazaar/marketplace/internal/database/users"
	"github.com/lexibazaar/marketplace/internal/services"
)

func setupTestService(t *testing.T) (*Service, *Tokens, *users.Repository) {
	t.Helper()
	repo := users.NewRepository(dbtest.Open(t))
	tokens := NewTokens("test-secret", time.Minute, time.Hour)
	return NewService(repo, tokens, 4), tokens, repo
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var serr *services.Error
	if !errors.As(err, &serr) || serr.Kind != services.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	return serr.Fields
}

func TestService_Register(t *testing.T) {
	svc, tokens, repo := setupTestService(t)
	ctx := context.Background()

	user, pair, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	id, err := tokens.Parse(pair.Access, TokenAccess)
	if err != nil || id != user.ID {
		t.Errorf("access token does not identify the new user: %d, %v", id, err)
	}

	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.PasswordHash == "password123" || stored.PasswordHash == "" {
		t.Error("password should be stored hashed")
	}
	if !stored.Balance.IsZero() || stored.NotificationHour != 9 || stored.NotificationsEnabled {
		t.Errorf("unexpected defaults: %+v", stored)
	}
}

func TestService_RegisterValidation(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Username: "taken", Email: "taken@example.com", Password: "password123"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"missing username", RegisterInput{Email: "x@example.com", Password: "password123"}, "username"},
		{"bad username", RegisterInput{Username: "a b", Email: "x@example.com", Password: "password123"}, "username"},
		{"missing email", RegisterInput{Username: "bob", Password: "password123"}, "email"},
		{"bad email", RegisterInput{Username: "bob", Email: "not-an-email", Password: "password123"}, "email"},
		{"missing password", RegisterInput{Username: "bob", Email: "bob@example.com"}, "password"},
		{"short password", RegisterInput{Username: "bob", Email: "bob@example.com", Password: "short"}, "password"},
		{"duplicate username", RegisterInput{Username: "taken", Email: "bob@example.com", Password: "password123"}, "username"},
		{"duplicate email", RegisterInput{Username: "bob", Email: "TAKEN@example.com", Password: "password123"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.input)
			fields := fieldErrors(t, err)
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("expected error on %s, got %v", tt.field, fields)
			}
		})
	}
}

func TestService_Login(t *testing.T) {
	svc, tokens, _ := setupTestService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, pair, err := svc.Login(ctx, LoginInput{Email: "Alice@Example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged in as %d, want %d", user.ID, registered.ID)
	}
	if _, err := tokens.Parse(pair.Refresh, TokenRefresh); err != nil {
		t.Errorf("invalid refresh token: %v", err)
	}

	user, _, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if user == nil || user.ID != registered.ID {
		t.Error("a wrong password should still report which user was targeted")
	}

	if _, _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	fields := fieldErrors(t, func() error { _, _, err := svc.Login(ctx, LoginInput{}); return err }())
	if len(fields) != 2 {
		t.Errorf("expected email and password errors, got %v", fields)
	}
}

func TestService_Refresh(t *testing.T) {
	svc, tokens, _ := setupTestService(t)
	ctx := context.Background()

	user, pair, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	next, err := svc.Refresh(ctx, pair.Refresh)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if next.Refresh == pair.Refresh {
		t.Error("refresh should rotate the refresh token")
	}
	if id, _ := tokens.Parse(next.Access, TokenAccess); id != user.ID {
		t.Errorf("new access token identifies %d, want %d", id, user.ID)
	}

	if _, err := svc.Refresh(ctx, pair.Access); !errors.Is(err, ErrRefreshRejected) {
		t.Errorf("access token accepted for refresh: %v", err)
	}

	ghost, _ := tokens.IssuePair(9999)
	if _, err := svc.Refresh(ctx, ghost.Refresh); !errors.Is(err, ErrRefreshRejected) {
		t.Errorf("refresh for deleted user accepted: %v", err)
	}

	fieldErrors(t, func() error { _, err := svc.Refresh(ctx, ""); return err }())
}
