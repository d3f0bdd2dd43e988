package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "correct horse", nil},
		{"exactly minimum", "12345678", nil},
		{"too short", "1234567", ErrPasswordTooShort},
		{"multibyte counts characters", "пароль12", nil},
		{"72 bytes", strings.Repeat("a", 72), nil},
		{"73 bytes", strings.Repeat("a", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, 4)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("HashPassword() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && hash == tt.password {
				t.Error("hash should not equal the password")
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if err := CheckPassword("correct horse", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := CheckPassword("wrong horse", hash); !errors.Is(err, errPasswordMismatch) {
		t.Errorf("expected mismatch, got %v", err)
	}
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	b, _ := GenerateSecret()

	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("secrets should differ")
	}
}
