package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lexibazaar/marketplace/internal/database"
	"github.com/lexibazaar/marketplace/internal/entities"
	"github.com/lexibazaar/marketplace/internal/services"
)

// Validation patterns
var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]{3,150}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrInvalidCredentials = services.ValidationError("invalid email or password", nil)
	ErrRefreshRejected    = &services.Error{Kind: services.KindUnauthenticated, Message: "invalid or expired refresh token"}
)

// UserRepository is the account storage the service needs.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service handles registration, login and token refresh.
type Service struct {
	users      UserRepository
	tokens     *Tokens
	bcryptCost int
}

func NewService(users UserRepository, tokens *Tokens, bcryptCost int) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates an account and signs the user in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entities.User, TokenPair, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	fields := map[string]string{}
	switch {
	case in.Username == "":
		fields["username"] = "username is required"
	case !usernamePattern.MatchString(in.Username):
		fields["username"] = "username must be 3-150 characters: letters, digits and @.+-_ only"
	}
	switch {
	case in.Email == "":
		fields["email"] = "email is required"
	case len(in.Email) > 254 || !emailPattern.MatchString(in.Email):
		fields["email"] = "invalid email format"
	}
	if in.Password == "" {
		fields["password"] = "password is required"
	} else if err := checkPasswordStrength(in.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, TokenPair{}, services.ValidationError("validation failed", fields)
	}

	if err := s.checkAvailable(ctx, in.Username, in.Email); err != nil {
		return nil, TokenPair{}, err
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		Username:           in.Username,
		Email:              in.Email,
		PasswordHash:       hash,
		NotificationHour:   entities.DefaultNotificationHour,
		NotificationMinute: entities.DefaultNotificationMinute,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if database.IsUniqueViolation(err) {
			return nil, TokenPair{}, services.ValidationError("validation failed", map[string]string{
				"username": "a user with that username or email already exists",
			})
		}
		return nil, TokenPair{}, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

func (s *Service) checkAvailable(ctx context.Context, username, email string) error {
	fields := map[string]string{}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		fields["username"] = "a user with that username already exists"
	}

	taken, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		fields["email"] = "a user with that email already exists"
	}

	if len(fields) > 0 {
		return services.ValidationError("validation failed", fields)
	}
	return nil
}

// Login checks credentials and issues a token pair. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, in LoginInput) (*entities.User, TokenPair, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		fields := map[string]string{}
		if email == "" {
			fields["email"] = "email is required"
		}
		if in.Password == "" {
			fields["password"] = "password is required"
		}
		return nil, TokenPair{}, services.ValidationError("validation failed", fields)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}

	if err := CheckPassword(in.Password, user.PasswordHash); err != nil {
		if errors.Is(err, errPasswordMismatch) {
			return user, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh trades a valid refresh token for a new pair. The old refresh
// token stays valid until it expires.
func (s *Service) Refresh(ctx context.Context, refresh string) (TokenPair, error) {
	if strings.TrimSpace(refresh) == "" {
		return TokenPair{}, services.ValidationError("validation failed", map[string]string{
			"refresh": "refresh token is required",
		})
	}

	userID, err := s.tokens.Parse(refresh, TokenRefresh)
	if err != nil {
		return TokenPair{}, ErrRefreshRejected
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if database.IsNotFound(err) {
			return TokenPair{}, ErrRefreshRejected
		}
		return TokenPair{}, err
	}

	return s.tokens.IssuePair(userID)
}
