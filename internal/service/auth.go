package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sclub/calendar/internal/auth"
	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/repository"
	"github.com/sclub/calendar/internal/timeutil"
)

// Service errors.
var (
	ErrMissingFields      = errors.New("required fields are missing")
	ErrUserExists         = errors.New("user with that email or display name already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// AuthService handles registration and login.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new user account. The admin flag is never granted here;
// elevation only happens through an existing admin or the bootstrap script.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*model.User, error) {
	if email == "" || displayName == "" || password == "" {
		return nil, fmt.Errorf("%w: email, display name, and password are required", ErrMissingFields)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		// auth.ErrPasswordTooLong surfaces to the caller as a client error.
		return nil, err
	}

	user := &model.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    timeutil.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrMissingFields)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
