package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sclub/calendar/internal/cache"
	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/repository"
)

// ErrUserNotFound indicates the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// AdminService handles user administration. Route-level middleware enforces
// that only admins reach it.
type AdminService struct {
	users UserStore
	cache *cache.Cache
}

// NewAdminService creates a new AdminService. cache may be nil.
func NewAdminService(users UserStore, userCache *cache.Cache) *AdminService {
	return &AdminService{
		users: users,
		cache: userCache,
	}
}

// ListUsers returns every user, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.ListUsers(ctx)
}

// SetAdmin toggles a user's admin flag and evicts the cached row so the
// change takes effect on the next authenticated request.
func (s *AdminService) SetAdmin(ctx context.Context, id int64, isAdmin bool) (*model.User, error) {
	user, err := s.users.SetUserAdmin(ctx, id, isAdmin)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("set admin flag: %w", err)
	}

	_ = s.cache.DeleteUser(ctx, id)

	return user, nil
}

// DeleteUser removes a user. The repository cascades the deletion to the
// user's events inside one transaction.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.DeleteUser(ctx, id)

	return nil
}
