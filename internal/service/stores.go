// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/sclub/calendar/internal/model"
)

// UserStore is the slice of the repository the user-facing services need.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	SetUserAdmin(ctx context.Context, id int64, isAdmin bool) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// EventStore is the slice of the repository the event service needs.
// *repository.Repository satisfies it.
type EventStore interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	ListEventsWithCreator(ctx context.Context) ([]*model.EventWithCreator, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
}
