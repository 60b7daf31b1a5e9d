package service

import (
	"context"
	"sort"

	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/repository"
)

// fakeUserStore is an in-memory UserStore honoring the repository's
// uniqueness and not-found semantics.
type fakeUserStore struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.DisplayName == user.DisplayName {
			return repository.ErrUserExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(f.users))
	for _, user := range f.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (f *fakeUserStore) SetUserAdmin(ctx context.Context, id int64, isAdmin bool) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeEventStore is an in-memory EventStore. Cascade deletion of a user's
// events lives in the repository, so the fakes share a user store to model
// the join in listings.
type fakeEventStore struct {
	nextID int64
	events map[int64]*model.Event
	users  *fakeUserStore
}

func newFakeEventStore(users *fakeUserStore) *fakeEventStore {
	return &fakeEventStore{nextID: 1, events: make(map[int64]*model.Event), users: users}
}

func (f *fakeEventStore) CreateEvent(ctx context.Context, event *model.Event) error {
	event.ID = f.nextID
	f.nextID++
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventStore) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStore) ListEventsWithCreator(ctx context.Context) ([]*model.EventWithCreator, error) {
	events := make([]*model.EventWithCreator, 0, len(f.events))
	for _, event := range f.events {
		annotated := model.EventWithCreator{Event: *event}
		if creator, ok := f.users.users[event.CreatedBy]; ok {
			annotated.CreatorName = creator.DisplayName
		}
		events = append(events, &annotated)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}

func (f *fakeEventStore) UpdateEvent(ctx context.Context, event *model.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return repository.ErrEventNotFound
	}
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventStore) DeleteEvent(ctx context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}
