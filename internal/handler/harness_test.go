package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sclub/calendar/internal/auth"
	"github.com/sclub/calendar/internal/handler/dto"
	"github.com/sclub/calendar/internal/middleware"
	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/repository"
	"github.com/sclub/calendar/internal/service"
)

// memStore is an in-memory backend honoring the repository's sentinel
// errors, shared by the user and event store interfaces.
type memStore struct {
	nextUserID  int64
	nextEventID int64
	users       map[int64]*model.User
	events      map[int64]*model.Event
}

func newMemStore() *memStore {
	return &memStore{
		nextUserID:  1,
		nextEventID: 1,
		users:       make(map[int64]*model.User),
		events:      make(map[int64]*model.Event),
	}
}

func (m *memStore) CreateUser(ctx context.Context, user *model.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email || existing.DisplayName == user.DisplayName {
			return repository.ErrUserExists
		}
	}
	user.ID = m.nextUserID
	m.nextUserID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(m.users))
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memStore) SetUserAdmin(ctx context.Context, id int64, isAdmin bool) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	copied := *user
	return &copied, nil
}

func (m *memStore) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	for eventID, event := range m.events {
		if event.CreatedBy == id {
			delete(m.events, eventID)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) CreateEvent(ctx context.Context, event *model.Event) error {
	event.ID = m.nextEventID
	m.nextEventID++
	stored := *event
	m.events[event.ID] = &stored
	return nil
}

func (m *memStore) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (m *memStore) ListEventsWithCreator(ctx context.Context) ([]*model.EventWithCreator, error) {
	events := make([]*model.EventWithCreator, 0, len(m.events))
	for _, event := range m.events {
		annotated := model.EventWithCreator{Event: *event}
		if creator, ok := m.users[event.CreatedBy]; ok {
			annotated.CreatorName = creator.DisplayName
		}
		events = append(events, &annotated)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}

func (m *memStore) UpdateEvent(ctx context.Context, event *model.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return repository.ErrEventNotFound
	}
	stored := *event
	m.events[event.ID] = &stored
	return nil
}

func (m *memStore) DeleteEvent(ctx context.Context, id int64) error {
	if _, ok := m.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

// testApp wires the full route table over an in-memory store, mirroring the
// router in cmd/api.
type testApp struct {
	router http.Handler
	store  *memStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewTokenService("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}

	store := newMemStore()

	authSvc := service.NewAuthService(store, tokens)
	eventSvc := service.NewEventService(store)
	adminSvc := service.NewAdminService(store, nil)

	authHandler := NewAuthHandler(authSvc, logger)
	eventHandler := NewEventHandler(eventSvc, logger)
	adminHandler := NewAdminHandler(adminSvc, logger)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
		Users:  store,
	})

	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/", Hello)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.With(requireAuth).Post("/", eventHandler.Create)
		r.With(requireAuth).Put("/{id}", eventHandler.Update)
		r.With(requireAuth).Delete("/{id}", eventHandler.Delete)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireAdmin())
		r.Get("/users", adminHandler.ListUsers)
		r.Put("/users/{id}/admin", adminHandler.SetAdmin)
		r.Delete("/users/{id}", adminHandler.DeleteUser)
	})

	return &testApp{router: r, store: store}
}

// do runs one request through the router. A non-nil body is JSON-encoded,
// and a non-empty token goes into the Authorization header.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its response.
func (a *testApp) register(t *testing.T, email, displayName, password string) dto.UserResponse {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Email:       email,
		DisplayName: displayName,
		Password:    password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}

	var user dto.UserResponse
	decode(t, rec, &user)
	return user
}

// login authenticates through the API and returns the bearer token.
func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}

	var token dto.TokenResponse
	decode(t, rec, &token)
	return token.AccessToken
}

// promote flips the admin flag directly in the store, standing in for the
// bootstrap script.
func (a *testApp) promote(t *testing.T, id int64) {
	t.Helper()
	if _, err := a.store.SetUserAdmin(context.Background(), id, true); err != nil {
		t.Fatalf("promote user %d: %v", id, err)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
