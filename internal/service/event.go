package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sclub/calendar/internal/auth"
	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/repository"
	"github.com/sclub/calendar/internal/timeutil"
)

// ErrEventNotFound indicates the referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// EventService handles event CRUD with ownership-based authorization.
type EventService struct {
	events EventStore
}

// NewEventService creates a new EventService.
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// EventInput carries the client-supplied fields of an event. Timestamps
// arrive as strings and go through timeutil.Normalize.
type EventInput struct {
	Title       string
	Description string
	StartTime   string
	EndTime     string
	Location    *string
	Pending     bool
}

// List returns all events with creator names, ordered by start time.
// Listing is public; reads carry no authorization context.
func (s *EventService) List(ctx context.Context) ([]*model.EventWithCreator, error) {
	return s.events.ListEventsWithCreator(ctx)
}

// Create stores a new event owned by the actor. Creation and update
// timestamps default to now.
func (s *EventService) Create(ctx context.Context, actor *model.User, input EventInput) (*model.Event, error) {
	start, end, err := normalizeEventTimes(input)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	event := &model.Event{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   *start,
		EndTime:     *end,
		Location:    input.Location,
		CreatedBy:   actor.ID,
		Pending:     input.Pending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return event, nil
}

// Update replaces an event's fields after the ownership gate passes, and
// refreshes the updated timestamp.
func (s *EventService) Update(ctx context.Context, actor *model.User, id int64, input EventInput) (*model.Event, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanMutate(actor, event.CreatedBy) {
		return nil, auth.ErrForbidden
	}

	start, end, err := normalizeEventTimes(input)
	if err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Description = input.Description
	event.StartTime = *start
	event.EndTime = *end
	event.Location = input.Location
	event.Pending = input.Pending
	event.UpdatedAt = timeutil.Now()

	if err := s.events.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	return event, nil
}

// Delete removes an event after the ownership gate passes.
func (s *EventService) Delete(ctx context.Context, actor *model.User, id int64) error {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return err
	}

	if !auth.CanMutate(actor, event.CreatedBy) {
		return auth.ErrForbidden
	}

	if err := s.events.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	return nil
}

func (s *EventService) getEvent(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// normalizeEventTimes validates the required fields and converts both
// timestamps to UTC instants.
func normalizeEventTimes(input EventInput) (start, end *time.Time, err error) {
	if input.Title == "" {
		return nil, nil, fmt.Errorf("%w: title is required", ErrMissingFields)
	}

	start, err = timeutil.Normalize(input.StartTime)
	if err != nil {
		return nil, nil, err
	}
	end, err = timeutil.Normalize(input.EndTime)
	if err != nil {
		return nil, nil, err
	}

	if start == nil || end == nil {
		return nil, nil, fmt.Errorf("%w: start and end times are required", ErrMissingFields)
	}

	return start, end, nil
}
