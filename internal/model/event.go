package model

import "time"

// Event is a calendar entry owned by the user that created it.
// StartTime and EndTime are always UTC-aware instants; UpdatedAt is
// refreshed on every mutation.
type Event struct {
	ID          int64
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    *string
	CreatedBy   int64
	Pending     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventWithCreator is an Event annotated with its creator's display name,
// as returned by the public listing.
type EventWithCreator struct {
	Event
	CreatorName string
}
