// Package dto provides Data Transfer Objects for API requests and responses.
// Wire naming is camelCase and every datetime is rendered as a UTC instant
// with a literal "Z" suffix.
package dto

import (
	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/timeutil"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// UserResponse represents a user in API responses. The password hash never
// leaves the server.
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	CreatedAt   string `json:"createdAt"`
}

// EventRequest represents the request body for creating or updating an event.
// Timestamps are strings so the time normalizer decides what they mean.
type EventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Location    *string `json:"location,omitempty"`
	Pending     bool    `json:"pending,omitempty"`
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Location    *string `json:"location,omitempty"`
	CreatedBy   int64   `json:"createdBy"`
	Pending     bool    `json:"pending"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	CreatorName string  `json:"creatorName,omitempty"`
}

// AdminUpdateRequest represents the request body for toggling the admin flag.
type AdminUpdateRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsAdmin:     user.IsAdmin,
		CreatedAt:   timeutil.FormatZ(user.CreatedAt),
	}
}

// ToUserListResponse converts a slice of User models.
func ToUserListResponse(users []*model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *ToUserResponse(user)
	}
	return responses
}

// ToEventResponse converts an Event model to EventResponse DTO.
func ToEventResponse(event *model.Event) *EventResponse {
	return &EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		StartTime:   timeutil.FormatZ(event.StartTime),
		EndTime:     timeutil.FormatZ(event.EndTime),
		Location:    event.Location,
		CreatedBy:   event.CreatedBy,
		Pending:     event.Pending,
		CreatedAt:   timeutil.FormatZ(event.CreatedAt),
		UpdatedAt:   timeutil.FormatZ(event.UpdatedAt),
	}
}

// ToEventListResponse converts annotated events, carrying creator names.
func ToEventListResponse(events []*model.EventWithCreator) []EventResponse {
	responses := make([]EventResponse, len(events))
	for i, event := range events {
		r := ToEventResponse(&event.Event)
		r.CreatorName = event.CreatorName
		responses[i] = *r
	}
	return responses
}
