package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sclub/calendar/internal/auth"
	"github.com/sclub/calendar/internal/handler/dto"
	"github.com/sclub/calendar/internal/service"
	"github.com/sclub/calendar/internal/timeutil"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	svc    *service.EventService
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /events. Listing is public.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEventListResponse(events))
}

// Create handles POST /events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustUserFromContext(r.Context())

	var req dto.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	event, err := h.svc.Create(r.Context(), actor, eventInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_created",
		"event_id", event.ID,
		"user_id", actor.ID,
	)

	writeJSON(w, http.StatusCreated, dto.ToEventResponse(event))
}

// Update handles PUT /events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustUserFromContext(r.Context())

	id, ok := eventID(w, r)
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	event, err := h.svc.Update(r.Context(), actor, id, eventInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_updated",
		"event_id", event.ID,
		"user_id", actor.ID,
	)

	writeJSON(w, http.StatusOK, dto.ToEventResponse(event))
}

// Delete handles DELETE /events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.MustUserFromContext(r.Context())

	id, ok := eventID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("event_deleted",
		"event_id", id,
		"user_id", actor.ID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// eventID parses the path id. A non-numeric id is indistinguishable from a
// missing event, so it answers 404.
func eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
		return 0, false
	}
	return id, true
}

func eventInput(req dto.EventRequest) service.EventInput {
	return service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Pending:     req.Pending,
	}
}

// handleServiceError maps event service errors to HTTP responses.
func (h *EventHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", err.Error())
	case errors.Is(err, timeutil.ErrInvalidTimestamp):
		writeError(w, http.StatusBadRequest, "INVALID_TIMESTAMP", "Invalid timestamp format")
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not enough permissions")
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
