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
)

// AdminHandler handles HTTP requests for user administration. The route
// group mounts it behind the admin gate, so every caller here is an admin.
type AdminHandler struct {
	svc    *service.AdminService
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		logger: logger,
	}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// SetAdmin handles PUT /admin/users/{id}/admin.
func (h *AdminHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.SetAdmin(r.Context(), id, req.IsAdmin)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("admin_flag_updated",
		"user_id", user.ID,
		"is_admin", user.IsAdmin,
		"actor_id", auth.MustUserFromContext(r.Context()).ID,
	)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser handles DELETE /admin/users/{id}. The user's events go with
// the account.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_deleted",
		"user_id", id,
		"actor_id", auth.MustUserFromContext(r.Context()).ID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// userID parses the path id, answering 404 for anything non-numeric.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return 0, false
	}
	return id, true
}

// handleServiceError maps admin service errors to HTTP responses.
func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
