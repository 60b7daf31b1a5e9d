package auth

import (
	"errors"

	"github.com/sclub/calendar/internal/model"
)

// ErrForbidden indicates an authenticated actor lacking permission.
var ErrForbidden = errors.New("forbidden")

// CanMutate reports whether the actor may mutate a resource owned by
// ownerID: owners may, and admins may override.
func CanMutate(actor *model.User, ownerID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin
}

// RequireAdmin fails with ErrForbidden unless the actor carries the admin
// flag. Self-registration never grants it, so admin status only propagates
// from an existing admin (or the out-of-band bootstrap script).
func RequireAdmin(actor *model.User) error {
	if actor == nil || !actor.IsAdmin {
		return ErrForbidden
	}
	return nil
}
