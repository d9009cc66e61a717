// internal/app/features/account/me.go
package account

import (
	"net/http"

	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
)

// ServeMe returns the profile of the authenticated user.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}
	settings := u.Settings
	if settings.Modules == nil {
		settings.Modules = map[string]bool{}
	}
	apierr.JSON(w, http.StatusOK, meResponse{
		UserID:   u.UserID,
		Email:    u.Email,
		FullName: u.FullName,
		Settings: settings,
	})
}
