// internal/app/features/account/login.go
package account

import (
	"errors"
	"net/http"

	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleLogin exchanges email and password for a session token. Unknown
// email and wrong password produce the same response and take the same
// bcrypt time.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login lookup")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.Hasher.VerifyDecoy(req.Password)
		h.Audit.LoginFailedUserNotFound(ctx, r, req.Email)
		apierr.Write(w, apierr.ErrBadLogin)
		return
	case err != nil:
		h.Log.Error("login: user lookup failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	if !h.Hasher.Verify(req.Password, u.PasswordHash) {
		h.Audit.LoginFailedWrongPassword(ctx, r, u.UserID, u.Email)
		apierr.Write(w, apierr.ErrBadLogin)
		return
	}

	h.Audit.LoginSuccess(ctx, r, u.UserID, u.Email)
	h.respondWithToken(w, *u)
}
