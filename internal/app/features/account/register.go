// internal/app/features/account/register.go
package account

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/dailyhub/internal/app/store/users"
	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"github.com/dalemusser/dailyhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister creates an account and returns a session token for it.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register")
	defer cancel()

	// Fast path; the unique index on email settles concurrent registrations.
	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		h.Log.Error("register: email lookup failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	if exists {
		h.Audit.RegisterFailedDuplicate(ctx, r, req.Email)
		apierr.Write(w, apierr.ErrEmailTaken)
		return
	}

	hash, err := h.Hasher.Hash(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		apierr.Write(w, apierr.Validation(map[string]string{"password": "must be at most 72 bytes"}))
		return
	}
	if err != nil {
		h.Log.Error("register: hash failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		FullName:     *req.FullName,
		PasswordHash: hash,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		h.Audit.RegisterFailedDuplicate(ctx, r, req.Email)
		apierr.Write(w, apierr.ErrEmailTaken)
		return
	}
	if err != nil {
		h.Log.Error("register: insert failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	h.Audit.Registered(ctx, r, u.UserID, u.Email)
	h.respondWithToken(w, u)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, u models.User) {
	token, err := h.Tokens.IssueSession(u.Email)
	if err != nil {
		h.Log.Error("issue session token failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u.Public(),
	})
}
