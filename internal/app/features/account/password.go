// internal/app/features/account/password.go
package account

import (
	"errors"
	"net/http"

	userstore "github.com/dalemusser/dailyhub/internal/app/store/users"
	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleForgotPassword issues a reset token for a known email. There is no
// mail delivery, so the token is returned in the response body. Unknown
// emails get a neutral message and no token.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "forgot-password lookup")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierr.JSON(w, http.StatusOK, forgotResponse{Message: msgForgotUnknown})
		return
	}
	if err != nil {
		h.Log.Error("forgot-password: user lookup failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	token, err := h.Tokens.IssueReset(u.Email)
	if err != nil {
		h.Log.Error("forgot-password: issue token failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	h.Audit.PasswordResetRequested(ctx, r, u.UserID, u.Email)
	apierr.JSON(w, http.StatusOK, forgotResponse{Message: msgForgotIssued, ResetToken: token})
}

// HandleResetPassword sets a new password given a valid reset token.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	claims, err := h.Tokens.ValidatePurpose(req.Token, auth.PurposePasswordReset)
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, auth.ErrTokenExpired) {
			reason = "expired token"
		} else if errors.Is(err, auth.ErrWrongPurpose) {
			reason = "wrong token purpose"
		}
		h.Audit.PasswordResetFailed(r.Context(), r, reason)
		apierr.Write(w, apierr.BadRequest(msgResetInvalid))
		return
	}

	hash, err := h.Hasher.Hash(req.NewPassword)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		apierr.Write(w, apierr.Validation(map[string]string{"new_password": "must be at most 72 bytes"}))
		return
	}
	if err != nil {
		h.Log.Error("reset-password: hash failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "reset-password")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Audit.PasswordResetFailed(ctx, r, "unknown subject")
		apierr.Write(w, apierr.BadRequest(msgResetInvalid))
		return
	}
	if err != nil {
		h.Log.Error("reset-password: user lookup failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	err = h.Users.UpdatePasswordHash(ctx, u.UserID, hash)
	if errors.Is(err, userstore.ErrNotFound) {
		apierr.Write(w, apierr.BadRequest(msgResetInvalid))
		return
	}
	if err != nil {
		h.Log.Error("reset-password: update failed", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	h.Audit.PasswordReset(ctx, r, u.UserID, u.Email)
	apierr.JSON(w, http.StatusOK, apierr.Message{Message: msgResetDone})
}
