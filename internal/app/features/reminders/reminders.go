// internal/app/features/reminders/reminders.go
package reminders

import (
	"errors"
	"net/http"

	reminderstore "github.com/dalemusser/dailyhub/internal/app/store/reminders"
	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var errNotFound = apierr.NotFound("Reminder")

// ServeList returns the caller's reminders ordered by datetime.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "reminders.list")
	defer cancel()

	list, err := h.Store.List(ctx, u.UserID)
	if err != nil {
		h.Log.Error("reminders: list failed", zap.String("user_id", u.UserID), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, list)
}

// HandleCreate stores a new reminder owned by the caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}

	var req createRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "reminders.create")
	defer cancel()

	created, err := h.Store.Create(ctx, req.reminder(u.UserID))
	if err != nil {
		h.Log.Error("reminders: insert failed", zap.String("user_id", u.UserID), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, createResponse{Message: msgCreated, Reminder: created})
}

// HandleUpdate applies a partial update to one of the caller's reminders.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "reminders.update")
	defer cancel()

	err := h.Store.Update(ctx, u.UserID, id, req.patch())
	if errors.Is(err, reminderstore.ErrNotFound) {
		apierr.Write(w, errNotFound)
		return
	}
	if err != nil {
		h.Log.Error("reminders: update failed", zap.String("reminder_id", id), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, apierr.Message{Message: msgUpdated})
}

// HandleDelete removes one of the caller's reminders.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "reminders.delete")
	defer cancel()

	err := h.Store.Delete(ctx, u.UserID, id)
	if errors.Is(err, reminderstore.ErrNotFound) {
		apierr.Write(w, errNotFound)
		return
	}
	if err != nil {
		h.Log.Error("reminders: delete failed", zap.String("reminder_id", id), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, apierr.Message{Message: msgDeleted})
}
