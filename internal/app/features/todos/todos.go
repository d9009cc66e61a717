// internal/app/features/todos/todos.go
package todos

import (
	"errors"
	"net/http"

	todostore "github.com/dalemusser/dailyhub/internal/app/store/todos"
	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var errNotFound = apierr.NotFound("Todo")

// ServeList returns the caller's todos, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "todos.list")
	defer cancel()

	list, err := h.Store.List(ctx, u.UserID)
	if err != nil {
		h.Log.Error("todos: list failed", zap.String("user_id", u.UserID), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, list)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}

	var req todoRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "todos.create")
	defer cancel()

	created, err := h.Store.Create(ctx, u.UserID, req.content())
	if err != nil {
		h.Log.Error("todos: insert failed", zap.String("user_id", u.UserID), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, createResponse{Message: msgCreated, Todo: created})
}

// HandleUpdate replaces title, description and completed on one of the
// caller's todos.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}
	id := chi.URLParam(r, "id")

	var req todoRequest
	if err := h.Val.DecodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "todos.update")
	defer cancel()

	err := h.Store.Replace(ctx, u.UserID, id, req.content())
	if errors.Is(err, todostore.ErrNotFound) {
		apierr.Write(w, errNotFound)
		return
	}
	if err != nil {
		h.Log.Error("todos: update failed", zap.String("todo_id", id), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, apierr.Message{Message: msgUpdated})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "todos.delete")
	defer cancel()

	err := h.Store.Delete(ctx, u.UserID, id)
	if errors.Is(err, todostore.ErrNotFound) {
		apierr.Write(w, errNotFound)
		return
	}
	if err != nil {
		h.Log.Error("todos: delete failed", zap.String("todo_id", id), zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	apierr.JSON(w, http.StatusOK, apierr.Message{Message: msgDeleted})
}
