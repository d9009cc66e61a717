// internal/app/features/todos/handler.go
package todos

import (
	"context"

	"github.com/dalemusser/dailyhub/internal/app/system/inputval"
	"github.com/dalemusser/dailyhub/internal/domain/models"
	"go.uber.org/zap"
)

// Store is the todo persistence the handlers need. Replace and Delete
// report a missing or foreign todo as todostore.ErrNotFound.
type Store interface {
	List(ctx context.Context, userID string) ([]models.Todo, error)
	Create(ctx context.Context, userID string, c models.TodoContent) (models.Todo, error)
	Replace(ctx context.Context, userID, todoID string, c models.TodoContent) error
	Delete(ctx context.Context, userID, todoID string) error
}

type Handler struct {
	Store Store
	Val   *inputval.Validator
	Log   *zap.Logger
}

func NewHandler(store Store, val *inputval.Validator, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Val: val, Log: logger}
}
