// internal/app/features/reminders/handler.go
package reminders

import (
	"context"

	"github.com/dalemusser/dailyhub/internal/app/system/inputval"
	"github.com/dalemusser/dailyhub/internal/domain/models"
	"go.uber.org/zap"
)

// Store is the reminder persistence the handlers need. Update and Delete
// report a missing or foreign reminder as reminderstore.ErrNotFound.
type Store interface {
	List(ctx context.Context, userID string) ([]models.Reminder, error)
	Create(ctx context.Context, r models.Reminder) (models.Reminder, error)
	Update(ctx context.Context, userID, reminderID string, p models.ReminderPatch) error
	Delete(ctx context.Context, userID, reminderID string) error
}

type Handler struct {
	Store Store
	Val   *inputval.Validator
	Log   *zap.Logger
}

func NewHandler(store Store, val *inputval.Validator, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Val: val, Log: logger}
}
