// internal/app/features/account/handler.go
package account

import (
	"context"

	"github.com/dalemusser/dailyhub/internal/app/system/auditlog"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/inputval"
	"github.com/dalemusser/dailyhub/internal/domain/models"
	"go.uber.org/zap"
)

// UserStore is the slice of userstore.Store the account handlers need.
// GetByEmail reports an unknown email as mongo.ErrNoDocuments.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

// Handler owns registration, login, password reset and the profile
// endpoint.
type Handler struct {
	Users  UserStore
	Tokens *auth.TokenService
	Hasher *auth.PasswordHasher
	Val    *inputval.Validator
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler wires the account handlers. audit may be nil.
func NewHandler(users UserStore, tokens *auth.TokenService, hasher *auth.PasswordHasher, val *inputval.Validator, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Tokens: tokens,
		Hasher: hasher,
		Val:    val,
		Audit:  audit,
		Log:    logger,
	}
}
