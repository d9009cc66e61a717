// internal/app/features/account/types.go
package account

import (
	"strings"

	"github.com/dalemusser/dailyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/dailyhub/internal/domain/models"
)

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name" validate:"required"`
}

func (r *registerRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	if r.FullName != nil {
		name := htmlsanitize.PlainText(*r.FullName)
		r.FullName = &name
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) Normalize() { r.Email = strings.TrimSpace(r.Email) }

type forgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *forgotRequest) Normalize() { r.Email = strings.TrimSpace(r.Email) }

type resetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

func (r *resetRequest) Normalize() { r.Token = strings.TrimSpace(r.Token) }

type tokenResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	User        models.PublicUser `json:"user"`
}

type forgotResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}

type meResponse struct {
	UserID   string              `json:"user_id"`
	Email    string              `json:"email"`
	FullName string              `json:"full_name"`
	Settings models.UserSettings `json:"settings"`
}

const (
	msgForgotUnknown = "If email exists, reset instructions have been sent"
	msgForgotIssued  = "Reset token generated"
	msgResetDone     = "Password has been reset"
	msgResetInvalid  = "Invalid or expired reset token"
)
