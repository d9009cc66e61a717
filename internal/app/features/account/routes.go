// internal/app/features/account/routes.go
package account

import (
	"net/http"

	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes serves the account endpoints, mounted under /api/auth. The
// credential endpoints share limiter when it is non-nil.
func Routes(h *Handler, gate *auth.Gate, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		if limiter != nil {
			pr.Use(ratelimit.Middleware(limiter, func(req *http.Request) {
				h.Audit.LoginFailedRateLimit(req.Context(), req)
			}))
		}
		pr.Post("/register", h.HandleRegister)
		pr.Post("/login", h.HandleLogin)
		pr.Post("/forgot-password", h.HandleForgotPassword)
		pr.Post("/reset-password", h.HandleResetPassword)
	})

	r.With(gate.RequireBearer).Get("/me", h.ServeMe)
	return r
}
