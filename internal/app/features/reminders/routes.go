// internal/app/features/reminders/routes.go
package reminders

import "github.com/go-chi/chi/v5"

// Routes serves /api/reminders. The caller mounts it behind the bearer gate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
