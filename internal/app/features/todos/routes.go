// internal/app/features/todos/routes.go
package todos

import "github.com/go-chi/chi/v5"

// Routes serves /api/todos behind the caller-supplied bearer gate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
