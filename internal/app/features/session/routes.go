// internal/app/features/session/routes.go
package session

import (
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router mounted at /api/session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(apierr.MethodNotAllowed)
	r.Get("/", h.ServeGet)
	r.Put("/", h.ServeUpdate)
	return r
}
