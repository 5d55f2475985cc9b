// internal/app/features/articles/routes.go
package articles

import (
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router mounted at /api/articles.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(apierr.MethodNotAllowed)
	r.Post("/", h.ServeCreate)
	r.Get("/{id}", h.ServeGet)
	r.Get("/{id}/questions", h.ServeQuestions)
	r.Get("/{id}/gallery", h.ServeGallery)
	return r
}
