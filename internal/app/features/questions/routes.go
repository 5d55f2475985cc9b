// internal/app/features/questions/routes.go
package questions

import (
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router mounted at /api/questions.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(apierr.MethodNotAllowed)
	r.Post("/", h.ServeCreate)
	r.Post("/{id}/like", h.ServeLike)
	r.Get("/{id}/answers", h.ServeListAnswers)
	r.Post("/{id}/answers", h.ServeAddAnswer)
	return r
}
