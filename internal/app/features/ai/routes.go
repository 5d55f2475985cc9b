// internal/app/features/ai/routes.go
package ai

import (
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router for the AI endpoints, mounted under /api.
// Every route is POST-only except /debug; other methods get a JSON 405.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(apierr.MethodNotAllowed)
	r.Post("/generate-article", h.ServeGenerateArticle)
	r.Post("/generate-image", h.ServeGenerateImage)
	r.Post("/evaluate-question", h.ServeEvaluateQuestion)
	r.Post("/feedback/download", h.ServeFeedbackDownload)
	r.Get("/debug", h.ServeDebug)
	return r
}
