// internal/app/features/articles/handler.go
package articles

import (
	"net/http"

	articlestore "github.com/dalemusser/readalong/internal/app/store/articles"
	questionstore "github.com/dalemusser/readalong/internal/app/store/questions"
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/dalemusser/readalong/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves article records and the per-article question views.
type Handler struct {
	Articles  *articlestore.Store
	Questions *questionstore.Store
	Dev       bool
	Log       *zap.Logger
}

// NewHandler creates an articles handler.
func NewHandler(as *articlestore.Store, qs *questionstore.Store, dev bool, logger *zap.Logger) *Handler {
	return &Handler{Articles: as, Questions: qs, Dev: dev, Log: logger}
}

// ServeCreate handles POST /api/articles. The returned id is the activity
// code students type to join.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var in models.ArticleInput
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	id, err := h.Articles.Save(r.Context(), in)
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	h.Log.Info("article saved", zap.String("article_id", id))
	apierr.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ServeGet handles GET /api/articles/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.Articles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	if a == nil {
		apierr.Write(w, apierr.NotFound("article not found"), h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, a)
}

// ServeQuestions handles GET /api/articles/{id}/questions, newest first.
func (h *Handler) ServeQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := h.Questions.ListByArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, qs)
}

// ServeGallery handles GET /api/articles/{id}/gallery: every question of
// the article with its answers.
func (h *Handler) ServeGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.Questions.Gallery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, items)
}
