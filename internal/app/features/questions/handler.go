// internal/app/features/questions/handler.go
package questions

import (
	"net/http"

	questionstore "github.com/dalemusser/readalong/internal/app/store/questions"
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves question creation, likes and answers. Nickname and
// article id come from the request body; the session is never consulted.
type Handler struct {
	Questions *questionstore.Store
	Dev       bool
	Log       *zap.Logger
}

// NewHandler creates a questions handler.
func NewHandler(qs *questionstore.Store, dev bool, logger *zap.Logger) *Handler {
	return &Handler{Questions: qs, Dev: dev, Log: logger}
}

// ServeCreate handles POST /api/questions.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var in questionstore.NewQuestion
	if err := apierr.DecodeJSON(r, &in); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	id, err := h.Questions.AddQuestion(r.Context(), in)
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ServeLike handles POST /api/questions/{id}/like.
func (h *Handler) ServeLike(w http.ResponseWriter, r *http.Request) {
	if err := h.Questions.Like(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeListAnswers handles GET /api/questions/{id}/answers (oldest first,
// capped at questionstore.AnswerLimit).
func (h *Handler) ServeListAnswers(w http.ResponseWriter, r *http.Request) {
	as, err := h.Questions.ListAnswers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, as)
}

type answerRequest struct {
	Nickname string `json:"nickname"`
	Text     string `json:"text"`
}

// ServeAddAnswer handles POST /api/questions/{id}/answers.
func (h *Handler) ServeAddAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := apierr.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	id, err := h.Questions.AddAnswer(r.Context(), questionstore.NewAnswer{
		QuestionID: chi.URLParam(r, "id"),
		Nickname:   req.Nickname,
		Text:       req.Text,
	})
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}
