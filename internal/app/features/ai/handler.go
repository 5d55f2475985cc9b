// internal/app/features/ai/handler.go
package ai

import (
	"mime"
	"net/http"
	"time"

	"github.com/dalemusser/readalong/internal/app/aigateway"
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/dalemusser/readalong/internal/app/system/inputval"
	"go.uber.org/zap"
)

// Handler exposes the AI gateway over HTTP.
type Handler struct {
	Gateway *aigateway.Gateway
	Dev     bool
	Log     *zap.Logger
}

// NewHandler creates an AI handler. dev enables error details in responses.
func NewHandler(gw *aigateway.Gateway, dev bool, logger *zap.Logger) *Handler {
	return &Handler{Gateway: gw, Dev: dev, Log: logger}
}

// ServeGenerateArticle handles POST /api/generate-article.
func (h *Handler) ServeGenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req aigateway.ArticleRequest
	if err := apierr.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	out, err := h.Gateway.GenerateArticle(r.Context(), req)
	if err != nil {
		// Key diagnostics are reported in every environment on this route.
		apierr.Write(w, err, h.Dev || apierr.KindOf(err) != apierr.KindValidation, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}

// ServeGenerateImage handles POST /api/generate-image.
func (h *Handler) ServeGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req aigateway.ImageRequest
	if err := apierr.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	out, err := h.Gateway.GenerateImage(r.Context(), req)
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}

// ServeEvaluateQuestion handles POST /api/evaluate-question.
func (h *Handler) ServeEvaluateQuestion(w http.ResponseWriter, r *http.Request) {
	var req aigateway.EvaluationRequest
	if err := apierr.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	out, err := h.Gateway.EvaluateQuestion(r.Context(), req)
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}

type feedbackRequest struct {
	Nickname string `json:"nickname"`
	Question string `json:"question"`
	Stage    string `json:"stage"`
	Feedback string `json:"feedback" validate:"required"`
}

// ServeFeedbackDownload handles POST /api/feedback/download and returns the
// evaluation feedback as a plain-text attachment.
func (h *Handler) ServeFeedbackDownload(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := apierr.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	if err := inputval.Required(req, "feedback is required"); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}

	name, content := aigateway.FeedbackDocument(req.Nickname, req.Question, req.Stage, req.Feedback, time.Now())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

// ServeDebug handles GET /api/debug. It reports whether a provider key is
// configured and its first characters, never the key itself.
func (h *Handler) ServeDebug(w http.ResponseWriter, r *http.Request) {
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"hasKey":    h.Gateway.Text != nil,
		"keyPrefix": h.Gateway.KeyPrefix,
	})
}
