// Package aigateway turns structured generation requests into provider
// prompts, makes exactly one provider call per operation, and normalizes
// the reply. It holds no state between calls.
package aigateway

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/readalong/internal/app/providers/imagen"
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/dalemusser/readalong/internal/app/system/inputval"
	"github.com/dalemusser/readalong/internal/app/system/metrics"
	"go.uber.org/zap"
)

// MissingKeyMessage is the error clients see when no provider credential is set.
const MissingKeyMessage = "Missing GOOGLE_API_KEY"

// Metric operation labels.
const (
	opGenerateArticle  = "generate_article"
	opGenerateImage    = "generate_image"
	opEvaluateQuestion = "evaluate_question"
)

// TextGenerator produces text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator requests one image and returns the classified reply.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, aspectRatio string) (*imagen.Result, error)
}

// Gateway implements the AI operations. A nil Text or Image generator
// means the credential is not configured and those operations fail closed.
type Gateway struct {
	Text    TextGenerator
	Image   ImageGenerator
	Metrics *metrics.Provider
	Log     *zap.Logger

	// KeyPrefix is the first characters of the credential, reported in
	// development error details only.
	KeyPrefix string
}

// New constructs a Gateway.
func New(text TextGenerator, image ImageGenerator, m *metrics.Provider, keyPrefix string, logger *zap.Logger) *Gateway {
	return &Gateway{Text: text, Image: image, Metrics: m, KeyPrefix: keyPrefix, Log: logger}
}

func (g *Gateway) missingKey() *apierr.Error {
	e := apierr.Configuration(MissingKeyMessage)
	e.Details = map[string]any{"hasApiKey": false}
	return e
}

func (g *Gateway) upstream(err error, fallback string) *apierr.Error {
	e := apierr.Upstream(err, fallback)
	e.Details = map[string]any{
		"hasApiKey": true,
		"keyPrefix": g.KeyPrefix,
		"cause":     fmt.Sprintf("%+v", err),
	}
	return e
}

// ArticleRequest asks for a new article.
type ArticleRequest struct {
	Kind       string `json:"kind" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	Topic      string `json:"topic,omitempty"`
}

// GeneratedArticle is the normalized article reply. ImageURL is always a
// placeholder; illustrations come from GenerateImage using ImagePrompt.
type GeneratedArticle struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	ImageURL    string `json:"imageUrl"`
	ImagePrompt string `json:"imagePrompt"`
}

// GenerateArticle writes an article for the requested kind and difficulty.
func (g *Gateway) GenerateArticle(ctx context.Context, req ArticleRequest) (*GeneratedArticle, error) {
	if err := inputval.Required(req, "kind and difficulty are required"); err != nil {
		return nil, err
	}
	if g.Text == nil {
		g.Log.Error("generate-article: missing provider credential")
		return nil, g.missingKey()
	}

	g.Log.Info("generate-article: calling provider",
		zap.String("kind", req.Kind),
		zap.String("difficulty", req.Difficulty),
		zap.Bool("has_topic", req.Topic != ""))

	start := time.Now()
	text, err := g.Text.Generate(ctx, articlePrompt(req.Kind, req.Difficulty, req.Topic))
	if err != nil {
		g.Metrics.Observe(opGenerateArticle, metrics.OutcomeError, time.Since(start))
		g.Log.Error("generate-article: provider failed", zap.Error(err))
		return nil, g.upstream(err, "Generation failed")
	}
	g.Metrics.Observe(opGenerateArticle, metrics.OutcomeOK, time.Since(start))
	g.Log.Info("generate-article: received response", zap.Int("length", len(text)))

	title, body := parseArticle(text)
	return &GeneratedArticle{
		Title:       title,
		Body:        body,
		ImageURL:    PlaceholderURL(title),
		ImagePrompt: imagePrompt(req.Kind, req.Difficulty, req.Topic),
	}, nil
}

// ImageRequest asks for one illustration.
type ImageRequest struct {
	Prompt      string `json:"prompt" validate:"required"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// GeneratedImage is the image reply. ImageURL is a data URL on success and
// a placeholder otherwise; Error and Debug carry operator diagnostics for
// the placeholder cases.
type GeneratedImage struct {
	ImageURL string `json:"imageUrl"`
	Error    string `json:"error,omitempty"`
	Debug    string `json:"debug,omitempty"`
}

// Placeholder captions for the image fallbacks.
const (
	ImagePendingCaption = "이미지 생성 중..."
	ImageFailedCaption  = "이미지 생성 실패"
)

// GenerateImage illustrates a prompt. Provider rejections and unrecognized
// replies degrade to a placeholder instead of an error; only a failure to
// reach the provider at all is returned as an UpstreamError.
func (g *Gateway) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	if g.Image == nil {
		g.Log.Error("generate-image: missing provider credential")
		return nil, apierr.Configuration(MissingKeyMessage)
	}
	if err := inputval.Required(req, "prompt is required"); err != nil {
		return nil, err
	}
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = imagen.DefaultAspectRatio
	}

	g.Log.Info("generate-image: calling provider",
		zap.String("prompt", truncateRunes(req.Prompt, 50)),
		zap.String("aspect_ratio", aspect))

	start := time.Now()
	res, err := g.Image.Generate(ctx, req.Prompt, aspect)
	if err != nil {
		g.Metrics.Observe(opGenerateImage, metrics.OutcomeError, time.Since(start))
		g.Log.Error("generate-image: provider failed", zap.Error(err))
		return nil, g.upstream(err, "Image generation failed")
	}
	took := time.Since(start)

	switch {
	case res.Shape == imagen.ShapeHTTPError:
		g.Metrics.Observe(opGenerateImage, metrics.OutcomeFallback, took)
		g.Log.Warn("generate-image: provider rejected request; using placeholder",
			zap.Int("status", res.Status),
			zap.String("body", truncateRunes(res.Raw, 200)))
		return &GeneratedImage{
			ImageURL: PlaceholderURL(ImagePendingCaption),
			Error:    fmt.Sprintf("API returned %d: %s", res.Status, truncateRunes(res.Raw, 200)),
		}, nil

	case !res.HasImage():
		g.Metrics.Observe(opGenerateImage, metrics.OutcomeFallback, took)
		g.Log.Warn("generate-image: no image payload in response; using placeholder",
			zap.Strings("keys", res.Keys))
		return &GeneratedImage{
			ImageURL: PlaceholderURL(ImageFailedCaption),
			Debug:    "No base64 in response",
		}, nil
	}

	g.Metrics.Observe(opGenerateImage, metrics.OutcomeOK, took)
	mime := res.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	g.Log.Info("generate-image: received image",
		zap.String("shape", res.Shape.String()),
		zap.Int("base64_length", len(res.Base64)))
	return &GeneratedImage{ImageURL: "data:" + mime + ";base64," + res.Base64}, nil
}

// EvaluationRequest asks for feedback on a student question.
type EvaluationRequest struct {
	Question     string `json:"question" validate:"required"`
	Stage        string `json:"stage"`
	ArticleTitle string `json:"articleTitle,omitempty"`
	ArticleBody  string `json:"articleBody,omitempty"`
}

// Evaluation is the provider's feedback, returned as opaque prose.
type Evaluation struct {
	Feedback string `json:"feedback"`
}

// EvaluateQuestion asks the provider to grade a question against a fixed rubric.
func (g *Gateway) EvaluateQuestion(ctx context.Context, req EvaluationRequest) (*Evaluation, error) {
	if err := inputval.Required(req, "question is required"); err != nil {
		return nil, err
	}
	if g.Text == nil {
		g.Log.Error("evaluate-question: missing provider credential")
		return nil, apierr.Configuration(MissingKeyMessage)
	}

	g.Log.Info("evaluate-question: calling provider", zap.String("stage", req.Stage))

	start := time.Now()
	feedback, err := g.Text.Generate(ctx, evaluationPrompt(req.Question, req.Stage, req.ArticleTitle, req.ArticleBody))
	if err != nil {
		g.Metrics.Observe(opEvaluateQuestion, metrics.OutcomeError, time.Since(start))
		g.Log.Error("evaluate-question: provider failed", zap.Error(err))
		return nil, g.upstream(err, "Evaluation failed")
	}
	g.Metrics.Observe(opEvaluateQuestion, metrics.OutcomeOK, time.Since(start))
	g.Log.Info("evaluate-question: received feedback", zap.Int("length", len(feedback)))

	return &Evaluation{Feedback: feedback}, nil
}
