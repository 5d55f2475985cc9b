package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/readalong/internal/app/aigateway"
	"github.com/dalemusser/readalong/internal/app/features/ai"
	"github.com/dalemusser/readalong/internal/app/providers/imagen"
	"go.uber.org/zap"
)

type stubText struct{ reply string }

func (s stubText) Generate(context.Context, string) (string, error) { return s.reply, nil }

type stubImage struct{ res *imagen.Result }

func (s stubImage) Generate(context.Context, string, string) (*imagen.Result, error) {
	return s.res, nil
}

func newRouter(t *testing.T, text aigateway.TextGenerator, image aigateway.ImageGenerator) http.Handler {
	t.Helper()
	gw := aigateway.New(text, image, nil, "AIza", zap.NewNop())
	return ai.Routes(ai.NewHandler(gw, false, zap.NewNop()))
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to parse response JSON %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestMethodNotAllowed(t *testing.T) {
	h := newRouter(t, stubText{}, stubImage{})

	for _, path := range []string{"/generate-article", "/generate-image", "/evaluate-question"} {
		rec := do(h, "GET", path, "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusMethodNotAllowed, rec.Code)
			continue
		}
		if got := decode(t, rec)["error"]; got != "Method not allowed" {
			t.Errorf("%s: error: got %v", path, got)
		}
	}
}

func TestGenerateArticle_OK(t *testing.T) {
	h := newRouter(t, stubText{reply: "[제목:] 숲\n[본문:] 나무가 많아요."}, nil)

	rec := do(h, "POST", "/generate-article", `{"kind":"설명","difficulty":"하","topic":"숲"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	got := decode(t, rec)
	if got["title"] != "숲" || got["body"] != "나무가 많아요." {
		t.Errorf("unexpected article: %v", got)
	}
	if !strings.HasPrefix(got["imageUrl"].(string), "https://placehold.co/800x480?text=") {
		t.Errorf("imageUrl: %v", got["imageUrl"])
	}
	if got["imagePrompt"] == "" {
		t.Error("expected imagePrompt")
	}
}

func TestGenerateArticle_Validation(t *testing.T) {
	h := newRouter(t, stubText{}, nil)

	rec := do(h, "POST", "/generate-article", `{"kind":"설명"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if got := decode(t, rec)["error"]; got != "kind and difficulty are required" {
		t.Errorf("error: got %v", got)
	}

	rec = do(h, "POST", "/generate-article", `{bad`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON: expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGenerateArticle_MissingKey(t *testing.T) {
	h := newRouter(t, nil, nil)

	rec := do(h, "POST", "/generate-article", `{"kind":"설명","difficulty":"중"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	got := decode(t, rec)
	if got["error"] != aigateway.MissingKeyMessage {
		t.Errorf("error: got %v", got["error"])
	}
	details, ok := got["details"].(map[string]any)
	if !ok || details["hasApiKey"] != false {
		t.Errorf("details: got %v", got["details"])
	}
}

func TestEvaluateQuestion_NoDetailsInProd(t *testing.T) {
	h := newRouter(t, nil, nil)

	rec := do(h, "POST", "/evaluate-question", `{"question":"왜?","stage":"pre"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	got := decode(t, rec)
	if _, has := got["details"]; has {
		t.Errorf("details should be omitted outside dev: %v", got)
	}
}

func TestEvaluateQuestion_OK(t *testing.T) {
	h := newRouter(t, stubText{reply: "잘했어요"}, nil)

	rec := do(h, "POST", "/evaluate-question", `{"question":"왜?","stage":"post","articleTitle":"t"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := decode(t, rec)["feedback"]; got != "잘했어요" {
		t.Errorf("feedback: got %v", got)
	}
}

func TestGenerateImage_UnrecognizedIsPlaceholder(t *testing.T) {
	h := newRouter(t, nil, stubImage{res: &imagen.Result{Shape: imagen.ShapeUnrecognized}})

	rec := do(h, "POST", "/generate-image", `{"prompt":"강아지"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	got := decode(t, rec)
	if got["imageUrl"] != aigateway.PlaceholderURL(aigateway.ImageFailedCaption) {
		t.Errorf("imageUrl: got %v", got["imageUrl"])
	}
	if got["debug"] != "No base64 in response" {
		t.Errorf("debug: got %v", got["debug"])
	}
}

func TestFeedbackDownload(t *testing.T) {
	h := newRouter(t, nil, nil)

	rec := do(h, "POST", "/feedback/download",
		`{"nickname":"민지","question":"왜?","stage":"pre","feedback":"좋아요"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "질문 평가 피드백\n\n학생: 민지\n단계: 읽기 전\n") {
		t.Errorf("body: %q", body)
	}

	rec = do(h, "POST", "/feedback/download", `{"nickname":"민지"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing feedback: expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestDebug(t *testing.T) {
	rec := do(newRouter(t, stubText{}, nil), "GET", "/debug", "")
	got := decode(t, rec)
	if got["hasKey"] != true || got["keyPrefix"] != "AIza" {
		t.Errorf("debug: got %v", got)
	}

	rec = do(newRouter(t, nil, nil), "GET", "/debug", "")
	if got := decode(t, rec); got["hasKey"] != false {
		t.Errorf("debug without key: got %v", got)
	}
}
