package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{Configuration("x"), http.StatusInternalServerError},
		{Upstream(errors.New("boom"), "fallback"), http.StatusInternalServerError},
		{NotFound("x"), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUpstream_Message(t *testing.T) {
	if got := Upstream(errors.New("quota exceeded"), "Generation failed").Message; got != "quota exceeded" {
		t.Errorf("got %q", got)
	}
	if got := Upstream(nil, "Generation failed").Message; got != "Generation failed" {
		t.Errorf("got %q", got)
	}
}

func TestErrNotConfigured_Is(t *testing.T) {
	err := fmt.Errorf("save: %w", ErrNotConfigured)
	if !errors.Is(err, ErrNotConfigured) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
	if errors.Is(Configuration("Missing GOOGLE_API_KEY"), ErrNotConfigured) {
		t.Error("different configuration errors must not match")
	}
}

func TestWrite(t *testing.T) {
	cause := errors.New("stack here")
	err := &Error{Kind: KindUpstream, Message: "quota", Err: cause}

	rec := httptest.NewRecorder()
	Write(rec, err, false, zap.NewNop())
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if body["error"] != "quota" {
		t.Errorf("error: got %v", body["error"])
	}
	if _, ok := body["details"]; ok {
		t.Error("details must be omitted outside development")
	}

	rec = httptest.NewRecorder()
	Write(rec, err, true, zap.NewNop())
	body = nil
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["details"] != "stack here" {
		t.Errorf("details: got %v", body["details"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec, httptest.NewRequest("GET", "/api/generate-article", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d", rec.Code)
	}
	if rec.Body.String() != "{\"error\":\"Method not allowed\"}\n" {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a"}`))
	if err := DecodeJSON(r, &v); err != nil || v.Name != "a" {
		t.Fatalf("valid body: err=%v name=%q", err, v.Name)
	}

	r = httptest.NewRequest("POST", "/", strings.NewReader(""))
	if err := DecodeJSON(r, &v); err != nil {
		t.Fatalf("empty body: %v", err)
	}

	r = httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	err := DecodeJSON(r, &v)
	if KindOf(err) != KindValidation || Status(err) != http.StatusBadRequest {
		t.Fatalf("malformed body: got %v", err)
	}
}
