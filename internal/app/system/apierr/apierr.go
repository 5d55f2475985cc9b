// Package apierr defines the error taxonomy shared by the store adapters,
// the AI gateway, and the JSON handlers, and renders errors as the
// {error, details?} envelope the browser UI expects.
//
// Kinds and their HTTP status:
//   - Validation: a required input field is missing (400)
//   - Configuration: a credential or the document store is not configured (500)
//   - Upstream: a third-party provider failed (500), message passed through
//   - NotFound: the addressed record does not exist (404)
package apierr

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConfiguration
	KindUpstream
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	case KindNotFound:
		return "not_found"
	}
	return "internal"
}

// Error is a classified error. Message is what the client sees; Err is
// the underlying cause, if any. Details is optional diagnostic data that
// is only rendered when the caller asks for it.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two classified errors of the same kind and message,
// so package-level sentinels keep working after being wrapped.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// Validation returns a client-correctable error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Configuration returns an operator-correctable error.
func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

// Upstream wraps a provider failure. The provider's message is surfaced
// verbatim; fallback is used only when err carries no message.
func Upstream(err error, fallback string) *Error {
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// NotFound returns a missing-record error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// ErrNotConfigured is returned by store writes when no document store is configured.
var ErrNotConfigured = Configuration("document store not configured")

// KindOf reports the Kind of err, or KindInternal if err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Body is the JSON error envelope.
type Body struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Write renders err as the error envelope. Details are included only when
// withDetails is set (development): an Error's own Details if it has any,
// otherwise the underlying cause.
func Write(w http.ResponseWriter, err error, withDetails bool, log *zap.Logger) {
	status := Status(err)
	body := Body{Error: err.Error()}

	var e *Error
	if errors.As(err, &e) {
		body.Error = e.Message
		if withDetails {
			body.Details = e.Details
			if body.Details == nil && e.Err != nil {
				body.Details = e.Err.Error()
			}
		}
	} else if withDetails {
		body.Details = err.Error()
	}

	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("kind", KindOf(err).String()),
				zap.Int("status", status),
				zap.Error(err))
		} else {
			log.Info("request rejected",
				zap.String("kind", KindOf(err).String()),
				zap.Int("status", status),
				zap.String("reason", body.Error))
		}
	}

	WriteJSON(w, status, body)
}

// MethodNotAllowed writes the 405 envelope used by the POST-only routes.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusMethodNotAllowed, Body{Error: "Method not allowed"})
}

// maxBodyBytes bounds request bodies; article bodies are the largest input.
const maxBodyBytes = 1 << 20

// DecodeJSON reads a JSON request body into v. An empty body leaves v
// untouched; malformed JSON is a validation error.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &Error{Kind: KindValidation, Message: "invalid JSON body", Err: err}
}
