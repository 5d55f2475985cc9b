// Package identity performs the process-wide anonymous sign-in the
// document store's security rules expect, once, at startup.
package identity

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// NoIdentityUID is reported when no identity provider is configured.
const NoIdentityUID = "no-identity"

// Provider signs in anonymously and returns the issued user id.
type Provider interface {
	SignInAnonymously(ctx context.Context) (string, error)
}

// Handshake runs the anonymous sign-in once and exposes a readiness flag.
// Ready becomes true exactly once, whether the sign-in succeeded or not.
type Handshake struct {
	provider Provider
	log      *zap.Logger

	once  sync.Once
	ready atomic.Bool
	uid   atomic.Value // string
	done  chan struct{}
}

// NewHandshake builds a Handshake. A nil provider means identity is not
// configured; the handshake is then ready as soon as it starts.
func NewHandshake(p Provider, logger *zap.Logger) *Handshake {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handshake{provider: p, log: logger, done: make(chan struct{})}
}

// Start begins the sign-in in the background. Later calls are no-ops.
func (h *Handshake) Start(ctx context.Context) {
	h.once.Do(func() {
		if h.provider == nil {
			h.uid.Store(NoIdentityUID)
			h.finish()
			h.log.Info("identity: no provider configured; ready without sign-in")
			return
		}
		go h.run(ctx)
	})
}

func (h *Handshake) run(ctx context.Context) {
	defer h.finish()

	uid, err := h.provider.SignInAnonymously(ctx)
	if err != nil {
		h.log.Error("identity: anonymous sign-in failed", zap.Error(err))
		return
	}
	h.uid.Store(uid)
	h.log.Info("identity: anonymous sign-in complete", zap.String("uid", uid))
}

func (h *Handshake) finish() {
	h.ready.Store(true)
	close(h.done)
}

// Ready reports whether the handshake has finished.
func (h *Handshake) Ready() bool { return h.ready.Load() }

// Done is closed when the handshake finishes.
func (h *Handshake) Done() <-chan struct{} { return h.done }

// UID returns the anonymous user id, or "" if sign-in has not completed
// or failed.
func (h *Handshake) UID() string {
	s, _ := h.uid.Load().(string)
	return s
}
