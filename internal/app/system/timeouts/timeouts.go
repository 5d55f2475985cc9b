// Package timeouts provides centralized timeout values for startup and
// health-check work against the document store.
//
// Request-path store and provider calls are deliberately unbounded here;
// they run under the request context and the transport's defaults.
//
// Values can be overridden from the environment with ConfigureFromEnv.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values.
const (
	DefaultPing    = 2 * time.Second
	DefaultConnect = 10 * time.Second
	DefaultSchema  = 30 * time.Second
)

var (
	mu      sync.RWMutex
	ping    = DefaultPing
	connect = DefaultConnect
	schema  = DefaultSchema
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Connect returns the timeout for establishing the MongoDB connection.
func Connect() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return connect
}

// Schema returns the timeout for index creation at startup.
func Schema() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return schema
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, connect, schema = DefaultPing, DefaultConnect, DefaultSchema
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_CONNECT and TIMEOUT_SCHEMA
// (Go duration strings). Unset or invalid values keep the current value.
// Returns the number of timeouts configured.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	configured := 0
	for env, dst := range map[string]*time.Duration{
		"TIMEOUT_PING":    &ping,
		"TIMEOUT_CONNECT": &connect,
		"TIMEOUT_SCHEMA":  &schema,
	} {
		if v := os.Getenv(env); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*dst = d
				configured++
			}
		}
	}
	return configured
}

// WithTimeout creates a context with timeout and returns a cancel function
// that logs a warning if the deadline was hit.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
