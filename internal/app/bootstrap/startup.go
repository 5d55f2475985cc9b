// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after DB connections and schema
// setup. It kicks off the anonymous identity handshake in the background
// and does not wait for it; clients poll authReady on /api/session.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	deps.Identity.Start(context.WithoutCancel(ctx))
	return nil
}
