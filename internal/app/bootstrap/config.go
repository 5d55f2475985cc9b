// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"

	"github.com/dalemusser/readalong/internal/app/providers/gemini"
	"github.com/dalemusser/readalong/internal/app/providers/imagen"
	"github.com/dalemusser/readalong/internal/app/system/session"
	"github.com/dalemusser/readalong/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for readalong.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, google_api_key, etc.
//   - Environment variables: READALONG_MONGO_URI, READALONG_GOOGLE_API_KEY, etc.
//   - Command-line flags: --mongo_uri, --google_api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank disables storage)"},
	{Name: "mongo_database", Default: "readalong", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size (default: 0)"},

	// Generative providers
	{Name: "google_api_key", Default: "", Desc: "Google API key for text and image generation (falls back to GOOGLE_API_KEY)"},
	{Name: "text_model", Default: gemini.DefaultModel, Desc: "Text generation model"},
	{Name: "image_model", Default: imagen.DefaultModel, Desc: "Image generation model"},
	{Name: "image_base_url", Default: imagen.DefaultBaseURL, Desc: "Image generation REST base URL"},

	// Anonymous identity
	{Name: "identity_api_key", Default: "", Desc: "Identity Toolkit web API key (blank skips anonymous sign-in)"},

	// Sessions
	{Name: "session_key", Default: "", Desc: "Session signing key (blank = random per process)"},
	{Name: "session_name", Default: session.DefaultName, Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges flags > env > files > defaults.
// The provider key additionally honors the bare GOOGLE_API_KEY variable
// that existing deployments already set.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "READALONG", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		GoogleAPIKey: appValues.String("google_api_key"),
		TextModel:    appValues.String("text_model"),
		ImageModel:   appValues.String("image_model"),
		ImageBaseURL: appValues.String("image_base_url"),

		IdentityAPIKey: appValues.String("identity_api_key"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
	}

	if appCfg.GoogleAPIKey == "" {
		appCfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	}

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Missing credentials are not errors; they are logged so an operator can
// tell why a route reports a configuration error. A malformed MongoDB URI
// aborts startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	} else {
		logger.Warn("mongo_uri not set; document store disabled")
	}

	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if appCfg.GoogleAPIKey == "" {
		logger.Warn("google_api_key not set; AI routes will fail closed")
	}
	if appCfg.IdentityAPIKey == "" {
		logger.Info("identity_api_key not set; anonymous sign-in skipped")
	}
	if appCfg.SessionKey == "" && coreCfg.Env == "prod" {
		logger.Warn("session_key not set in prod; sessions reset on every restart")
	}

	return nil
}
