// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/readalong/internal/app/aigateway"
	aifeature "github.com/dalemusser/readalong/internal/app/features/ai"
	articlesfeature "github.com/dalemusser/readalong/internal/app/features/articles"
	healthfeature "github.com/dalemusser/readalong/internal/app/features/health"
	questionsfeature "github.com/dalemusser/readalong/internal/app/features/questions"
	sessionfeature "github.com/dalemusser/readalong/internal/app/features/session"
	"github.com/dalemusser/readalong/internal/app/providers/gemini"
	"github.com/dalemusser/readalong/internal/app/providers/imagen"
	articlestore "github.com/dalemusser/readalong/internal/app/store/articles"
	questionstore "github.com/dalemusser/readalong/internal/app/store/questions"
	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/dalemusser/readalong/internal/app/system/metrics"
	"github.com/dalemusser/readalong/internal/app/system/session"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It builds the provider clients, the
// stores (unconfigured when deps carry no database), the session manager,
// and mounts:
//
//	/health         liveness and store reachability
//	/metrics        Prometheus metrics
//	/api/...        AI gateway, articles, questions, session
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	dev := coreCfg.Env == "dev"

	// Secure cookies are enabled in production mode.
	sessionMgr, err := session.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, coreCfg.Env == "prod", logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	providerMetrics := metrics.NewProvider(reg)

	gw, err := buildGateway(appCfg, providerMetrics, logger)
	if err != nil {
		return nil, err
	}

	articles := articlestore.New(deps.MongoDatabase)
	questions := questionstore.New(deps.MongoDatabase)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, gw.Text != nil, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", metrics.Handler(reg))

	r.Route("/api", func(api chi.Router) {
		api.MethodNotAllowed(apierr.MethodNotAllowed)

		articlesHandler := articlesfeature.NewHandler(articles, questions, dev, logger)
		api.Mount("/articles", articlesfeature.Routes(articlesHandler))

		questionsHandler := questionsfeature.NewHandler(questions, dev, logger)
		api.Mount("/questions", questionsfeature.Routes(questionsHandler))

		sessionHandler := sessionfeature.NewHandler(sessionMgr, deps.Identity, dev, logger)
		api.Mount("/session", sessionfeature.Routes(sessionHandler))

		// generate-article, generate-image, evaluate-question, feedback, debug
		aiHandler := aifeature.NewHandler(gw, dev, logger)
		api.Mount("/", aifeature.Routes(aiHandler))
	})

	return r, nil
}

// buildGateway creates the provider clients when a key is configured.
// Without a key the gateway holds nil generators and every AI route
// reports the missing credential.
func buildGateway(appCfg AppConfig, m *metrics.Provider, logger *zap.Logger) (*aigateway.Gateway, error) {
	var (
		text  aigateway.TextGenerator
		image aigateway.ImageGenerator
	)
	if appCfg.GoogleAPIKey != "" {
		tc, err := gemini.New(context.Background(), gemini.Config{
			APIKey: appCfg.GoogleAPIKey,
			Model:  appCfg.TextModel,
		})
		if err != nil {
			logger.Error("text provider init failed", zap.Error(err))
			return nil, err
		}
		ic, err := imagen.New(imagen.Config{
			APIKey:  appCfg.GoogleAPIKey,
			BaseURL: appCfg.ImageBaseURL,
			Model:   appCfg.ImageModel,
		})
		if err != nil {
			logger.Error("image provider init failed", zap.Error(err))
			return nil, err
		}
		text, image = tc, ic
		logger.Info("AI providers configured",
			zap.String("text_model", tc.Model()),
			zap.String("image_model", appCfg.ImageModel))
	}
	return aigateway.New(text, image, m, appCfg.KeyPrefix(), logger), nil
}
