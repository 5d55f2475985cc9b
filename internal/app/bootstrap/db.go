// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/readalong/internal/app/system/identity"
	"github.com/dalemusser/readalong/internal/app/system/indexes"
	"github.com/dalemusser/readalong/internal/app/system/timeouts"
	"github.com/dalemusser/readalong/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB (when configured) and prepares the
// identity handshake. It does not start the handshake.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var provider identity.Provider
	if appCfg.IdentityAPIKey != "" {
		provider = identity.NewFirebaseProvider(appCfg.IdentityAPIKey)
	}
	deps := DBDeps{Identity: identity.NewHandshake(provider, logger)}

	if appCfg.MongoURI == "" {
		return deps, nil
	}

	connectCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Connect(), logger, "mongo connect")
	defer cancel()

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, pingCancel := timeouts.WithTimeout(ctx, timeouts.Ping(), logger, "mongo ping")
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB ping failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize))

	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	return deps, nil
}

// EnsureSchema creates the collections with their schema validators and
// the indexes the article, question and answer reads depend on. Validator
// problems are logged; index problems abort startup. Nothing to do
// without a store.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	schemaCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Schema(), logger, "ensure indexes")
	defer cancel()

	if err := validators.EnsureAll(schemaCtx, deps.MongoDatabase); err != nil {
		logger.Warn("collection validators not fully applied", zap.Error(err))
	}
	if err := indexes.EnsureAll(schemaCtx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	logger.Info("schema ensured")
	return nil
}
