// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/readalong/internal/app/system/identity"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds back-end dependencies for the app. The Mongo fields are
// nil when no document store is configured.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Identity is the process-wide anonymous sign-in, started in Startup.
	Identity *identity.Handshake
}
