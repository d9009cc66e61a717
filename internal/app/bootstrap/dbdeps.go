// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/dailyhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// AuthLimiter counts credential attempts per client IP. Nil when
	// auth_rate_limit is 0.
	AuthLimiter *ratelimit.Limiter
}
