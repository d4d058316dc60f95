// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, log level, CORS for the site as a
// whole and request body limits. AppConfig carries what only this service
// needs: where the users collection lives, the optional write key, and the
// few knobs on the HTTP surface.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// APIKey guards POST /api/users and POST /api/users/{_id}/exercises with
	// Bearer auth. Empty leaves writes open.
	APIKey string

	// APICORSOrigins lists origins allowed to call /api/users. Empty allows any.
	APICORSOrigins []string

	MetricsEnabled bool          // Mount /metrics (default: true)
	StaticDir      string        // Directory served at /static (default: static)
	RequestTimeout time.Duration // Per-request deadline (default: 30s)

	// Store call deadlines, applied inside the request deadline
	StorePingTimeout  time.Duration // Health check ping (default: 2s)
	StoreWriteTimeout time.Duration // Create user, add exercise (default: 5s)
	StoreQueryTimeout time.Duration // List users, log aggregation (default: 10s)
}
