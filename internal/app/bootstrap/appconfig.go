// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// The struct is passed to most lifecycle hooks, so any configuration needed
// during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer tokens
	JWTSecret  string        // HS256 signing key; at least 32 bytes in production
	SessionTTL time.Duration // lifetime of access tokens issued by register/login

	BcryptCost int

	// Comma-separated allowed origins; "*" allows any.
	CORSAllowedOrigins string

	// Per-IP limit on the credential endpoints. 0 disables limiting.
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Audit logging: "all", "db", "log" or "off".
	AuditLogAuth string

	// Store call deadlines
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}
