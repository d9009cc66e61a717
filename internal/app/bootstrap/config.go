// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/dailyhub/internal/app/system/auditlog"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// devJWTSecret is accepted outside production only.
const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for DailyHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret_key, etc.
//   - Environment variables: DAILYHUB_MONGO_URI, DAILYHUB_JWT_SECRET_KEY, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "daily_reminder_app", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size (default: 0)"},

	// Tokens and passwords
	{Name: "jwt_secret_key", Default: devJWTSecret, Desc: "HS256 signing key for bearer tokens (must be strong in production)"},
	{Name: "jwt_access_token_expire_minutes", Default: 30, Desc: "Access token lifetime in minutes"},
	{Name: "bcrypt_cost", Default: bcrypt.DefaultCost, Desc: "bcrypt work factor for new password hashes"},

	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated CORS origins, or * for any"},

	// Credential endpoint rate limiting
	{Name: "auth_rate_limit", Default: 10, Desc: "Requests per client IP per window on /api/auth credential endpoints (0 disables)"},
	{Name: "auth_rate_window", Default: "1m", Desc: "Rate limit window (e.g., 1m, 30s)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Store deadlines
	{Name: "timeout_ping", Default: "2s", Desc: "Deadline for health-check pings"},
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document reads and writes"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list queries and multi-step operations"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, DAILYHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DAILYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:  appValues.String("jwt_secret_key"),
		SessionTTL: time.Duration(appValues.Int("jwt_access_token_expire_minutes")) * time.Minute,
		BcryptCost: appValues.Int("bcrypt_cost"),

		CORSAllowedOrigins: appValues.String("cors_allowed_origins"),

		AuthRateLimit:  appValues.Int("auth_rate_limit"),
		AuthRateWindow: appValues.Duration("auth_rate_window", time.Minute),

		AuditLogAuth: appValues.String("audit_log_auth"),

		TimeoutPing:   appValues.Duration("timeout_ping", 2*time.Second),
		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The development signing key and short keys are refused in production
// and only warned about elsewhere.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if err := validateSecret(coreCfg.Env, appCfg.JWTSecret, logger); err != nil {
		return err
	}
	if appCfg.SessionTTL <= 0 {
		return fmt.Errorf("jwt_access_token_expire_minutes must be positive")
	}
	if appCfg.BcryptCost < bcrypt.MinCost || appCfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, appCfg.BcryptCost)
	}

	if appCfg.AuthRateLimit < 0 {
		return fmt.Errorf("auth_rate_limit must not be negative")
	}
	if appCfg.AuthRateLimit > 0 && appCfg.AuthRateWindow <= 0 {
		return fmt.Errorf("auth_rate_window must be positive when auth_rate_limit is set")
	}

	switch appCfg.AuditLogAuth {
	case auditlog.DestAll, auditlog.DestDB, auditlog.DestLog, auditlog.DestOff:
	default:
		return fmt.Errorf("audit_log_auth must be one of all, db, log, off; got %q", appCfg.AuditLogAuth)
	}

	return nil
}

func validateSecret(env, secret string, logger *zap.Logger) error {
	if secret == "" {
		return fmt.Errorf("jwt_secret_key must not be empty")
	}
	weak := secret == devJWTSecret || auth.SecretIsShort(secret)
	if !weak {
		return nil
	}
	if env == "prod" {
		return fmt.Errorf("jwt_secret_key must be a non-default key of at least 32 bytes in production")
	}
	logger.Warn("using a weak jwt_secret_key; set DAILYHUB_JWT_SECRET_KEY before deploying")
	return nil
}
