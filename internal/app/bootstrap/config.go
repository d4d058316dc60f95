// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/strataexercise/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAEXERCISE"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, api_key, etc.
//   - Environment variables: STRATAEXERCISE_MONGO_URI, STRATAEXERCISE_API_KEY, etc.
//   - Command-line flags: --mongo_uri, --api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "strataexercise", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "api_key", Default: "", Desc: "Bearer key required on write endpoints (leave empty to disable)"},
	{Name: "api_cors_origins", Default: "", Desc: "Comma-separated origins allowed on /api/users (empty allows any)"},

	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},
	{Name: "static_dir", Default: "static", Desc: "Directory served at /static"},
	{Name: "request_timeout", Default: "30s", Desc: "Per-request timeout (e.g., 30s, 1m)"},
	{Name: "store_ping_timeout", Default: "2s", Desc: "Timeout for the health check ping"},
	{Name: "store_write_timeout", Default: "5s", Desc: "Timeout for user and exercise writes"},
	{Name: "store_query_timeout", Default: "10s", Desc: "Timeout for the user list and exercise log queries"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig reads .env files, config.yaml/json/toml,
// environment variables (WAFFLE_* for core, STRATAEXERCISE_* for app) and
// flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		APIKey:         appValues.String("api_key"),
		APICORSOrigins: splitList(appValues.String("api_cors_origins")),

		MetricsEnabled: appValues.Bool("metrics_enabled"),
		StaticDir:      appValues.String("static_dir"),
		RequestTimeout: appValues.Duration("request_timeout", 30*time.Second),

		StorePingTimeout:  appValues.Duration("store_ping_timeout", timeouts.DefaultPing),
		StoreWriteTimeout: appValues.Duration("store_write_timeout", timeouts.DefaultWrite),
		StoreQueryTimeout: appValues.Duration("store_query_timeout", timeouts.DefaultQuery),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize && appCfg.MongoMaxPoolSize > 0 {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", appCfg.RequestTimeout)
	}
	if appCfg.APIKey == "" && coreCfg != nil && coreCfg.Env == "prod" {
		logger.Warn("api_key is empty; write endpoints are unauthenticated")
	}

	return nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
