// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/strataexercise/internal/app/store/users"
	"github.com/dalemusser/strataexercise/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after the schema is in place and before requests are
// served. It applies the store timeouts, then reads the user count so a
// broken collection fails the boot rather than the first request.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:  appCfg.StorePingTimeout,
		Write: appCfg.StoreWriteTimeout,
		Query: appCfg.StoreQueryTimeout,
	})

	n, err := userstore.New(deps.MongoDatabase).Count(ctx)
	if err != nil {
		logger.Error("users collection not readable", zap.Error(err))
		return err
	}
	t := timeouts.Current()
	logger.Info("exercise store ready",
		zap.Int64("users", n),
		zap.Duration("ping_timeout", t.Ping),
		zap.Duration("write_timeout", t.Write),
		zap.Duration("query_timeout", t.Query),
		zap.Bool("api_key_required", appCfg.APIKey != ""),
		zap.Bool("metrics_enabled", appCfg.MetricsEnabled))
	return nil
}
