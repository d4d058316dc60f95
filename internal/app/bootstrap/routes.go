// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/strataexercise/internal/app/features/errors"
	exercisesfeature "github.com/dalemusser/strataexercise/internal/app/features/exercises"
	healthfeature "github.com/dalemusser/strataexercise/internal/app/features/health"
	homefeature "github.com/dalemusser/strataexercise/internal/app/features/home"
	userstore "github.com/dalemusser/strataexercise/internal/app/store/users"
	"github.com/dalemusser/strataexercise/internal/app/system/metrics"
	"github.com/dalemusser/strataexercise/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the service.
//
// WAFFLE calls this after Startup, and serves the returned handler with the
// ports, TLS and timeouts from CoreConfig.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.RealIP)

	// request ID + access log, outermost so the log sees the final status
	r.Use(reqlog.Middleware(reqlog.DefaultConfig(logger)))

	if appCfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}

	// site-wide CORS and security headers from WAFFLE core config;
	// /api/users adds its own CORS on top
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	r.Use(chimw.Timeout(appCfg.RequestTimeout))

	mountRoutes(r, appCfg, deps, logger)
	return r, nil
}

// mountRoutes attaches every feature router. Split from BuildHandler so tests
// can exercise the routing table without a WAFFLE core config.
func mountRoutes(r chi.Router, appCfg AppConfig, deps DBDeps, logger *zap.Logger) {
	// fallbacks first so mounted subrouters inherit them
	errorsHandler := errorsfeature.NewHandler(logger)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	if appCfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", appCfg.StaticDir))

	// Exercise tracker API
	exercisesHandler := exercisesfeature.NewHandler(userstore.New(deps.MongoDatabase), errorsfeature.NewErrorLogger(logger), logger)
	r.Mount("/api/users", exercisesfeature.Routes(exercisesHandler, appCfg.APIKey, appCfg.APICORSOrigins, logger))

	// Landing page
	homeHandler := homefeature.NewHandler(appCfg.APIKey != "", logger)
	r.Mount("/", homefeature.Routes(homeHandler))
}
