// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// app.Run calls them in order: configuration, DB setup, one-time startup
// work, HTTP handler construction, and finally graceful shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "strataexercise", // used only for logging/diagnostics
	LoadConfig:     LoadConfig,       // load core + app config
	ValidateConfig: ValidateConfig,   // validate MongoDB URI and app knobs
	ConnectDB:      ConnectDB,        // connect to MongoDB and return DBDeps
	EnsureSchema:   EnsureSchema,     // users collection, validator, indexes
	Startup:        Startup,          // log store summary
	BuildHandler:   BuildHandler,     // build the HTTP router + middleware stack
	Shutdown:       Shutdown,         // disconnect MongoDB on shutdown
}
