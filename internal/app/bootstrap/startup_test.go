package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/strataexercise/internal/app/system/timeouts"
	"github.com/dalemusser/strataexercise/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartup_AppliesTimeouts(t *testing.T) {
	t.Cleanup(func() {
		timeouts.Configure(timeouts.Config{
			Ping:  timeouts.DefaultPing,
			Write: timeouts.DefaultWrite,
			Query: timeouts.DefaultQuery,
		})
	})

	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	core, logs := observer.New(zapcore.InfoLevel)
	appCfg := testAppConfig()
	appCfg.StorePingTimeout = 3 * time.Second
	appCfg.StoreWriteTimeout = 4 * time.Second
	appCfg.StoreQueryTimeout = 20 * time.Second

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	if err := Startup(ctx, nil, appCfg, deps, zap.New(core)); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}

	if got := timeouts.Query(); got != 20*time.Second {
		t.Errorf("Query() = %s, want 20s", got)
	}

	ready := logs.FilterMessage("exercise store ready").All()
	if len(ready) != 1 {
		t.Fatalf("logged %d ready entries, want 1", len(ready))
	}
	fields := ready[0].ContextMap()
	if fields["users"] != int64(0) {
		t.Errorf("users = %v, want 0", fields["users"])
	}
	if fields["write_timeout"] != 4*time.Second {
		t.Errorf("write_timeout = %v, want 4s", fields["write_timeout"])
	}
}
