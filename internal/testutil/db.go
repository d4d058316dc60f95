// Package testutil provides utilities for testing: a per-test MongoDB
// database and HTTP request/response helpers.
package testutil

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/strataexercise/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// TestDBURI is the default MongoDB connection string for tests.
	TestDBURI = "mongodb://localhost:27017"
	// TestDBName is the database name prefix used for tests.
	TestDBName = "strataexercise_test"

	// EnvTestMongoURI points tests at another server.
	EnvTestMongoURI = "STRATAEXERCISE_TEST_MONGO_URI"
	// EnvSkipWithoutMongo, when set, turns an unreachable server into a
	// skip instead of a failure.
	EnvSkipWithoutMongo = "STRATAEXERCISE_TEST_SKIP_NO_MONGO"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// sharedClient connects once per test binary.
func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		uri := TestDBURI
		if v := os.Getenv(EnvTestMongoURI); v != "" {
			uri = v
		}
		client, clientErr = mongo.Connect(ctx, options.Client().
			ApplyURI(uri).
			SetMaxPoolSize(200). // packages run in parallel
			SetMaxConnIdleTime(30*time.Second).
			SetServerSelectionTimeout(10*time.Second))
		if clientErr == nil {
			clientErr = client.Ping(ctx, nil)
		}
	})
	return client, clientErr
}

// SetupTestDB returns an empty database private to t, with the users
// indexes in place. It is dropped when the test finishes.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		if os.Getenv(EnvSkipWithoutMongo) != "" {
			t.Skipf("MongoDB unavailable: %v", err)
		}
		t.Fatalf("failed to connect to test MongoDB: %v", err)
	}

	db := c.Database(DBNameFor(t.Name()))

	ctx, cancel := TestContext()
	defer cancel()

	// a crashed earlier run may have left data behind
	if err := db.Drop(ctx); err != nil {
		t.Fatalf("failed to drop test database: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database on cleanup: %v", err)
		}
	})

	return db
}

// DBNameFor maps a test name to a database name within MongoDB's 63-byte
// limit. Long names keep a readable prefix plus a hash of the full name so
// subtests that share a prefix still get distinct databases.
func DBNameFor(testName string) string {
	const maxLen = 63

	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, testName)

	name := TestDBName + "_" + clean
	if len(name) <= maxLen {
		return name
	}
	sum := sha1.Sum([]byte(testName))
	suffix := "_" + hex.EncodeToString(sum[:])[:10]
	return name[:maxLen-len(suffix)] + suffix
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
