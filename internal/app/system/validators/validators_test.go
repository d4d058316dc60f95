package validators

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/strataexercise/internal/domain/models"
	"github.com/dalemusser/strataexercise/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll_CreatesUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// twice: EnsureAll runs on every boot
	for i := 0; i < 2; i++ {
		if err := EnsureAll(ctx, db); err != nil {
			t.Fatalf("EnsureAll() run %d error = %v", i+1, err)
		}
	}

	exists, err := collectionExists(ctx, db, models.UsersCollection)
	if err != nil {
		t.Fatalf("collectionExists() error = %v", err)
	}
	if !exists {
		t.Errorf("collection %s should exist after EnsureAll", models.UsersCollection)
	}
}

func TestUsersSchema_Enforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}
	users := db.Collection(models.UsersCollection)

	entry := func(desc string, duration int) bson.M {
		return bson.M{"_id": primitive.NewObjectID(), "description": desc, "duration": duration, "date": time.Now()}
	}

	tests := []struct {
		name    string
		doc     bson.M
		wantErr bool
	}{
		{"valid empty log", bson.M{"username": "ann", "username_ci": "ann", "log": bson.A{}}, false},
		{"valid with entry", bson.M{"username": "ann", "log": bson.A{entry("run", 30)}}, false},
		{"zero duration", bson.M{"username": "ann", "log": bson.A{entry("run", 0)}}, false},
		{"missing username", bson.M{"log": bson.A{}}, true},
		{"blank username", bson.M{"username": "   ", "log": bson.A{}}, true},
		{"missing log", bson.M{"username": "ann"}, true},
		{"negative duration", bson.M{"username": "ann", "log": bson.A{entry("run", -1)}}, true},
		{"blank description", bson.M{"username": "ann", "log": bson.A{entry("", 5)}}, true},
		{"string date", bson.M{"username": "ann", "log": bson.A{
			bson.M{"description": "run", "duration": 5, "date": "2022-08-01"},
		}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.InsertOne(ctx, tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertOne() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := ensureCollection(ctx, db, "scratch", nil)
	if err != nil {
		t.Fatalf("first ensureCollection() error = %v", err)
	}
	if !created {
		t.Error("first ensureCollection() should report created")
	}

	created, err = ensureCollection(ctx, db, "scratch", nil)
	if err != nil {
		t.Fatalf("second ensureCollection() error = %v", err)
	}
	if created {
		t.Error("second ensureCollection() should not report created")
	}
}

func TestEnsureCollection_WithSchema(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	schema := bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name"},
	}}
	created, err := ensureCollection(ctx, db, "scratch_validated", schema)
	if err != nil {
		t.Fatalf("ensureCollection() error = %v", err)
	}
	if !created {
		t.Fatal("ensureCollection() should report created")
	}

	coll := db.Collection("scratch_validated")
	if _, err := coll.InsertOne(ctx, bson.M{"name": "ok"}); err != nil {
		t.Errorf("valid insert rejected: %v", err)
	}
	if _, err := coll.InsertOne(ctx, bson.M{"other": 1}); err == nil {
		t.Error("insert without name should be rejected by the validator")
	}
}

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name     string
		classify func(error) bool
		err      error
		want     bool
	}{
		{"namespace nil", isNamespaceExistsErr, nil, false},
		{"namespace generic", isNamespaceExistsErr, errors.New("boom"), false},
		{"namespace message", isNamespaceExistsErr, errors.New("collection already exists"), true},
		{"namespace code 48", isNamespaceExistsErr, mongo.CommandError{Code: 48, Message: "exists"}, true},

		{"no such command nil", isNoSuchCommand, nil, false},
		{"no such command message", isNoSuchCommand, errors.New("NO SUCH COMMAND"), true},
		{"no such command code 59", isNoSuchCommand, mongo.CommandError{Code: 59}, true},

		{"not implemented nil", isNotImplemented, nil, false},
		{"not implemented generic", isNotImplemented, errors.New("boom"), false},
		{"not supported message", isNotImplemented, errors.New("collMod not supported"), true},
		{"not implemented code 115", isNotImplemented, mongo.CommandError{Code: 115}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
