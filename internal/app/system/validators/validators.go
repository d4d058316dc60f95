// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/strataexercise/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll makes sure the users collection exists with its JSON-Schema
// validator. A new collection is created with the validator attached; an
// existing one gets it through collMod. Servers without collMod support
// (some DocumentDB versions) log and run without it.
//
// Input is validated before every write, so a schema rejection here means
// a write path skipped that step.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	if err := ensureValidated(ctx, db, models.UsersCollection, usersSchema()); err != nil {
		return errors.New(models.UsersCollection + ": " + err.Error())
	}
	return nil
}

func ensureValidated(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	log := zap.L().With(zap.String("collection", name))

	created, err := ensureCollection(ctx, db, name, schema)
	if err != nil {
		return err
	}
	if created {
		return nil
	}

	err = setValidator(ctx, db, name, schema)
	switch {
	case err == nil:
		log.Info("validator ensured")
		return nil
	case isNoSuchCommand(err) || isNotImplemented(err):
		log.Info("validator skipped (unsupported)", zap.Error(err))
		return nil
	default:
		return err
	}
}

// collectionExists reports whether name is already in db.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection creates name with schema unless it exists. created is
// true only when this call made it. A nil schema creates a plain collection.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, schema bson.M) (created bool, err error) {
	if exists, listErr := collectionExists(ctx, db, name); listErr == nil && exists {
		return false, nil
	}

	opts := options.CreateCollection()
	if schema != nil {
		opts.SetValidator(schema).
			SetValidationLevel("moderate").
			SetValidationAction("error")
	}
	if err := db.CreateCollection(ctx, name, opts); err != nil {
		// lost a race with another instance, or listing failed above
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name), zap.Bool("validated", schema != nil))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	return db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}).Err()
}

// commandErrIs matches err by server code first, then by message fragment.
func commandErrIs(err error, code int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrIs(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrIs(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrIs(err, 115, "not implemented", "not supported")
}

// usersSchema mirrors models.User: a non-blank username and a log of
// entries that each carry a description, a non-negative whole duration
// and a date.
func usersSchema() bson.M {
	nonBlank := bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	entry := bson.M{
		"bsonType": "object",
		"required": bson.A{"description", "duration", "date"},
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"description": nonBlank,
			"duration":    bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			"date":        bson.M{"bsonType": "date"},
		},
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "log"},
			"properties": bson.M{
				"username":    nonBlank,
				"username_ci": bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
				"log":         bson.M{"bsonType": "array", "items": entry},
			},
		},
	}
}
