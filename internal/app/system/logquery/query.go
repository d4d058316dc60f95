// Package logquery builds and runs the aggregation that summarizes one
// user's exercise log.
//
// The pipeline is an ordered list of Stage values:
//
//	match user -> unwind log -> sort by date -> [match date range] -> [limit] -> group -> project
//
// Filters are validated before anything touches the store. Dates in the
// result are formatted for display while reshaping.
package logquery

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/dalemusser/strataexercise/internal/app/system/calendar"
	"github.com/dalemusser/strataexercise/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Source is the part of the users collection the query needs.
// *mongo.Collection satisfies it.
type Source interface {
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// aggregated is the single document the pipeline produces.
type aggregated struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Count    int                `bson:"count"`
	Log      []struct {
		Description string    `bson:"description"`
		Duration    int       `bson:"duration"`
		Date        time.Time `bson:"date"`
	} `bson:"log"`
}

// ParseUserID validates a user identifier.
func ParseUserID(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidIdentifier()
	}
	return id, nil
}

// Query returns the log summary for userID.
//
// Errors are typed: a ClientInputError for a bad id or filter (the store is
// not called), ErrNotFound when the user does not exist, and an
// InfrastructureError when the store fails.
//
// A user that exists but has no rows left after filtering comes back with
// Count 0 and an empty Log. The pipeline alone cannot tell that case from a
// missing user, so an empty result is followed by one _id lookup.
func Query(ctx context.Context, src Source, userID string, raw RawFilters) (*models.LogSummary, error) {
	id, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	f, err := ParseFilters(raw)
	if err != nil {
		return nil, err
	}

	cur, err := src.Aggregate(ctx, Pipeline(Build(id, f)))
	if err != nil {
		return nil, apperr.Store("aggregate exercise log", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var doc aggregated
		if err := cur.Decode(&doc); err != nil {
			return nil, apperr.Store("decode exercise log", err)
		}
		return reshape(doc), nil
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Store("read exercise log", err)
	}

	var u struct {
		Username string `bson:"username"`
	}
	opts := options.FindOne().SetProjection(bson.M{"username": 1})
	if err := src.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(id.Hex())
		}
		return nil, apperr.Store("find user", err)
	}
	return &models.LogSummary{
		ID:       id.Hex(),
		Username: u.Username,
		Count:    0,
		Log:      []models.LogEntry{},
	}, nil
}

func reshape(doc aggregated) *models.LogSummary {
	out := &models.LogSummary{
		ID:       doc.ID.Hex(),
		Username: doc.Username,
		Count:    doc.Count,
		Log:      make([]models.LogEntry, 0, len(doc.Log)),
	}
	for _, e := range doc.Log {
		out.Log = append(out.Log, models.LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        calendar.Format(e.Date),
		})
	}
	return out
}
