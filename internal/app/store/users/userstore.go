// internal/app/store/users/userstore.go
package userstore

// Terminology: User Identifiers
//   - UserID / userID / _id: The MongoDB ObjectID that uniquely identifies a user record
//   - Username: The display name given at creation; not unique

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/dalemusser/strataexercise/internal/app/system/calendar"
	"github.com/dalemusser/strataexercise/internal/app/system/inputval"
	"github.com/dalemusser/strataexercise/internal/app/system/logquery"
	"github.com/dalemusser/strataexercise/internal/app/system/normalize"
	"github.com/dalemusser/strataexercise/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.UsersCollection)}
}

// Create inserts a new user with an empty log after normalizing and
// validating the username.
func (s *Store) Create(ctx context.Context, username string) (models.UserRef, error) {
	in := inputval.NewUser{Username: normalize.Username(username)}
	if err := inputval.Validate(in).Err(); err != nil {
		return models.UserRef{}, err
	}

	u := models.User{
		ID:         primitive.NewObjectID(),
		Username:   in.Username,
		UsernameCI: text.Fold(in.Username),
		Log:        []models.Exercise{},
		CreatedAt:  calendar.Now(),
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.UserRef{}, apperr.Store("insert user", err)
	}
	return u.Ref(), nil
}

// List returns every user as {_id, username}, sorted by folded username
// and then by _id so users sharing a name keep creation order.
func (s *Store) List(ctx context.Context) ([]models.UserRef, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "username_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"username": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Store("list users", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Store("decode users", err)
	}

	refs := make([]models.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.Ref())
	}
	return refs, nil
}

// ExerciseInput holds the raw values of an add-exercise request.
type ExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string // optional; empty means now
}

// AddExercise appends one entry to the user's log and returns the user's
// name with the stored entry. The log itself is never read back.
func (s *Store) AddExercise(ctx context.Context, in ExerciseInput) (models.ExerciseRecord, error) {
	v := inputval.NewExercise{
		UserID:      strings.TrimSpace(in.UserID),
		Description: normalize.Description(in.Description),
		Duration:    strings.TrimSpace(in.Duration),
		Date:        strings.TrimSpace(in.Date),
	}
	if err := inputval.Validate(v).Err(); err != nil {
		return models.ExerciseRecord{}, err
	}

	id, err := logquery.ParseUserID(v.UserID)
	if err != nil {
		return models.ExerciseRecord{}, err
	}
	minutes, err := inputval.ParseMinutes(v.Duration)
	if err != nil {
		return models.ExerciseRecord{}, apperr.Input("duration", "Duration must be a whole number of minutes (0 or more).")
	}
	date := calendar.Now()
	if v.Date != "" {
		if date, _, err = calendar.Parse(v.Date); err != nil {
			return models.ExerciseRecord{}, apperr.InvalidDate("date")
		}
	}

	entry := models.Exercise{
		ID:          primitive.NewObjectID(),
		Description: v.Description,
		Duration:    minutes,
		Date:        date,
	}

	var owner struct {
		Username string `bson:"username"`
	}
	opts := options.FindOneAndUpdate().SetProjection(bson.M{"username": 1})
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"log": entry}},
		opts,
	).Decode(&owner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ExerciseRecord{}, apperr.NotFound(id.Hex())
		}
		return models.ExerciseRecord{}, apperr.Store("append exercise", err)
	}

	return models.ExerciseRecord{
		ID:          id.Hex(),
		Username:    owner.Username,
		Description: entry.Description,
		Duration:    entry.Duration,
		Date:        calendar.Format(entry.Date),
	}, nil
}

// GetLogs returns the user's log summary filtered by raw.
func (s *Store) GetLogs(ctx context.Context, userID string, raw logquery.RawFilters) (*models.LogSummary, error) {
	return logquery.Query(ctx, s.c, userID, raw)
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Store("count users", err)
	}
	return n, nil
}
