package logquery

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stage is one step of the log aggregation. Each variant renders its own
// stage document; Build decides which variants appear and in what order.
type Stage interface {
	// Name is the aggregation operator, e.g. "$match".
	Name() string
	// Doc renders the stage as a single-key document.
	Doc() bson.D
}

// MatchUser selects the one user document being summarized.
type MatchUser struct {
	ID primitive.ObjectID
}

func (MatchUser) Name() string { return "$match" }

func (s MatchUser) Doc() bson.D {
	return bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: s.ID}}}}
}

// UnwindLog turns each log entry into its own row. Users with an empty
// or missing log produce no rows.
type UnwindLog struct{}

func (UnwindLog) Name() string { return "$unwind" }

func (UnwindLog) Doc() bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$log"},
		{Key: "preserveNullAndEmptyArrays", Value: false},
	}}}
}

// SortByDate orders rows by exercise date, oldest first. Entries on the
// same instant fall back to insertion order via the entry _id.
type SortByDate struct{}

func (SortByDate) Name() string { return "$sort" }

func (SortByDate) Doc() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{
		{Key: "log.date", Value: 1},
		{Key: "log._id", Value: 1},
	}}}
}

// MatchDateRange keeps rows whose date lies within the inclusive bounds.
// A nil bound leaves that side open.
type MatchDateRange struct {
	From *time.Time
	To   *time.Time
}

func (MatchDateRange) Name() string { return "$match" }

func (s MatchDateRange) Doc() bson.D {
	cond := bson.D{}
	if s.From != nil {
		cond = append(cond, bson.E{Key: "$gte", Value: *s.From})
	}
	if s.To != nil {
		cond = append(cond, bson.E{Key: "$lte", Value: *s.To})
	}
	return bson.D{{Key: "$match", Value: bson.D{{Key: "log.date", Value: cond}}}}
}

// Limit keeps the first N rows that survived sorting and filtering.
type Limit struct {
	N int64
}

func (Limit) Name() string { return "$limit" }

func (s Limit) Doc() bson.D {
	return bson.D{{Key: "$limit", Value: s.N}}
}

// GroupByUser folds the surviving rows back under their user.
type GroupByUser struct{}

func (GroupByUser) Name() string { return "$group" }

func (GroupByUser) Doc() bson.D {
	return bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$_id"},
		{Key: "username", Value: bson.D{{Key: "$first", Value: "$username"}}},
		{Key: "log", Value: bson.D{{Key: "$push", Value: "$log"}}},
	}}}
}

// ProjectSummary adds count and drops everything but date, duration and
// description from each entry.
type ProjectSummary struct{}

func (ProjectSummary) Name() string { return "$project" }

func (ProjectSummary) Doc() bson.D {
	return bson.D{{Key: "$project", Value: bson.D{
		{Key: "username", Value: 1},
		{Key: "count", Value: bson.D{{Key: "$size", Value: "$log"}}},
		{Key: "log.date", Value: 1},
		{Key: "log.duration", Value: 1},
		{Key: "log.description", Value: 1},
	}}}
}

// Build returns the stages for one user's log, in execution order.
func Build(userID primitive.ObjectID, f Filters) []Stage {
	stages := []Stage{
		MatchUser{ID: userID},
		UnwindLog{},
		SortByDate{},
	}
	if f.HasRange() {
		stages = append(stages, MatchDateRange{From: f.From, To: f.To})
	}
	if f.Limit > 0 {
		stages = append(stages, Limit{N: f.Limit})
	}
	return append(stages, GroupByUser{}, ProjectSummary{})
}

// Pipeline renders stages for the driver.
func Pipeline(stages []Stage) mongo.Pipeline {
	p := make(mongo.Pipeline, 0, len(stages))
	for _, s := range stages {
		p = append(p, s.Doc())
	}
	return p
}

// Names lists the operator of each stage, for logging and tests.
func Names(stages []Stage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name()
	}
	return names
}
