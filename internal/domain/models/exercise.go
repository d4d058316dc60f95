// internal/domain/models/exercise.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is one logged activity embedded in User.Log.
//
// Duration is in minutes and never negative. ID is only used to give
// entries on the same date a stable order; it is not exposed.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

// ExerciseRecord is returned after an exercise is added: the owning user
// plus the new entry, with the date already formatted for display.
type ExerciseRecord struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is one exercise as it appears in a log summary.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogSummary is a user's filtered exercise log. Count always equals len(Log).
type LogSummary struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}
