// internal/domain/models/user.go
package models

// Terminology: User Identifiers
//   - UserID / userID / _id: The MongoDB ObjectID that uniquely identifies a user record
//   - Username: The display name given at creation; not unique

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsersCollection is the MongoDB collection holding users and their logs.
const UsersCollection = "users"

// User is a person whose exercises are tracked.
//
// The exercise log is embedded: a user document exclusively owns its
// entries, and entries are only ever appended.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"` // folded, for sorting
	Log        []Exercise         `bson:"log" json:"-"`
	CreatedAt  time.Time          `bson:"created_at" json:"-"`
}

// UserRef is the public {_id, username} view of a user.
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Ref returns the public view of u.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID.Hex(), Username: u.Username}
}
