package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Bio           string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePic    string             `bson:"profile_pic,omitempty" json:"profile_pic,omitempty"`
	Points        int                `bson:"points" json:"points"`
	BooksShared   int                `bson:"books_shared" json:"books_shared"`
	BooksBorrowed int                `bson:"books_borrowed" json:"books_borrowed"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

const (
	UserEntity = "user"
)

// UserDelta is an increment-only change to a user's reward counters.
// Zero fields are left untouched.
type UserDelta struct {
	Points        int `bson:"points,omitempty" json:"points,omitempty"`
	BooksShared   int `bson:"books_shared,omitempty" json:"books_shared,omitempty"`
	BooksBorrowed int `bson:"books_borrowed,omitempty" json:"books_borrowed,omitempty"`
}

// IsZero reports whether the delta would change nothing.
func (d UserDelta) IsZero() bool {
	return d.Points == 0 && d.BooksShared == 0 && d.BooksBorrowed == 0
}
