package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Author      string               `bson:"author" json:"author"`
	Genre       string               `bson:"genre" json:"genre"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Cover       string               `bson:"cover,omitempty" json:"cover,omitempty"`
	Available   bool                 `bson:"available" json:"available"`
	OwnerID     primitive.ObjectID   `bson:"owner_id" json:"owner_id"`
	Requests    []primitive.ObjectID `bson:"requests" json:"requests"`
	BorrowerID  *primitive.ObjectID  `bson:"borrower_id,omitempty" json:"borrower_id,omitempty"`
	ReturnDueAt *time.Time           `bson:"return_due_at,omitempty" json:"return_due_at,omitempty"`
	Version     int64                `bson:"version" json:"-"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

const (
	BookEntity = "book"
)

// HasRequest reports whether id is already in the pending-request queue.
func (b *Book) HasRequest(id primitive.ObjectID) bool {
	for _, r := range b.Requests {
		if r == id {
			return true
		}
	}
	return false
}

// AddRequest appends id to the queue, preserving insertion order.
// It returns false if id is already present.
func (b *Book) AddRequest(id primitive.ObjectID) bool {
	if b.HasRequest(id) {
		return false
	}
	b.Requests = append(b.Requests, id)
	return true
}

// RemoveRequest drops id from the queue. It returns false if id was not present.
func (b *Book) RemoveRequest(id primitive.ObjectID) bool {
	for i, r := range b.Requests {
		if r == id {
			b.Requests = append(b.Requests[:i], b.Requests[i+1:]...)
			return true
		}
	}
	return false
}

// ClearRequests empties the queue. Used when an approval lends the book out.
func (b *Book) ClearRequests() {
	b.Requests = nil
}

// Clone returns a copy of the book with its own requests slice, so callers
// can compute a next state without aliasing the stored one.
func (b *Book) Clone() Book {
	c := *b
	if b.Requests != nil {
		c.Requests = make([]primitive.ObjectID, len(b.Requests))
		copy(c.Requests, b.Requests)
	}
	if b.BorrowerID != nil {
		borrower := *b.BorrowerID
		c.BorrowerID = &borrower
	}
	if b.ReturnDueAt != nil {
		due := *b.ReturnDueAt
		c.ReturnDueAt = &due
	}
	return c
}
