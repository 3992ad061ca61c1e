// Package store holds the persistence contracts for the lending core and their
// MongoDB and in-memory implementations. Every book mutation goes through
// CompareAndSwap, keyed on the book's version stamp, so a transition computed
// from a stale read is rejected instead of silently overwriting.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned by CompareAndSwap when the stored version
	// no longer matches the one the caller read.
	ErrVersionConflict = errors.New("version conflict")
)

type BookStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (models.Book, error)
	Create(ctx context.Context, book models.Book) (models.Book, error)

	// CompareAndSwap persists next in place of the book identified by id, but
	// only if the stored version still equals expectedVersion. The persisted
	// book carries expectedVersion+1.
	CompareAndSwap(ctx context.Context, id primitive.ObjectID, expectedVersion int64, next models.Book) (models.Book, error)

	Delete(ctx context.Context, id primitive.ObjectID) error

	ListAll(ctx context.Context) ([]models.Book, error)
	ListAvailable(ctx context.Context) ([]models.Book, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Book, error)
	ListByBorrower(ctx context.Context, borrowerID primitive.ObjectID) ([]models.Book, error)
}

type UserStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (models.User, error)

	// ApplyDelta increments the user's reward counters. It is atomic per user
	// record and never decrements.
	ApplyDelta(ctx context.Context, id primitive.ObjectID, delta models.UserDelta) error
}

type AwardStore interface {
	Add(ctx context.Context, award models.PendingAward) error
	ListUnapplied(ctx context.Context) ([]models.PendingAward, error)
	MarkApplied(ctx context.Context, id primitive.ObjectID) error
}
