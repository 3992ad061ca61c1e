package lending

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/models"
)

// LoanPeriod is the fixed offset from approval time to the return due date.
// It is computed server-side and never client-supplied.
const LoanPeriod = 14 * 24 * time.Hour

// The transition functions below are the whole lending state machine. Each
// takes the current book state by value, checks the transition guard, and
// returns the next state. They never touch storage; the service commits the
// result through a compare-and-swap, so a transition computed from a stale
// read fails at commit time instead of corrupting state.

func applyRequest(book models.Book, requesterID primitive.ObjectID) (models.Book, error) {
	if book.OwnerID == requesterID {
		return models.Book{}, invalidErr("cannot request your own book")
	}
	if !book.Available {
		return models.Book{}, guardErr("book not available")
	}
	next := book.Clone()
	if !next.AddRequest(requesterID) {
		return models.Book{}, guardErr("request already pending")
	}
	return next, nil
}

func applyApprove(book models.Book, requesterID primitive.ObjectID, now time.Time) (models.Book, error) {
	if !book.HasRequest(requesterID) {
		return models.Book{}, guardErr("request no longer pending")
	}
	if !book.Available {
		return models.Book{}, guardErr("book no longer available")
	}

	// Approval lends the book out, so every other pending request is stale and
	// is discarded. Those requesters must re-request after a future return.
	next := book.Clone()
	next.ClearRequests()
	next.Available = false
	next.BorrowerID = &requesterID
	due := now.Add(LoanPeriod)
	next.ReturnDueAt = &due
	return next, nil
}

func applyReject(book models.Book, requesterID primitive.ObjectID) (models.Book, error) {
	next := book.Clone()
	if !next.RemoveRequest(requesterID) {
		return models.Book{}, guardErr("request no longer pending")
	}
	return next, nil
}

func applyReturn(book models.Book) (models.Book, error) {
	if book.BorrowerID == nil {
		return models.Book{}, guardErr("book is not currently borrowed")
	}
	next := book.Clone()
	next.Available = true
	next.BorrowerID = nil
	next.ReturnDueAt = nil
	return next, nil
}
