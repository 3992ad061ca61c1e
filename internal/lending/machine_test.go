package lending

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/models"
)

func availableBook(owner primitive.ObjectID, requesters ...primitive.ObjectID) models.Book {
	return models.Book{
		ID:        primitive.NewObjectID(),
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		Genre:     "Programming",
		Available: true,
		OwnerID:   owner,
		Requests:  requesters,
	}
}

func TestApplyRequest(t *testing.T) {
	owner := primitive.NewObjectID()
	requester := primitive.NewObjectID()

	book := availableBook(owner)

	next, err := applyRequest(book, requester)
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if !next.HasRequest(requester) {
		t.Error("requester missing from queue")
	}
	if len(book.Requests) != 0 {
		t.Error("input book was mutated")
	}
}

func TestApplyRequest_SelfRequestRejected(t *testing.T) {
	owner := primitive.NewObjectID()
	book := availableBook(owner)

	_, err := applyRequest(book, owner)
	if CodeOf(err) != CodeInvalidInput {
		t.Errorf("expected invalid_input, got %v", err)
	}
}

func TestApplyRequest_BorrowedBookRejected(t *testing.T) {
	owner := primitive.NewObjectID()
	borrower := primitive.NewObjectID()
	book := availableBook(owner)
	book.Available = false
	book.BorrowerID = &borrower

	_, err := applyRequest(book, primitive.NewObjectID())
	if CodeOf(err) != CodeGuardViolation {
		t.Errorf("expected guard_violation, got %v", err)
	}
}

func TestApplyRequest_DuplicateRejected(t *testing.T) {
	owner := primitive.NewObjectID()
	requester := primitive.NewObjectID()
	book := availableBook(owner, requester)

	_, err := applyRequest(book, requester)
	if CodeOf(err) != CodeGuardViolation {
		t.Errorf("expected guard_violation, got %v", err)
	}
}

func TestApplyApprove(t *testing.T) {
	owner := primitive.NewObjectID()
	r1 := primitive.NewObjectID()
	r2 := primitive.NewObjectID()
	book := availableBook(owner, r1, r2)
	now := time.Now()

	next, err := applyApprove(book, r1, now)
	if err != nil {
		t.Fatalf("expected approve to succeed, got %v", err)
	}
	if next.Available {
		t.Error("book should no longer be available")
	}
	if next.BorrowerID == nil || *next.BorrowerID != r1 {
		t.Error("borrower not set to approved requester")
	}
	if len(next.Requests) != 0 {
		t.Errorf("queue should be cleared entirely, got %d entries", len(next.Requests))
	}
	if next.ReturnDueAt == nil || !next.ReturnDueAt.Equal(now.Add(LoanPeriod)) {
		t.Error("return due date should be approval time plus the loan period")
	}
}

func TestApplyApprove_NotInQueue(t *testing.T) {
	owner := primitive.NewObjectID()
	book := availableBook(owner, primitive.NewObjectID())

	_, err := applyApprove(book, primitive.NewObjectID(), time.Now())
	if CodeOf(err) != CodeGuardViolation {
		t.Errorf("expected guard_violation, got %v", err)
	}
}

func TestApplyApprove_BookNotAvailable(t *testing.T) {
	owner := primitive.NewObjectID()
	requester := primitive.NewObjectID()
	borrower := primitive.NewObjectID()

	book := availableBook(owner, requester)
	book.Available = false
	book.BorrowerID = &borrower

	_, err := applyApprove(book, requester, time.Now())
	if CodeOf(err) != CodeGuardViolation {
		t.Errorf("expected guard_violation, got %v", err)
	}
}

func TestApplyReject(t *testing.T) {
	owner := primitive.NewObjectID()
	r1 := primitive.NewObjectID()
	r2 := primitive.NewObjectID()
	book := availableBook(owner, r1, r2)

	next, err := applyReject(book, r1)
	if err != nil {
		t.Fatalf("expected reject to succeed, got %v", err)
	}
	if next.HasRequest(r1) {
		t.Error("rejected requester still in queue")
	}
	if !next.HasRequest(r2) {
		t.Error("other requester should survive a reject")
	}
	if !next.Available {
		t.Error("reject must not change availability")
	}
}

func TestApplyReject_NotInQueue(t *testing.T) {
	owner := primitive.NewObjectID()
	book := availableBook(owner)

	_, err := applyReject(book, primitive.NewObjectID())
	if CodeOf(err) != CodeGuardViolation {
		t.Errorf("expected guard_violation, got %v", err)
	}
}

func TestApplyReturn(t *testing.T) {
	owner := primitive.NewObjectID()
	borrower := primitive.NewObjectID()
	due := time.Now().Add(LoanPeriod)

	book := availableBook(owner)
	book.Available = false
	book.BorrowerID = &borrower
	book.ReturnDueAt = &due

	next, err := applyReturn(book)
	if err != nil {
		t.Fatalf("expected return to succeed, got %v", err)
	}
	if !next.Available || next.BorrowerID != nil || next.ReturnDueAt != nil {
		t.Error("return should reset availability, borrower and due date")
	}
}

func TestApplyReturn_NotBorrowed(t *testing.T) {
	book := availableBook(primitive.NewObjectID())

	_, err := applyReturn(book)
	if CodeOf(err) != CodeGuardViolation {
		t.Errorf("expected guard_violation, got %v", err)
	}
}
