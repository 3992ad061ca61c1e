// Package lending implements the lending transaction engine: the state
// machine governing a book's availability, its pending-request queue, and the
// points ledger updates coupled to state transitions.
package lending

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/models"
	"github.com/anjalik06/bookshare-backend/internal/store"
)

// casAttempts bounds the re-read/re-validate/re-apply loop on version
// conflicts before a conflict error is surfaced to the caller.
const casAttempts = 3

// Service is the externally callable lending API. It validates intents,
// drives the state machine against the book store, and applies ledger
// deltas once a transition has committed.
type Service struct {
	Books  store.BookStore
	Ledger *Ledger

	now func() time.Time
}

func NewService(books store.BookStore, ledger *Ledger) *Service {
	return &Service{Books: books, Ledger: ledger, now: time.Now}
}

type UploadRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
}

func (r *UploadRequest) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return invalidErr("title is required")
	}
	if strings.TrimSpace(r.Author) == "" {
		return invalidErr("author is required")
	}
	if strings.TrimSpace(r.Genre) == "" {
		return invalidErr("genre is required")
	}
	return nil
}

type RequestSummary struct {
	BookID      primitive.ObjectID `json:"book_id"`
	BookTitle   string             `json:"book_title"`
	Cover       string             `json:"cover,omitempty"`
	RequesterID primitive.ObjectID `json:"requester_id"`
}

type LoanSummary struct {
	BookID         primitive.ObjectID `json:"book_id"`
	BookTitle      string             `json:"book_title"`
	Cover          string             `json:"cover,omitempty"`
	CounterpartyID primitive.ObjectID `json:"counterparty_id"`
	ReturnDueAt    *time.Time         `json:"return_due_at,omitempty"`
}

func (s *Service) UploadBook(ctx context.Context, ownerID primitive.ObjectID, req UploadRequest) (models.Book, error) {
	if ownerID.IsZero() {
		return models.Book{}, invalidErr("owner id is required")
	}
	if err := req.validate(); err != nil {
		return models.Book{}, err
	}

	book, err := s.Books.Create(ctx, models.Book{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Genre:       strings.TrimSpace(req.Genre),
		Description: req.Description,
		Cover:       req.Cover,
		Available:   true,
		OwnerID:     ownerID,
	})
	if err != nil {
		return models.Book{}, err
	}

	s.Ledger.Award(ctx, ownerID, models.UserDelta{Points: uploadPoints}, "book upload")
	return book, nil
}

func (s *Service) RequestBook(ctx context.Context, bookID, requesterID primitive.ObjectID) error {
	if requesterID.IsZero() {
		return invalidErr("requester id is required")
	}
	_, err := s.mutate(ctx, bookID, func(book models.Book) (models.Book, error) {
		return applyRequest(book, requesterID)
	})
	return err
}

func (s *Service) ApproveRequest(ctx context.Context, bookID, requesterID primitive.ObjectID) error {
	book, err := s.mutate(ctx, bookID, func(book models.Book) (models.Book, error) {
		return applyApprove(book, requesterID, s.now())
	})
	if err != nil {
		return err
	}

	// Awards are applied only after the transition committed, so a retried or
	// losing approve can never double-count.
	s.Ledger.Award(ctx, book.OwnerID, models.UserDelta{Points: approvePoints, BooksShared: 1}, "loan approval (owner)")
	s.Ledger.Award(ctx, requesterID, models.UserDelta{BooksBorrowed: 1}, "loan approval (borrower)")
	return nil
}

func (s *Service) RejectRequest(ctx context.Context, bookID, requesterID primitive.ObjectID) error {
	_, err := s.mutate(ctx, bookID, func(book models.Book) (models.Book, error) {
		return applyReject(book, requesterID)
	})
	return err
}

func (s *Service) ReturnBook(ctx context.Context, bookID primitive.ObjectID) error {
	_, err := s.mutate(ctx, bookID, applyReturn)
	return err
}

// DeleteBook removes the book unconditionally, borrowed or not. The borrower's
// outstanding loan simply disappears with the record; see DESIGN.md.
func (s *Service) DeleteBook(ctx context.Context, bookID primitive.ObjectID) error {
	err := s.Books.Delete(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundErr("book")
	}
	return err
}

func (s *Service) GetBook(ctx context.Context, bookID primitive.ObjectID) (models.Book, error) {
	book, err := s.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Book{}, notFoundErr("book")
	}
	return book, err
}

func (s *Service) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.Books.ListAll(ctx)
}

func (s *Service) ListAvailableBooks(ctx context.Context) ([]models.Book, error) {
	return s.Books.ListAvailable(ctx)
}

func (s *Service) ListBooksByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Book, error) {
	return s.Books.ListByOwner(ctx, ownerID)
}

// ListRequestsForOwner flattens the pending queues of every book the owner
// has listed, in queue insertion order.
func (s *Service) ListRequestsForOwner(ctx context.Context, ownerID primitive.ObjectID) ([]RequestSummary, error) {
	books, err := s.Books.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	requests := []RequestSummary{}
	for _, book := range books {
		for _, requesterID := range book.Requests {
			requests = append(requests, RequestSummary{
				BookID:      book.ID,
				BookTitle:   book.Title,
				Cover:       book.Cover,
				RequesterID: requesterID,
			})
		}
	}
	return requests, nil
}

// ListOnLoan returns the owner's books that are currently lent out, with the
// borrower as counterparty.
func (s *Service) ListOnLoan(ctx context.Context, ownerID primitive.ObjectID) ([]LoanSummary, error) {
	books, err := s.Books.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	loans := []LoanSummary{}
	for _, book := range books {
		if book.Available || book.BorrowerID == nil {
			continue
		}
		loans = append(loans, LoanSummary{
			BookID:         book.ID,
			BookTitle:      book.Title,
			Cover:          book.Cover,
			CounterpartyID: *book.BorrowerID,
			ReturnDueAt:    book.ReturnDueAt,
		})
	}
	return loans, nil
}

// ListBorrowed returns the books the user currently holds, with the owner as
// counterparty.
func (s *Service) ListBorrowed(ctx context.Context, borrowerID primitive.ObjectID) ([]LoanSummary, error) {
	books, err := s.Books.ListByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, err
	}

	loans := []LoanSummary{}
	for _, book := range books {
		loans = append(loans, LoanSummary{
			BookID:         book.ID,
			BookTitle:      book.Title,
			Cover:          book.Cover,
			CounterpartyID: book.OwnerID,
			ReturnDueAt:    book.ReturnDueAt,
		})
	}
	return loans, nil
}

// mutate runs a transition against the current book state and commits it with
// a compare-and-swap. On a version conflict it re-reads and re-validates the
// guard from scratch, up to casAttempts times; guard violations fail fast.
func (s *Service) mutate(ctx context.Context, bookID primitive.ObjectID, transition func(models.Book) (models.Book, error)) (models.Book, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		book, err := s.Books.Get(ctx, bookID)
		if errors.Is(err, store.ErrNotFound) {
			return models.Book{}, notFoundErr("book")
		}
		if err != nil {
			return models.Book{}, err
		}

		next, err := transition(book)
		if err != nil {
			return models.Book{}, err
		}

		saved, err := s.Books.CompareAndSwap(ctx, bookID, book.Version, next)
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, store.ErrNotFound) {
			return models.Book{}, notFoundErr("book")
		}
		if err != nil {
			return models.Book{}, err
		}
		return saved, nil
	}
	return models.Book{}, conflictErr()
}
