package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/models"
)

// MemoryBookStore keeps books in a map behind a mutex. It honors the same
// CompareAndSwap contract as the Mongo store and is what the lending engine
// tests run against.
type MemoryBookStore struct {
	mu    sync.Mutex
	books map[primitive.ObjectID]models.Book
}

func NewMemoryBookStore() *MemoryBookStore {
	return &MemoryBookStore{books: make(map[primitive.ObjectID]models.Book)}
}

func (s *MemoryBookStore) Get(_ context.Context, id primitive.ObjectID) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return models.Book{}, ErrNotFound
	}
	return book.Clone(), nil
}

func (s *MemoryBookStore) Create(_ context.Context, book models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	book.Version = 1
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt

	s.books[book.ID] = book.Clone()
	return book, nil
}

func (s *MemoryBookStore) CompareAndSwap(_ context.Context, id primitive.ObjectID, expectedVersion int64, next models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.books[id]
	if !ok {
		return models.Book{}, ErrNotFound
	}
	if current.Version != expectedVersion {
		return models.Book{}, ErrVersionConflict
	}

	next.ID = id
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now()

	s.books[id] = next.Clone()
	return next, nil
}

func (s *MemoryBookStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *MemoryBookStore) ListAll(_ context.Context) ([]models.Book, error) {
	return s.list(func(models.Book) bool { return true }), nil
}

func (s *MemoryBookStore) ListAvailable(_ context.Context) ([]models.Book, error) {
	return s.list(func(b models.Book) bool { return b.Available }), nil
}

func (s *MemoryBookStore) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Book, error) {
	return s.list(func(b models.Book) bool { return b.OwnerID == ownerID }), nil
}

func (s *MemoryBookStore) ListByBorrower(_ context.Context, borrowerID primitive.ObjectID) ([]models.Book, error) {
	return s.list(func(b models.Book) bool { return b.BorrowerID != nil && *b.BorrowerID == borrowerID }), nil
}

func (s *MemoryBookStore) list(match func(models.Book) bool) []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	var books []models.Book
	for _, b := range s.books {
		if match(b) {
			books = append(books, b.Clone())
		}
	}
	return books
}

type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User

	// FailNext makes the next ApplyDelta return the given error, so tests can
	// exercise the partial-failure path of the ledger.
	FailNext error
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Put(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return user
}

func (s *MemoryUserStore) Get(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryUserStore) ApplyDelta(_ context.Context, id primitive.ObjectID, delta models.UserDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return err
	}

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Points += delta.Points
	user.BooksShared += delta.BooksShared
	user.BooksBorrowed += delta.BooksBorrowed
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

type MemoryAwardStore struct {
	mu     sync.Mutex
	awards map[primitive.ObjectID]models.PendingAward
}

func NewMemoryAwardStore() *MemoryAwardStore {
	return &MemoryAwardStore{awards: make(map[primitive.ObjectID]models.PendingAward)}
}

func (s *MemoryAwardStore) Add(_ context.Context, award models.PendingAward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if award.ID.IsZero() {
		award.ID = primitive.NewObjectID()
	}
	s.awards[award.ID] = award
	return nil
}

func (s *MemoryAwardStore) ListUnapplied(_ context.Context) ([]models.PendingAward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var awards []models.PendingAward
	for _, a := range s.awards {
		if !a.Applied {
			awards = append(awards, a)
		}
	}
	return awards, nil
}

func (s *MemoryAwardStore) MarkApplied(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	award, ok := s.awards[id]
	if !ok {
		return ErrNotFound
	}
	award.Applied = true
	s.awards[id] = award
	return nil
}
