package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anjalik06/bookshare-backend/internal/models"
)

type MongoBookStore struct {
	Collection *mongo.Collection
}

func NewMongoBookStore(coll *mongo.Collection) *MongoBookStore {
	return &MongoBookStore{Collection: coll}
}

func (s *MongoBookStore) Get(ctx context.Context, id primitive.ObjectID) (models.Book, error) {
	var book models.Book
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (s *MongoBookStore) Create(ctx context.Context, book models.Book) (models.Book, error) {
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	book.Version = 1
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt

	if _, err := s.Collection.InsertOne(ctx, book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (s *MongoBookStore) CompareAndSwap(ctx context.Context, id primitive.ObjectID, expectedVersion int64, next models.Book) (models.Book, error) {
	next.ID = id
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now()

	res, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": id, "version": expectedVersion}, next)
	if err != nil {
		return models.Book{}, err
	}
	if res.MatchedCount == 0 {
		// Either the book is gone or someone committed in between.
		count, err := s.Collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return models.Book{}, err
		}
		if count == 0 {
			return models.Book{}, ErrNotFound
		}
		return models.Book{}, ErrVersionConflict
	}
	return next, nil
}

func (s *MongoBookStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoBookStore) ListAll(ctx context.Context) ([]models.Book, error) {
	return s.list(ctx, bson.M{})
}

func (s *MongoBookStore) ListAvailable(ctx context.Context) ([]models.Book, error) {
	return s.list(ctx, bson.M{"available": true})
}

func (s *MongoBookStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Book, error) {
	return s.list(ctx, bson.M{"owner_id": ownerID})
}

func (s *MongoBookStore) ListByBorrower(ctx context.Context, borrowerID primitive.ObjectID) ([]models.Book, error) {
	return s.list(ctx, bson.M{"borrower_id": borrowerID})
}

func (s *MongoBookStore) list(ctx context.Context, filter bson.M) ([]models.Book, error) {
	cursor, err := s.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

type MongoUserStore struct {
	Collection *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{Collection: coll}
}

func (s *MongoUserStore) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoUserStore) ApplyDelta(ctx context.Context, id primitive.ObjectID, delta models.UserDelta) error {
	if delta.IsZero() {
		return nil
	}

	inc := bson.M{}
	if delta.Points != 0 {
		inc["points"] = delta.Points
	}
	if delta.BooksShared != 0 {
		inc["books_shared"] = delta.BooksShared
	}
	if delta.BooksBorrowed != 0 {
		inc["books_borrowed"] = delta.BooksBorrowed
	}

	res, err := s.Collection.UpdateByID(ctx, id, bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoAwardStore struct {
	Collection *mongo.Collection
}

func NewMongoAwardStore(coll *mongo.Collection) *MongoAwardStore {
	return &MongoAwardStore{Collection: coll}
}

func (s *MongoAwardStore) Add(ctx context.Context, award models.PendingAward) error {
	if award.ID.IsZero() {
		award.ID = primitive.NewObjectID()
	}
	_, err := s.Collection.InsertOne(ctx, award)
	return err
}

func (s *MongoAwardStore) ListUnapplied(ctx context.Context) ([]models.PendingAward, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{"applied": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var awards []models.PendingAward
	if err = cursor.All(ctx, &awards); err != nil {
		return nil, err
	}
	return awards, nil
}

func (s *MongoAwardStore) MarkApplied(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.Collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"applied": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
