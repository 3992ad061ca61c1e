package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/models"
)

func uploadBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"title":  "Snow Crash",
		"author": "Neal Stephenson",
		"genre":  "Science Fiction",
		"cover":  "/uploads/snowcrash.jpg",
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestBookHandler_UploadBook(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t)

	w := env.do(t, http.MethodPost, "/books", uploadBody(t), owner.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status Created, got %v: %s", w.Code, w.Body.String())
	}

	var book models.Book
	if err := json.NewDecoder(w.Body).Decode(&book); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !book.Available {
		t.Error("uploaded book should be available")
	}
	if book.OwnerID != owner.ID {
		t.Error("owner should be the authenticated caller")
	}
	if book.Cover != "/uploads/snowcrash.jpg" {
		t.Error("cover reference should be stored unchanged")
	}
}

func TestBookHandler_UploadBook_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t)

	w := env.do(t, http.MethodPost, "/books", []byte(`{"title":"No Author"}`), owner.ID)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status BadRequest, got %v", w.Code)
	}
}

func TestBookHandler_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/books", uploadBody(t), primitive.NilObjectID)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status Unauthorized, got %v", w.Code)
	}
}

func TestBookHandler_GetBook(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t)

	w := env.do(t, http.MethodPost, "/books", uploadBody(t), owner.ID)
	var book models.Book
	json.NewDecoder(w.Body).Decode(&book)

	w = env.do(t, http.MethodGet, "/books/"+book.ID.Hex(), nil, owner.ID)
	if w.Code != http.StatusOK {
		t.Errorf("expected status OK, got %v", w.Code)
	}

	w = env.do(t, http.MethodGet, "/books/"+primitive.NewObjectID().Hex(), nil, owner.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status NotFound, got %v", w.Code)
	}

	w = env.do(t, http.MethodGet, "/books/not-a-hex-id", nil, owner.ID)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status BadRequest, got %v", w.Code)
	}
}

func TestBookHandler_DeleteBook(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t)

	w := env.do(t, http.MethodPost, "/books", uploadBody(t), owner.ID)
	var book models.Book
	json.NewDecoder(w.Body).Decode(&book)

	w = env.do(t, http.MethodDelete, "/books/"+book.ID.Hex(), nil, owner.ID)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status NoContent, got %v", w.Code)
	}

	w = env.do(t, http.MethodDelete, "/books/"+book.ID.Hex(), nil, owner.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status NotFound on second delete, got %v", w.Code)
	}
}
