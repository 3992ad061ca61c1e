package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/handlers"
	"github.com/anjalik06/bookshare-backend/internal/lending"
	"github.com/anjalik06/bookshare-backend/internal/middleware"
	"github.com/anjalik06/bookshare-backend/internal/models"
	"github.com/anjalik06/bookshare-backend/internal/store"
	"github.com/anjalik06/bookshare-backend/internal/utils"
)

type testEnv struct {
	router *mux.Router
	books  *store.MemoryBookStore
	users  *store.MemoryUserStore
}

// newTestEnv wires the full router over in-memory stores, the same shape as
// cmd/main.go but without Mongo.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.InitJwtSecret("test-secret")

	books := store.NewMemoryBookStore()
	users := store.NewMemoryUserStore()
	awards := store.NewMemoryAwardStore()
	service := lending.NewService(books, lending.NewLedger(users, awards))

	bookHandler := handlers.NewBookHandler(service, utils.Logger{})
	lendingHandler := handlers.NewLendingHandler(service, utils.Logger{})

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)

	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.JWTAuthMiddleware)

	api.HandleFunc("/books", bookHandler.UploadBook).Methods("POST")
	api.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	api.HandleFunc("/books/available", bookHandler.GetAvailableBooks).Methods("GET")
	api.HandleFunc("/books/owner/{userId}", bookHandler.GetBooksByOwner).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")
	api.HandleFunc("/books/{id}/request", lendingHandler.RequestBook).Methods("POST")
	api.HandleFunc("/books/{bookId}/requests/{requesterId}/approve", lendingHandler.ApproveRequest).Methods("POST")
	api.HandleFunc("/books/{bookId}/requests/{requesterId}/reject", lendingHandler.RejectRequest).Methods("POST")
	api.HandleFunc("/books/{id}/return", lendingHandler.ReturnBook).Methods("POST")
	api.HandleFunc("/requests/owner/{userId}", lendingHandler.GetRequestsForOwner).Methods("GET")
	api.HandleFunc("/loans/out/{userId}", lendingHandler.GetOnLoan).Methods("GET")
	api.HandleFunc("/loans/borrowed/{userId}", lendingHandler.GetBorrowed).Methods("GET")

	return &testEnv{router: r, books: books, users: users}
}

func (e *testEnv) user(t *testing.T) models.User {
	t.Helper()
	return e.users.Put(models.User{Name: "user"})
}

func (e *testEnv) do(t *testing.T, method, path string, body []byte, asUser primitive.ObjectID) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if !asUser.IsZero() {
		token, err := utils.GenerateJWT(asUser.Hex())
		if err != nil {
			t.Fatalf("failed to mint test token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
