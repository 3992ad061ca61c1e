package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/anjalik06/bookshare-backend/internal/constants"
	"github.com/anjalik06/bookshare-backend/internal/lending"
	"github.com/anjalik06/bookshare-backend/internal/middleware"
	"github.com/anjalik06/bookshare-backend/internal/models"
	"github.com/anjalik06/bookshare-backend/internal/utils"
)

type BookHandler struct {
	Service     *lending.Service
	AuditLogger utils.Logger
}

func NewBookHandler(service *lending.Service, logger utils.Logger) *BookHandler {
	return &BookHandler{Service: service, AuditLogger: logger}
}

// POST /books
func (h *BookHandler) UploadBook(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(r)
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req lending.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid request body", http.StatusBadRequest)
		return
	}

	book, err := h.Service.UploadBook(r.Context(), ownerID, req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Upload, middleware.UserID(r.Context()), book)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
}

// GET /books
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Service.ListBooks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(books)
}

// GET /books/available
func (h *BookHandler) GetAvailableBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Service.ListAvailableBooks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(books)
}

// GET /books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(mux.Vars(r)["id"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid book ID", http.StatusBadRequest)
		return
	}

	book, err := h.Service.GetBook(r.Context(), bookID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(book)
}

// GET /books/owner/{userId}
func (h *BookHandler) GetBooksByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(mux.Vars(r)["userId"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid user ID", http.StatusBadRequest)
		return
	}

	books, err := h.Service.ListBooksByOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(books)
}

// DELETE /books/{id}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(mux.Vars(r)["id"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid book ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteBook(r.Context(), bookID); err != nil {
		respondError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Delete, middleware.UserID(r.Context()), bookID.Hex())

	w.WriteHeader(http.StatusNoContent)
}
