package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/constants"
	"github.com/anjalik06/bookshare-backend/internal/lending"
	"github.com/anjalik06/bookshare-backend/internal/middleware"
	"github.com/anjalik06/bookshare-backend/internal/models"
	"github.com/anjalik06/bookshare-backend/internal/utils"
)

type LendingHandler struct {
	Service     *lending.Service
	AuditLogger utils.Logger
}

func NewLendingHandler(service *lending.Service, logger utils.Logger) *LendingHandler {
	return &LendingHandler{Service: service, AuditLogger: logger}
}

// POST /books/{id}/request — the requester is the authenticated caller.
func (h *LendingHandler) RequestBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(mux.Vars(r)["id"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid book ID", http.StatusBadRequest)
		return
	}
	requesterID, ok := callerID(r)
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RequestBook(r.Context(), bookID, requesterID); err != nil {
		respondError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Request, requesterID.Hex(), bookID.Hex())

	json.NewEncoder(w).Encode(map[string]string{"message": "Request sent successfully"})
}

// POST /books/{bookId}/requests/{requesterId}/approve
func (h *LendingHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	bookID, requesterID, ok := lendingPathIDs(w, r)
	if !ok {
		return
	}

	if err := h.Service.ApproveRequest(r.Context(), bookID, requesterID); err != nil {
		respondError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Approve, middleware.UserID(r.Context()), map[string]string{
		"book_id":      bookID.Hex(),
		"requester_id": requesterID.Hex(),
	})

	json.NewEncoder(w).Encode(map[string]string{"message": "Request approved"})
}

// POST /books/{bookId}/requests/{requesterId}/reject
func (h *LendingHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	bookID, requesterID, ok := lendingPathIDs(w, r)
	if !ok {
		return
	}

	if err := h.Service.RejectRequest(r.Context(), bookID, requesterID); err != nil {
		respondError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Reject, middleware.UserID(r.Context()), map[string]string{
		"book_id":      bookID.Hex(),
		"requester_id": requesterID.Hex(),
	})

	json.NewEncoder(w).Encode(map[string]string{"message": "Request rejected"})
}

// POST /books/{id}/return
func (h *LendingHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(mux.Vars(r)["id"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid book ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.ReturnBook(r.Context(), bookID); err != nil {
		respondError(w, err)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Return, middleware.UserID(r.Context()), bookID.Hex())

	json.NewEncoder(w).Encode(map[string]string{"message": "Book returned successfully"})
}

// GET /requests/owner/{userId}
func (h *LendingHandler) GetRequestsForOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(mux.Vars(r)["userId"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid user ID", http.StatusBadRequest)
		return
	}

	requests, err := h.Service.ListRequestsForOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(requests)
}

// GET /loans/out/{userId}
func (h *LendingHandler) GetOnLoan(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(mux.Vars(r)["userId"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid user ID", http.StatusBadRequest)
		return
	}

	loans, err := h.Service.ListOnLoan(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(loans)
}

// GET /loans/borrowed/{userId}
func (h *LendingHandler) GetBorrowed(w http.ResponseWriter, r *http.Request) {
	borrowerID, ok := pathID(mux.Vars(r)["userId"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid user ID", http.StatusBadRequest)
		return
	}

	loans, err := h.Service.ListBorrowed(r.Context(), borrowerID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(loans)
}

func lendingPathIDs(w http.ResponseWriter, r *http.Request) (bookID, requesterID primitive.ObjectID, ok bool) {
	vars := mux.Vars(r)
	bookID, ok = pathID(vars["bookId"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid book ID", http.StatusBadRequest)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	requesterID, ok = pathID(vars["requesterId"])
	if !ok {
		utils.JSONError(w, string(lending.CodeInvalidInput), "Invalid requester ID", http.StatusBadRequest)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return bookID, requesterID, true
}
