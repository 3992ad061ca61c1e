package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/lending"
	"github.com/anjalik06/bookshare-backend/internal/middleware"
	"github.com/anjalik06/bookshare-backend/internal/utils"
)

// respondError maps the lending error taxonomy onto HTTP statuses. Storage
// conflict detail never leaks past the "please retry" message.
func respondError(w http.ResponseWriter, err error) {
	code := lending.CodeOf(err)
	switch code {
	case lending.CodeInvalidInput:
		utils.JSONError(w, string(code), err.Error(), http.StatusBadRequest)
	case lending.CodeNotFound:
		utils.JSONError(w, string(code), err.Error(), http.StatusNotFound)
	case lending.CodeGuardViolation:
		utils.JSONError(w, string(code), err.Error(), http.StatusConflict)
	case lending.CodeConflict:
		utils.JSONError(w, string(code), "concurrent update, please retry", http.StatusServiceUnavailable)
	default:
		utils.JSONError(w, "internal", "Server error", http.StatusInternalServerError)
	}
}

// callerID resolves the authenticated user id placed by the JWT middleware.
func callerID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(middleware.UserID(r.Context()))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func pathID(value string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
