package utils

import (
	"net/http"

	"savora/globals"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUserIDFromRequest returns the authenticated user's id hex from the
// request context, or "" when the request carries no valid session.
func GetUserIDFromRequest(r *http.Request) string {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserObjectID is GetUserIDFromRequest plus ObjectID decoding.
func GetUserObjectID(r *http.Request) (primitive.ObjectID, bool) {
	hex := GetUserIDFromRequest(r)
	if hex == "" {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
