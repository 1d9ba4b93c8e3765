package utils

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseObjectID decodes a hex id from a path or body parameter.
func ParseObjectID(hex string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
