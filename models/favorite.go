package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Favorite is one document per user holding the stores they starred. Same
// lifecycle as a cart: the document is deleted when the list empties.
type Favorite struct {
	ID     primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	User   primitive.ObjectID   `json:"user" bson:"user"`
	Stores []primitive.ObjectID `json:"store" bson:"store"`
}
