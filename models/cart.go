package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single dish line inside a cart. A cart holds at most one
// item per distinct dish; toppings are overwritten wholesale on update.
type CartItem struct {
	Dish     primitive.ObjectID   `json:"dish" bson:"dish"`
	Quantity int                  `json:"quantity" bson:"quantity"`
	Toppings []primitive.ObjectID `json:"toppings" bson:"toppings"`
}

// Cart is the draft order for one (user, store) pair. An empty cart must not
// exist: the document is deleted as soon as its last item is removed.
type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Store     primitive.ObjectID `json:"store" bson:"store"`
	Items     []CartItem         `json:"items" bson:"items"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ResolvedCartItem carries the joined dish and topping documents.
type ResolvedCartItem struct {
	Dish     Dish      `json:"dish"`
	Quantity int       `json:"quantity"`
	Toppings []Topping `json:"toppings"`
}

// ResolvedCart is a cart with store, dish and topping references resolved.
type ResolvedCart struct {
	ID        primitive.ObjectID `json:"_id"`
	User      primitive.ObjectID `json:"user"`
	Store     Store              `json:"store"`
	Items     []ResolvedCartItem `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
