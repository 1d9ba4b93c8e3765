package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status lifecycle. Transitions are driven by store staff; the cart
// engine only ever creates orders in StatusPending.
const (
	StatusPreorder  = "preorder"
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusFinished  = "finished"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var OrderStatuses = []string{
	StatusPreorder, StatusPending, StatusConfirmed,
	StatusPreparing, StatusFinished, StatusDelivered, StatusCancelled,
}

// Payment methods accepted at checkout.
const (
	PaymentCash       = "cash"
	PaymentCreditCard = "credit_card"
)

var PaymentMethods = []string{PaymentCash, PaymentCreditCard}

// ShipLocation is a GeoJSON point plus the human-readable address.
type ShipLocation struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"` // [lon, lat]
	Address     string    `json:"address" bson:"address"`
}

// Order is the immutable record created from a cart at checkout. Items are a
// snapshot copy, not a live reference to the cart.
type Order struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	Store         primitive.ObjectID `json:"store" bson:"store"`
	Items         []CartItem         `json:"items" bson:"items"`
	ShipLocation  ShipLocation       `json:"shipLocation" bson:"shipLocation"`
	Status        string             `json:"status" bson:"status"`
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}
