package cart

import (
	"testing"

	"savora/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderFromCartSnapshotsItems(t *testing.T) {
	dish := primitive.NewObjectID()
	topping := primitive.NewObjectID()
	c := newTestCart(models.CartItem{Dish: dish, Quantity: 2, Toppings: []primitive.ObjectID{topping}})
	store := primitive.NewObjectID()

	order := OrderFromCart(c, store, models.PaymentCash, "12 Noodle St", []float64{106.7, 10.8})

	if order.Status != models.StatusPending {
		t.Fatalf("expected status pending, got %s", order.Status)
	}
	if order.User != c.User || order.Store != store {
		t.Fatal("order owner references are wrong")
	}
	if len(order.Items) != 1 || order.Items[0].Dish != dish || order.Items[0].Quantity != 2 {
		t.Fatalf("order items differ from cart items: %+v", order.Items)
	}
	if order.ShipLocation.Type != "Point" {
		t.Fatalf("expected GeoJSON Point, got %q", order.ShipLocation.Type)
	}
	if order.ShipLocation.Address != "12 Noodle St" {
		t.Fatalf("unexpected address %q", order.ShipLocation.Address)
	}

	// Later cart mutations must not leak into the order.
	c.Items[0].Quantity = 99
	if order.Items[0].Quantity != 2 {
		t.Fatal("order items share backing storage with the cart")
	}
}

func TestOrderFromCartEmptyCoordinates(t *testing.T) {
	c := newTestCart(models.CartItem{Dish: primitive.NewObjectID(), Quantity: 1})

	order := OrderFromCart(c, primitive.NewObjectID(), models.PaymentCreditCard, "somewhere", nil)

	if order.ShipLocation.Coordinates == nil {
		t.Fatal("coordinates should default to an empty sequence, not null")
	}
	if len(order.ShipLocation.Coordinates) != 0 {
		t.Fatalf("expected no coordinates, got %v", order.ShipLocation.Coordinates)
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{models.PaymentCash, models.PaymentCreditCard} {
		if !models.ValidPaymentMethod(m) {
			t.Fatalf("%s should be a valid payment method", m)
		}
	}
	if models.ValidPaymentMethod("bank_transfer") {
		t.Fatal("bank_transfer is not an accepted payment method")
	}
}
