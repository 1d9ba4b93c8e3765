package cart

import (
	"testing"

	"savora/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCart(items ...models.CartItem) models.Cart {
	return models.Cart{
		ID:    primitive.NewObjectID(),
		User:  primitive.NewObjectID(),
		Store: primitive.NewObjectID(),
		Items: items,
	}
}

func TestIncreaseItemNewDish(t *testing.T) {
	c := newTestCart()
	dish := primitive.NewObjectID()

	IncreaseItem(&c, dish, 1)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].Dish != dish || c.Items[0].Quantity != 1 {
		t.Fatalf("unexpected item %+v", c.Items[0])
	}
	if c.Items[0].Toppings == nil || len(c.Items[0].Toppings) != 0 {
		t.Fatalf("new item should have empty toppings, got %v", c.Items[0].Toppings)
	}
}

func TestIncreaseItemExistingDishAddsDelta(t *testing.T) {
	dish := primitive.NewObjectID()
	c := newTestCart(models.CartItem{Dish: dish, Quantity: 2, Toppings: []primitive.ObjectID{}})

	IncreaseItem(&c, dish, 3)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}
}

func TestDecreaseItemStepsDownThenRemoves(t *testing.T) {
	dish := primitive.NewObjectID()
	c := newTestCart(models.CartItem{Dish: dish, Quantity: 2, Toppings: []primitive.ObjectID{}})

	found, removed := DecreaseItem(&c, dish)
	if !found || removed {
		t.Fatalf("first decrease: found=%v removed=%v", found, removed)
	}
	if c.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", c.Items[0].Quantity)
	}

	found, removed = DecreaseItem(&c, dish)
	if !found || !removed {
		t.Fatalf("second decrease: found=%v removed=%v", found, removed)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(c.Items))
	}
}

func TestDecreaseItemMissingDish(t *testing.T) {
	c := newTestCart(models.CartItem{Dish: primitive.NewObjectID(), Quantity: 1})

	found, _ := DecreaseItem(&c, primitive.NewObjectID())
	if found {
		t.Fatal("decrease of an absent dish should not report found")
	}
	if len(c.Items) != 1 {
		t.Fatalf("cart should be untouched, got %d items", len(c.Items))
	}
}

func TestIncreaseThenDecreaseRoundTrip(t *testing.T) {
	dish := primitive.NewObjectID()
	other := primitive.NewObjectID()
	c := newTestCart(models.CartItem{Dish: other, Quantity: 1, Toppings: []primitive.ObjectID{}})

	IncreaseItem(&c, dish, 1)
	if _, removed := DecreaseItem(&c, dish); !removed {
		t.Fatal("single-quantity item should be removed on decrease")
	}

	if len(c.Items) != 1 || c.Items[0].Dish != other {
		t.Fatalf("cart should be back to its pre-existing state, got %+v", c.Items)
	}
}

func TestSetItemZeroQuantityRemovesExisting(t *testing.T) {
	dish := primitive.NewObjectID()
	c := newTestCart(models.CartItem{Dish: dish, Quantity: 3, Toppings: []primitive.ObjectID{}})

	if out := SetItem(&c, dish, 0, nil); out != SetRemoved {
		t.Fatalf("expected SetRemoved, got %v", out)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(c.Items))
	}
}

func TestSetItemZeroQuantityOnMissingDishIsNoop(t *testing.T) {
	dish := primitive.NewObjectID()
	c := newTestCart(models.CartItem{Dish: primitive.NewObjectID(), Quantity: 1})

	if out := SetItem(&c, dish, 0, nil); out != SetNoop {
		t.Fatalf("expected SetNoop, got %v", out)
	}
	if len(c.Items) != 1 {
		t.Fatalf("cart should be untouched, got %d items", len(c.Items))
	}
}

func TestSetItemOverwritesToppingsWholesale(t *testing.T) {
	dish := primitive.NewObjectID()
	oldTopping := primitive.NewObjectID()
	newTopping := primitive.NewObjectID()
	c := newTestCart(models.CartItem{Dish: dish, Quantity: 1, Toppings: []primitive.ObjectID{oldTopping}})

	if out := SetItem(&c, dish, 4, []primitive.ObjectID{newTopping}); out != SetUpdated {
		t.Fatalf("expected SetUpdated, got %v", out)
	}
	item := c.Items[0]
	if item.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", item.Quantity)
	}
	if len(item.Toppings) != 1 || item.Toppings[0] != newTopping {
		t.Fatalf("toppings must be overwritten, not merged: %v", item.Toppings)
	}
}

func TestSetItemAppendsNewDish(t *testing.T) {
	dish := primitive.NewObjectID()
	topping := primitive.NewObjectID()
	c := newTestCart()

	if out := SetItem(&c, dish, 3, []primitive.ObjectID{topping}); out != SetAdded {
		t.Fatalf("expected SetAdded, got %v", out)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	got := c.Items[0]
	if got.Dish != dish || got.Quantity != 3 || len(got.Toppings) != 1 || got.Toppings[0] != topping {
		t.Fatalf("unexpected item %+v", got)
	}
}

func TestRemoveItem(t *testing.T) {
	dish := primitive.NewObjectID()
	keep := primitive.NewObjectID()
	c := newTestCart(
		models.CartItem{Dish: dish, Quantity: 2},
		models.CartItem{Dish: keep, Quantity: 1},
	)

	if !RemoveItem(&c, dish) {
		t.Fatal("expected dish to be found")
	}
	if len(c.Items) != 1 || c.Items[0].Dish != keep {
		t.Fatalf("unexpected items %+v", c.Items)
	}
	if RemoveItem(&c, dish) {
		t.Fatal("second removal should not find the dish")
	}
}

func TestValidToppingSetAndInvalidToppings(t *testing.T) {
	t1 := primitive.NewObjectID()
	t2 := primitive.NewObjectID()
	rogue := primitive.NewObjectID()

	groups := []models.ToppingGroup{
		{Toppings: []models.Topping{{ID: t1, Name: "cheese"}}},
		{Toppings: []models.Topping{{ID: t2, Name: "bacon"}}},
	}
	valid := ValidToppingSet(groups)

	if len(valid) != 2 {
		t.Fatalf("expected 2 valid toppings, got %d", len(valid))
	}
	invalid := InvalidToppings([]primitive.ObjectID{t1, rogue, t2}, valid)
	if len(invalid) != 1 || invalid[0] != rogue {
		t.Fatalf("expected only the rogue id, got %v", invalid)
	}
	if got := InvalidToppings([]primitive.ObjectID{t1, t2}, valid); len(got) != 0 {
		t.Fatalf("expected no invalid toppings, got %v", got)
	}
}
