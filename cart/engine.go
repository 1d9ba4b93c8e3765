package cart

import (
	"savora/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pure cart mutations. Handlers load the document, mutate it here, then
// persist; nothing in this file touches the database.

func itemIndex(c *models.Cart, dish primitive.ObjectID) int {
	for i := range c.Items {
		if c.Items[i].Dish == dish {
			return i
		}
	}
	return -1
}

// IncreaseItem adds delta to the dish's quantity. A dish not yet in the cart
// is appended as a new item with empty toppings.
func IncreaseItem(c *models.Cart, dish primitive.ObjectID, delta int) {
	if i := itemIndex(c, dish); i >= 0 {
		c.Items[i].Quantity += delta
		return
	}
	c.Items = append(c.Items, models.CartItem{
		Dish:     dish,
		Quantity: delta,
		Toppings: []primitive.ObjectID{},
	})
}

// DecreaseItem lowers the dish's quantity by one, removing the item when it
// would reach zero. found reports whether the dish was in the cart at all.
func DecreaseItem(c *models.Cart, dish primitive.ObjectID) (found, removed bool) {
	i := itemIndex(c, dish)
	if i < 0 {
		return false, false
	}
	if c.Items[i].Quantity > 1 {
		c.Items[i].Quantity--
		return true, false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true, true
}

// RemoveItem drops the dish from the cart regardless of quantity.
func RemoveItem(c *models.Cart, dish primitive.ObjectID) bool {
	i := itemIndex(c, dish)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// SetOutcome describes what SetItem did to the cart.
type SetOutcome int

const (
	SetNoop    SetOutcome = iota // quantity 0 on an absent item
	SetAdded                     // new item appended
	SetUpdated                   // quantity and toppings replaced
	SetRemoved                   // quantity 0 removed the item
)

// SetItem is the idempotent upsert: quantity and toppings are replaced
// wholesale, never merged; quantity 0 removes the item.
func SetItem(c *models.Cart, dish primitive.ObjectID, quantity int, toppings []primitive.ObjectID) SetOutcome {
	if toppings == nil {
		toppings = []primitive.ObjectID{}
	}
	i := itemIndex(c, dish)
	if i < 0 {
		if quantity == 0 {
			return SetNoop
		}
		c.Items = append(c.Items, models.CartItem{Dish: dish, Quantity: quantity, Toppings: toppings})
		return SetAdded
	}
	if quantity == 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return SetRemoved
	}
	c.Items[i].Quantity = quantity
	c.Items[i].Toppings = toppings
	return SetUpdated
}

// ValidToppingSet flattens a store's topping groups into the set of topping
// ids a cart item may reference.
func ValidToppingSet(groups []models.ToppingGroup) map[primitive.ObjectID]struct{} {
	valid := make(map[primitive.ObjectID]struct{})
	for _, g := range groups {
		for _, t := range g.Toppings {
			valid[t.ID] = struct{}{}
		}
	}
	return valid
}

// InvalidToppings returns the ids not present in the store's catalog set.
func InvalidToppings(ids []primitive.ObjectID, valid map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	var invalid []primitive.ObjectID
	for _, id := range ids {
		if _, ok := valid[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	return invalid
}
