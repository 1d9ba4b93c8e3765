package cart

import (
	"context"

	"savora/catalog"
	"savora/db"
	"savora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resolveCart joins store, dish and topping documents into the cart payload,
// the equivalent of the document-ODM populate chain. References whose target
// has since been deleted resolve to zero values rather than failing the read.
func resolveCart(ctx context.Context, c models.Cart) (models.ResolvedCart, error) {
	rc := models.ResolvedCart{
		ID:        c.ID,
		User:      c.User,
		Items:     []models.ResolvedCartItem{},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if store, err := catalog.FindStoreByID(ctx, c.Store); err == nil {
		rc.Store = store
	}

	if len(c.Items) == 0 {
		return rc, nil
	}

	dishIDs := make([]primitive.ObjectID, 0, len(c.Items))
	for _, it := range c.Items {
		dishIDs = append(dishIDs, it.Dish)
	}
	cursor, err := db.DishCollection.Find(ctx, bson.M{"_id": bson.M{"$in": dishIDs}})
	if err != nil {
		return rc, err
	}
	defer cursor.Close(ctx)

	var dishes []models.Dish
	if err := cursor.All(ctx, &dishes); err != nil {
		return rc, err
	}
	dishByID := make(map[primitive.ObjectID]models.Dish, len(dishes))
	for _, d := range dishes {
		dishByID[d.ID] = d
	}

	groups, err := catalog.FindToppingGroupsByStore(ctx, c.Store)
	if err != nil {
		return rc, err
	}
	toppingByID := make(map[primitive.ObjectID]models.Topping)
	for _, g := range groups {
		for _, t := range g.Toppings {
			toppingByID[t.ID] = t
		}
	}

	for _, it := range c.Items {
		ri := models.ResolvedCartItem{
			Dish:     dishByID[it.Dish],
			Quantity: it.Quantity,
			Toppings: []models.Topping{},
		}
		for _, tid := range it.Toppings {
			if t, ok := toppingByID[tid]; ok {
				ri.Toppings = append(ri.Toppings, t)
			}
		}
		rc.Items = append(rc.Items, ri)
	}

	return rc, nil
}
