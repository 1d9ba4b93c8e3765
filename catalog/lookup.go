package catalog

import (
	"context"

	"savora/db"
	"savora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Read-only lookups consumed by the cart engine and checkout.

// FindDishByID returns mongo.ErrNoDocuments when the dish is absent.
func FindDishByID(ctx context.Context, id primitive.ObjectID) (models.Dish, error) {
	var dish models.Dish
	err := db.DishCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&dish)
	return dish, err
}

// FindToppingGroupsByStore lists every topping group of a store, toppings
// embedded.
func FindToppingGroupsByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.ToppingGroup, error) {
	cursor, err := db.ToppingGroupCollection.Find(ctx, bson.M{"store": storeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []models.ToppingGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// FindStoreByID returns mongo.ErrNoDocuments when the store is absent.
func FindStoreByID(ctx context.Context, id primitive.ObjectID) (models.Store, error) {
	var store models.Store
	err := db.StoreCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	return store, err
}
