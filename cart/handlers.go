package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"savora/catalog"
	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const handlerTimeout = 10 * time.Second

// findDishInStore validates that the dish exists and belongs to the store.
// The returned message is ready for the 400 response.
func findDishInStore(ctx context.Context, dishID, storeID primitive.ObjectID) (models.Dish, string) {
	dish, err := catalog.FindDishByID(ctx, dishID)
	if err != nil {
		return dish, "Dish does not exist in the system"
	}
	if dish.Store != storeID {
		return dish, "Dish does not belong to this store"
	}
	return dish, ""
}

// GetUserCart returns every cart the caller owns, fully resolved.
func GetUserCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	carts, err := utils.FindAndDecode[models.Cart](ctx, db.CartCollection, bson.M{"user": userID})
	if err != nil {
		log.Println("GetUserCart find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if len(carts) == 0 {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}

	resolved := make([]models.ResolvedCart, 0, len(carts))
	for _, c := range carts {
		rc, err := resolveCart(ctx, c)
		if err != nil {
			log.Println("GetUserCart resolve error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Could not resolve cart")
			return
		}
		resolved = append(resolved, rc)
	}

	utils.RespondSuccess(w, http.StatusOK, "", resolved)
}

// GetUserCartInStore returns the caller's cart for one store.
func GetUserCartInStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	storeID, ok := utils.ParseObjectID(ps.ByName("storeId"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID")
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"user": userID, "store": storeID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		log.Println("GetUserCartInStore find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	rc, err := resolveCart(ctx, c)
	if err != nil {
		log.Println("GetUserCartInStore resolve error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not resolve cart")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", rc)
}

// GetCartDetail looks a cart up by its own id.
func GetCartDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if _, ok := utils.GetUserObjectID(r); !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	cartID, ok := utils.ParseObjectID(ps.ByName("cartId"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid cart ID")
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"_id": cartID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		log.Println("GetCartDetail find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	rc, err := resolveCart(ctx, c)
	if err != nil {
		log.Println("GetCartDetail resolve error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not resolve cart")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", rc)
}

// IncreaseQuantity adds quantity (default 1) of a dish, creating the cart on
// first add.
func IncreaseQuantity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var body struct {
		StoreID  string `json:"storeId"`
		DishID   string `json:"dishId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	storeID, okS := utils.ParseObjectID(body.StoreID)
	dishID, okD := utils.ParseObjectID(body.DishID)
	if !okS || !okD {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	delta := body.Quantity
	if delta <= 0 {
		delta = 1
	}

	if _, msg := findDishInStore(ctx, dishID, storeID); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"user": userID, "store": storeID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		c = models.Cart{
			User:      userID,
			Store:     storeID,
			Items:     []models.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		IncreaseItem(&c, dishID, delta)
		res, err := db.CartCollection.InsertOne(ctx, c)
		if err != nil {
			log.Println("IncreaseQuantity insert error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create cart")
			return
		}
		c.ID = res.InsertedID.(primitive.ObjectID)
		utils.RespondSuccess(w, http.StatusCreated, "New cart created with item", c)
		return
	}
	if err != nil {
		log.Println("IncreaseQuantity find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	IncreaseItem(&c, dishID, delta)
	if err := saveCart(ctx, &c); err != nil {
		log.Println("IncreaseQuantity save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, "Cart updated successfully", c)
}

// DecreaseQuantity lowers a dish by one; it removes the item at quantity one
// and deletes the cart when the last item goes.
func DecreaseQuantity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var body struct {
		StoreID string `json:"storeId"`
		DishID  string `json:"dishId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	storeID, okS := utils.ParseObjectID(body.StoreID)
	dishID, okD := utils.ParseObjectID(body.DishID)
	if !okS || !okD {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, msg := findDishInStore(ctx, dishID, storeID); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"user": userID, "store": storeID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		log.Println("DecreaseQuantity find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	found, _ := DecreaseItem(&c, dishID)
	if !found {
		utils.RespondError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if len(c.Items) == 0 {
		if _, err := db.CartCollection.DeleteOne(ctx, bson.M{"_id": c.ID}); err != nil {
			log.Println("DecreaseQuantity delete error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete cart")
			return
		}
		utils.RespondSuccess(w, http.StatusOK, "Cart is now empty and has been deleted", nil)
		return
	}

	if err := saveCart(ctx, &c); err != nil {
		log.Println("DecreaseQuantity save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, "Item quantity decreased", c)
}

// UpdateCart is the idempotent upsert: replaces quantity and toppings
// wholesale and validates every topping against the store catalog before
// touching the cart.
func UpdateCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var body struct {
		StoreID  string   `json:"storeId"`
		DishID   string   `json:"dishId"`
		Quantity *int     `json:"quantity"`
		Toppings []string `json:"toppings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity == nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	storeID, okS := utils.ParseObjectID(body.StoreID)
	dishID, okD := utils.ParseObjectID(body.DishID)
	if !okS || !okD || *body.Quantity < 0 {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	quantity := *body.Quantity

	toppings := make([]primitive.ObjectID, 0, len(body.Toppings))
	for _, t := range body.Toppings {
		id, ok := utils.ParseObjectID(t)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid topping ID")
			return
		}
		toppings = append(toppings, id)
	}

	if _, msg := findDishInStore(ctx, dishID, storeID); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	// Topping validation happens before any mutation; a rejection leaves the
	// cart untouched.
	if len(toppings) > 0 {
		groups, err := catalog.FindToppingGroupsByStore(ctx, storeID)
		if err != nil {
			log.Println("UpdateCart topping lookup error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Could not validate toppings")
			return
		}
		if invalid := InvalidToppings(toppings, ValidToppingSet(groups)); len(invalid) > 0 {
			hexes := make([]string, 0, len(invalid))
			for _, id := range invalid {
				hexes = append(hexes, id.Hex())
			}
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"success":         false,
				"message":         "Some toppings are not valid for this store",
				"invalidToppings": hexes,
			})
			return
		}
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"user": userID, "store": storeID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		if quantity == 0 {
			utils.RespondError(w, http.StatusBadRequest, "Cannot add an item with quantity 0")
			return
		}
		now := time.Now()
		c = models.Cart{
			User:      userID,
			Store:     storeID,
			Items:     []models.CartItem{{Dish: dishID, Quantity: quantity, Toppings: toppings}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		res, err := db.CartCollection.InsertOne(ctx, c)
		if err != nil {
			log.Println("UpdateCart insert error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create cart")
			return
		}
		c.ID = res.InsertedID.(primitive.ObjectID)
		utils.RespondSuccess(w, http.StatusCreated, "New cart created with item", c)
		return
	}
	if err != nil {
		log.Println("UpdateCart find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	SetItem(&c, dishID, quantity, toppings)

	if len(c.Items) == 0 {
		if _, err := db.CartCollection.DeleteOne(ctx, bson.M{"_id": c.ID}); err != nil {
			log.Println("UpdateCart delete error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete cart")
			return
		}
		utils.RespondSuccess(w, http.StatusOK, "Cart is empty and has been deleted", nil)
		return
	}

	if err := saveCart(ctx, &c); err != nil {
		log.Println("UpdateCart save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, "Cart updated successfully", c)
}

// ClearDish removes a dish from the user's first-found cart, whatever the
// store.
func ClearDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	dishID, ok := utils.ParseObjectID(ps.ByName("dish_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid Dish ID")
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		log.Println("ClearDish find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	RemoveItem(&c, dishID)

	if len(c.Items) == 0 {
		if _, err := db.CartCollection.DeleteOne(ctx, bson.M{"_id": c.ID}); err != nil {
			log.Println("ClearDish delete error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete cart")
			return
		}
		utils.RespondSuccess(w, http.StatusOK, "Cart is now empty and has been deleted", nil)
		return
	}

	if err := saveCart(ctx, &c); err != nil {
		log.Println("ClearDish save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, "Item removed from cart", c.Items)
}

// ClearStoreCart deletes the caller's cart for one store. Idempotent.
func ClearStoreCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}
	storeID, ok := utils.ParseObjectID(ps.ByName("storeId"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID")
		return
	}

	if _, err := db.CartCollection.DeleteOne(ctx, bson.M{"user": userID, "store": storeID}); err != nil {
		log.Println("ClearStoreCart delete error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, "Item removed from cart", nil)
}

// ClearCart deletes every cart the caller owns.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"user": userID}); err != nil {
		log.Println("ClearCart delete error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, "Cart cleared successfully", nil)
}

func saveCart(ctx context.Context, c *models.Cart) error {
	c.UpdatedAt = time.Now()
	_, err := db.CartCollection.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}
