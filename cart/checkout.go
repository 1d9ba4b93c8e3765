package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"savora/db"
	"savora/models"
	"savora/mq"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderFromCart snapshots a cart into a new pending order. The item slice is
// copied so later cart mutations can never reach the order.
func OrderFromCart(c models.Cart, store primitive.ObjectID, paymentMethod, address string, coords []float64) models.Order {
	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)
	if coords == nil {
		coords = []float64{}
	}
	now := time.Now()
	return models.Order{
		User:  c.User,
		Store: store,
		Items: items,
		ShipLocation: models.ShipLocation{
			Type:        "Point",
			Coordinates: coords,
			Address:     address,
		},
		Status:        models.StatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CompleteCart converts the caller's cart into an order and deletes the cart.
// The cart is located by user alone, matching the historical behaviour even
// when the user holds carts in several stores. There is no rollback between
// the order insert and the cart delete.
func CompleteCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var body struct {
		StoreID         string    `json:"storeId"`
		PaymentMethod   string    `json:"paymentMethod"`
		DeliveryAddress string    `json:"deliveryAddress"`
		Location        []float64 `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.StoreID == "" || body.PaymentMethod == "" || body.DeliveryAddress == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	storeID, ok := utils.ParseObjectID(body.StoreID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID")
		return
	}
	if !models.ValidPaymentMethod(body.PaymentMethod) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid payment method")
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments || (err == nil && len(c.Items) == 0) {
		utils.RespondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		log.Println("CompleteCart find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	order := OrderFromCart(c, storeID, body.PaymentMethod, body.DeliveryAddress, body.Location)
	res, err := db.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		log.Println("CompleteCart insert error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}
	order.ID = res.InsertedID.(primitive.ObjectID)

	if _, err := db.CartCollection.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		// the order insert already committed; report the failure rather
		// than pretend the cart is gone
		log.Println("CompleteCart cart cleanup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	go mq.Emit(context.Background(), "order-placed", models.Event{
		EntityType: "order", EntityId: order.ID.Hex(), Method: "POST",
		ItemType: "store", ItemId: storeID.Hex(),
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}
