package orders

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
	"go.mongodb.org/mongo-driver/mongo"
)

const handlerTimeout = 10 * time.Second

// GetOrder returns one order by id.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	orderID, ok := utils.ParseObjectID(ps.ByName("order_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("GetOrder find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", order)
}

// GetAllOrder lists orders filtered by status, paginated. Store staff pass
// ?status=pending to work the queue.
func GetAllOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if storeHex := ps.ByName("store_id"); storeHex != "" {
		storeID, ok := utils.ParseObjectID(storeHex)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid store ID format")
			return
		}
		filter["store"] = storeID
	}

	result, err := utils.FindPaginated[models.Order](ctx, db.OrderCollection, filter, opts)
	if err != nil {
		log.Println("GetAllOrder find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetMyOrders lists the caller's own orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{"user": userID}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	result, err := utils.FindPaginated[models.Order](ctx, db.OrderCollection, filter, opts)
	if err != nil {
		log.Println("GetMyOrders find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// UpdateOrderStatus moves an order along its lifecycle. Only transitions
// allowed by NextStatuses are accepted.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	orderID, ok := utils.ParseObjectID(ps.ByName("order_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.RespondError(w, http.StatusBadRequest, "Status is required")
		return
	}
	if !models.ValidOrderStatus(body.Status) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("UpdateOrderStatus find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	if !CanTransition(order.Status, body.Status) {
		utils.RespondError(w, http.StatusBadRequest, "Cannot change status from "+order.Status+" to "+body.Status)
		return
	}

	update := bson.M{"$set": bson.M{"status": body.Status, "updatedAt": time.Now()}}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, update); err != nil {
		log.Println("UpdateOrderStatus update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	order.Status = body.Status
	go mq.Emit(context.Background(), "order-status-changed", models.Event{
		EntityType: "order",
		Method:     body.Status,
		EntityId:   order.ID.Hex(),
	})

	utils.RespondSuccess(w, http.StatusOK, "Order status updated", order)
}
