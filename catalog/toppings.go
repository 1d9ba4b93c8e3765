package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAllToppingGroups lists the topping groups of a store.
func GetAllToppingGroups(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	storeID, ok := utils.ParseObjectID(ps.ByName("store_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	groups, err := FindToppingGroupsByStore(ctx, storeID)
	if err != nil {
		log.Println("GetAllToppingGroups find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve topping groups")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", groups)
}

// GetToppingGroup returns one topping group by id.
func GetToppingGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	groupID, ok := utils.ParseObjectID(ps.ByName("group_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid topping group ID format")
		return
	}

	var group models.ToppingGroup
	err := db.ToppingGroupCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Topping group not found")
		return
	}
	if err != nil {
		log.Println("GetToppingGroup find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve topping group")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", group)
}

// CreateToppingGroup creates a topping group for a store.
func CreateToppingGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	storeID, ok := utils.ParseObjectID(ps.ByName("store_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	var body struct {
		Name     string           `json:"name"`
		Toppings []models.Topping `json:"toppings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "Topping group name is required")
		return
	}

	if err := ensureStore(ctx, storeID); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, http.StatusNotFound, "Store not found")
			return
		}
		log.Println("CreateToppingGroup store check error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not verify store")
		return
	}

	for i := range body.Toppings {
		if body.Toppings[i].ID.IsZero() {
			body.Toppings[i].ID = primitive.NewObjectID()
		}
	}

	group := models.ToppingGroup{
		ID:        primitive.NewObjectID(),
		Store:     storeID,
		Name:      body.Name,
		Toppings:  body.Toppings,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.ToppingGroupCollection.InsertOne(ctx, group); err != nil {
		log.Println("CreateToppingGroup insert error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create topping group")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, "Topping group created", group)
}

// AddToppingToGroup appends a topping to an existing group.
func AddToppingToGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	groupID, ok := utils.ParseObjectID(ps.ByName("group_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid topping group ID format")
		return
	}

	var topping models.Topping
	if err := json.NewDecoder(r.Body).Decode(&topping); err != nil || topping.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "Topping name is required")
		return
	}
	if topping.ID.IsZero() {
		topping.ID = primitive.NewObjectID()
	}

	res, err := db.ToppingGroupCollection.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{
			"$push": bson.M{"toppings": topping},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		log.Println("AddToppingToGroup update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not add topping")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Topping group not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Topping added", topping)
}

// RemoveToppingFromGroup removes a topping from a group by topping id.
func RemoveToppingFromGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	groupID, ok := utils.ParseObjectID(ps.ByName("group_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid topping group ID format")
		return
	}
	toppingID, ok := utils.ParseObjectID(ps.ByName("topping_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid topping ID format")
		return
	}

	res, err := db.ToppingGroupCollection.UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{
			"$pull": bson.M{"toppings": bson.M{"_id": toppingID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		log.Println("RemoveToppingFromGroup update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not remove topping")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Topping group not found")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Topping not found in group")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Topping removed", nil)
}

// DeleteToppingGroup removes a topping group entirely. Existing cart items
// referencing its toppings keep their ids; resolution drops unknown toppings.
func DeleteToppingGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	groupID, ok := utils.ParseObjectID(ps.ByName("group_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid topping group ID format")
		return
	}

	res, err := db.ToppingGroupCollection.DeleteOne(ctx, bson.M{"_id": groupID})
	if err != nil {
		log.Println("DeleteToppingGroup delete error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not delete topping group")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Topping group not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Topping group deleted", nil)
}

func ensureStore(ctx context.Context, storeID primitive.ObjectID) error {
	return db.StoreCollection.FindOne(ctx, bson.M{"_id": storeID}).Err()
}
