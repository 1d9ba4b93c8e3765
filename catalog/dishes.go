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

// GetAllDish lists dishes in a store, optionally filtered by name, paginated.
func GetAllDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	storeID, ok := utils.ParseObjectID(ps.ByName("store_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{"store": storeID}
	if opts.Name != "" {
		filter["name"] = bson.M{"$regex": opts.Name, "$options": "i"}
	}

	result, err := utils.FindPaginated[models.Dish](ctx, db.DishCollection, filter, opts)
	if err != nil {
		log.Println("GetAllDish find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve dishes")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetDish returns one dish by id.
func GetDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	dishID, ok := utils.ParseObjectID(ps.ByName("dish_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid dish ID format")
		return
	}

	dish, err := FindDishByID(ctx, dishID)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Dish not found")
		return
	}
	if err != nil {
		log.Println("GetDish find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve dish")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", dish)
}

// AddToppingsToDish attaches existing toppings to a dish by id. Ids must
// resolve to toppings in some group; duplicates already on the dish are
// rejected.
func AddToppingsToDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	dishID, ok := utils.ParseObjectID(ps.ByName("dish_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid dish ID format")
		return
	}

	var body struct {
		ToppingIDs []string `json:"topping_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.ToppingIDs) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Topping IDs must be a non-empty array")
		return
	}

	wanted := make(map[primitive.ObjectID]bool, len(body.ToppingIDs))
	ids := make([]primitive.ObjectID, 0, len(body.ToppingIDs))
	for _, raw := range body.ToppingIDs {
		id, ok := utils.ParseObjectID(raw)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid topping ID format")
			return
		}
		wanted[id] = true
		ids = append(ids, id)
	}

	dish, err := FindDishByID(ctx, dishID)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Dish not found")
		return
	}
	if err != nil {
		log.Println("AddToppingsToDish find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve dish")
		return
	}

	cursor, err := db.ToppingGroupCollection.Find(ctx, bson.M{"toppings._id": bson.M{"$in": ids}})
	if err != nil {
		log.Println("AddToppingsToDish groups error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve toppings")
		return
	}
	defer cursor.Close(ctx)

	var groups []models.ToppingGroup
	if err := cursor.All(ctx, &groups); err != nil {
		log.Println("AddToppingsToDish decode error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve toppings")
		return
	}
	if len(groups) == 0 {
		utils.RespondError(w, http.StatusNotFound, "No valid toppings found")
		return
	}

	var valid []models.Topping
	for _, g := range groups {
		for _, t := range g.Toppings {
			if wanted[t.ID] {
				valid = append(valid, t)
			}
		}
	}
	if len(valid) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "None of the provided topping IDs are valid")
		return
	}

	existing := make(map[primitive.ObjectID]bool, len(dish.Toppings))
	for _, t := range dish.Toppings {
		existing[t.ID] = true
	}
	var fresh []models.Topping
	for _, t := range valid {
		if !existing[t.ID] {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "All provided toppings are already added to the dish")
		return
	}

	dish.Toppings = append(dish.Toppings, fresh...)
	update := bson.M{"$set": bson.M{"toppings": dish.Toppings, "updatedAt": time.Now()}}
	if _, err := db.DishCollection.UpdateOne(ctx, bson.M{"_id": dishID}, update); err != nil {
		log.Println("AddToppingsToDish update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update dish")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Toppings added to dish successfully", dish)
}

// GetToppingsForDish returns the topping groups applicable to a dish, i.e.
// the groups of the dish's store.
func GetToppingsForDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	dishID, ok := utils.ParseObjectID(ps.ByName("dish_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid dish ID format")
		return
	}

	dish, err := FindDishByID(ctx, dishID)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Dish not found")
		return
	}
	if err != nil {
		log.Println("GetToppingsForDish find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve dish")
		return
	}

	groups, err := FindToppingGroupsByStore(ctx, dish.Store)
	if err != nil {
		log.Println("GetToppingsForDish groups error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve toppings")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", groups)
}
