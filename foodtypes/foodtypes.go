package foodtypes

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

const handlerTimeout = 10 * time.Second

// GetAllFoodTypes lists the browse categories shown on the home screen.
func GetAllFoodTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Name != "" {
		filter["name"] = bson.M{"$regex": opts.Name, "$options": "i"}
	}

	result, err := utils.FindPaginated[models.FoodType](ctx, db.FoodTypeCollection, filter, opts)
	if err != nil {
		log.Println("GetAllFoodTypes find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve food types")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetFoodType returns one food type by id.
func GetFoodType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id, ok := utils.ParseObjectID(ps.ByName("id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid food type ID format")
		return
	}

	var ft models.FoodType
	err := db.FoodTypeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&ft)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Food type not found")
		return
	}
	if err != nil {
		log.Println("GetFoodType find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve food type")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", ft)
}

// CreateFoodType adds a browse category.
func CreateFoodType(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		Name  string       `json:"name"`
		Image models.Image `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "Food type name is required")
		return
	}

	ft := models.FoodType{
		ID:    primitive.NewObjectID(),
		Name:  body.Name,
		Image: body.Image,
	}
	if _, err := db.FoodTypeCollection.InsertOne(ctx, ft); err != nil {
		log.Println("CreateFoodType insert error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create food type")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, "Food type created", ft)
}

// UpdateFoodType renames a food type or swaps its image.
func UpdateFoodType(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		ID    string        `json:"id"`
		Name  *string       `json:"name"`
		Image *models.Image `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Food type id is required")
		return
	}

	id, ok := utils.ParseObjectID(body.ID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid food type ID format")
		return
	}

	set := bson.M{}
	if body.Name != nil {
		set["name"] = *body.Name
	}
	if body.Image != nil {
		set["image"] = *body.Image
	}
	if len(set) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	res, err := db.FoodTypeCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Println("UpdateFoodType update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update food type")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Food type not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Food type updated", nil)
}

// DeleteFoodType removes a browse category.
func DeleteFoodType(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Food type id is required")
		return
	}

	id, ok := utils.ParseObjectID(body.ID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid food type ID format")
		return
	}

	res, err := db.FoodTypeCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Println("DeleteFoodType delete error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not delete food type")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Food type not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Food type deleted", nil)
}
