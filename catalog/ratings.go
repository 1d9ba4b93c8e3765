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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RatingSummaryFor aggregates the average rating and count for one entity.
// field is "store" or "dish".
func RatingSummaryFor(ctx context.Context, field string, id primitive.ObjectID) (models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{field: id}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"avgRating": bson.M{"$avg": "$ratingValue"},
			"count":     bson.M{"$sum": 1},
		}}},
	}
	cursor, err := db.RatingCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, err
	}
	defer cursor.Close(ctx)

	var rows []models.RatingSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingSummary{}, err
	}
	if len(rows) == 0 {
		return models.RatingSummary{}, nil
	}
	return rows[0], nil
}

// GetStoreRating returns a store's rating summary.
func GetStoreRating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ratingSummaryHandler(w, r, ps, "store", "store_id")
}

// GetDishRating returns a dish's rating summary.
func GetDishRating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ratingSummaryHandler(w, r, ps, "dish", "dish_id")
}

func ratingSummaryHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params, field, param string) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id, ok := utils.ParseObjectID(ps.ByName(param))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	summary, err := RatingSummaryFor(ctx, field, id)
	if err != nil {
		log.Println("rating summary error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not aggregate ratings")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", summary)
}

// GetDishRatings lists a dish's ratings, newest first, paginated.
func GetDishRatings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	dishID, ok := utils.ParseObjectID(ps.ByName("dish_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid dish ID format")
		return
	}

	opts := utils.ParseQueryOptions(r)
	findOpts := options.Find().SetSort(bson.M{"createdAt": -1})

	result, err := utils.FindPaginated[models.Rating](ctx, db.RatingCollection, bson.M{"dish": dishID}, opts, findOpts)
	if err != nil {
		log.Println("GetDishRatings find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve ratings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// RateDish records the caller's rating of a dish, replacing any earlier one.
func RateDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rateEntity(w, r, ps, "dish", "dish_id")
}

// RateStore records the caller's rating of a store, replacing any earlier one.
func RateStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rateEntity(w, r, ps, "store", "store_id")
}

func rateEntity(w http.ResponseWriter, r *http.Request, ps httprouter.Params, field, param string) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entityID, ok := utils.ParseObjectID(ps.ByName(param))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var body struct {
		RatingValue int            `json:"ratingValue"`
		Comment     string         `json:"comment"`
		Images      []models.Image `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.RatingValue < 1 || body.RatingValue > 5 {
		utils.RespondError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	rating := models.Rating{
		ID:          primitive.NewObjectID(),
		User:        userID,
		RatingValue: body.RatingValue,
		Comment:     body.Comment,
		Images:      body.Images,
		CreatedAt:   time.Now(),
	}
	filter := bson.M{"user": userID, field: entityID}
	switch field {
	case "dish":
		rating.Dish = entityID
	case "store":
		rating.Store = entityID
	}

	// one rating per user per entity; a re-rate replaces the old document
	replaceOpts := options.Replace().SetUpsert(true)
	if _, err := db.RatingCollection.ReplaceOne(ctx, filter, rating, replaceOpts); err != nil {
		log.Println("rateEntity replace error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not save rating")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, "Rating saved", rating)
}
