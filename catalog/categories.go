package catalog

import (
	"context"
	"log"
	"net/http"

	"savora/db"
	"savora/models"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAllCategory lists categories, scoped to a store when the route carries
// one, optionally filtered by name.
func GetAllCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if storeHex := ps.ByName("store_id"); storeHex != "" {
		storeID, ok := utils.ParseObjectID(storeHex)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid store ID format")
			return
		}
		filter["store"] = storeID
	}
	if opts.Name != "" {
		filter["name"] = bson.M{"$regex": opts.Name, "$options": "i"}
	}

	result, err := utils.FindPaginated[models.Category](ctx, db.CategoryCollection, filter, opts)
	if err != nil {
		log.Println("GetAllCategory find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetCategory returns one category by id.
func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	categoryID, ok := utils.ParseObjectID(ps.ByName("category_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var category models.Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Println("GetCategory find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve category")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", category)
}
