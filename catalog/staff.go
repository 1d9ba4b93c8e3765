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

// GetAllStaff lists the staff members of a store.
func GetAllStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
	if opts.Role != "" {
		filter["role"] = opts.Role
	}

	result, err := utils.FindPaginated[models.Staff](ctx, db.StaffCollection, filter, opts)
	if err != nil {
		log.Println("GetAllStaff find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve staff")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetStaff returns one staff member by id.
func GetStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	staffID, ok := utils.ParseObjectID(ps.ByName("staff_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var staff models.Staff
	err := db.StaffCollection.FindOne(ctx, bson.M{"_id": staffID}).Decode(&staff)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Staff not found")
		return
	}
	if err != nil {
		log.Println("GetStaff find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve staff")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", staff)
}
