package users

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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const handlerTimeout = 10 * time.Second

// publicProjection hides credentials and token fields from listings.
var publicProjection = bson.M{
	"name": 1, "email": 1, "phonenumber": 1, "gender": 1, "role": 1, "avatar": 1,
}

// GetAllUsers lists users with the public projection, paginated.
func GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Name != "" {
		filter["name"] = bson.M{"$regex": opts.Name, "$options": "i"}
	}

	findOpts := options.Find().SetProjection(publicProjection)
	result, err := utils.FindPaginated[models.User](ctx, db.UserCollection, filter, opts, findOpts)
	if err != nil {
		log.Println("GetAllUsers find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetUser returns one user's public profile.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.ParseObjectID(ps.ByName("id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID},
		options.FindOne().SetProjection(publicProjection)).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Println("GetUser find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve user")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", user)
}

// UpdateUser updates the caller's own profile. Only profile fields are
// accepted; password and role changes go through their own endpoints.
func UpdateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Name        *string       `json:"name"`
		PhoneNumber *string       `json:"phonenumber"`
		Gender      *string       `json:"gender"`
		Avatar      *models.Image `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if body.Name != nil {
		set["name"] = *body.Name
	}
	if body.PhoneNumber != nil {
		set["phonenumber"] = *body.PhoneNumber
	}
	if body.Gender != nil {
		set["gender"] = *body.Gender
	}
	if body.Avatar != nil {
		set["avatar"] = *body.Avatar
	}

	var updated models.User
	err := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(publicProjection),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Println("UpdateUser update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update user")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", updated)
}

// DeleteUser removes the caller's account and their dependent documents.
func DeleteUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := db.UserCollection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		log.Println("DeleteUser delete error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not delete user")
		return
	}

	// best effort cleanup; orders stay for the store's records
	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"user": userID}); err != nil {
		log.Println("DeleteUser cart cleanup error:", err)
	}
	if _, err := db.FavoriteCollection.DeleteMany(ctx, bson.M{"user": userID}); err != nil {
		log.Println("DeleteUser favorite cleanup error:", err)
	}

	utils.RespondSuccess(w, http.StatusOK, "Delete User successfully!", nil)
}
