package favorites

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

// GetUserFavorites returns the caller's favorite stores. 404 when the user
// never starred anything; the document only exists while non-empty.
func GetUserFavorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var fav models.Favorite
	err := db.FavoriteCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Favorite not found")
		return
	}
	if err != nil {
		log.Println("GetUserFavorites find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve favorites")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", fav)
}

// AddFavorite stars a store for the caller. Duplicates are rejected.
func AddFavorite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, storeID, ok := decodeFavoriteRequest(w, r)
	if !ok {
		return
	}

	if err := ensureStoreExists(ctx, storeID); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, http.StatusBadRequest, "Store does not exist in the system")
			return
		}
		log.Println("AddFavorite store check error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not verify store")
		return
	}

	var fav models.Favorite
	err := db.FavoriteCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&fav)
	switch {
	case err == mongo.ErrNoDocuments:
		fav = models.Favorite{
			ID:     primitive.NewObjectID(),
			User:   userID,
			Stores: []primitive.ObjectID{storeID},
		}
		if _, err := db.FavoriteCollection.InsertOne(ctx, fav); err != nil {
			log.Println("AddFavorite insert error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Could not update favorites")
			return
		}
	case err != nil:
		log.Println("AddFavorite find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update favorites")
		return
	default:
		for _, s := range fav.Stores {
			if s == storeID {
				utils.RespondError(w, http.StatusBadRequest, "Store is already in favorites")
				return
			}
		}
		fav.Stores = append(fav.Stores, storeID)
		update := bson.M{"$set": bson.M{"store": fav.Stores}}
		if _, err := db.FavoriteCollection.UpdateOne(ctx, bson.M{"_id": fav.ID}, update); err != nil {
			log.Println("AddFavorite update error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Could not update favorites")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":  true,
		"message":  "Favorite updated successfully",
		"favorite": fav,
	})
}

// RemoveFavorite unstars a store. An emptied list deletes the document.
func RemoveFavorite(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, storeID, ok := decodeFavoriteRequest(w, r)
	if !ok {
		return
	}

	if err := ensureStoreExists(ctx, storeID); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, http.StatusBadRequest, "Store does not exist in the system")
			return
		}
		log.Println("RemoveFavorite store check error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not verify store")
		return
	}

	var fav models.Favorite
	err := db.FavoriteCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Favorite list not found")
		return
	}
	if err != nil {
		log.Println("RemoveFavorite find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update favorites")
		return
	}

	kept := fav.Stores[:0]
	for _, s := range fav.Stores {
		if s != storeID {
			kept = append(kept, s)
		}
	}
	fav.Stores = kept

	if len(fav.Stores) == 0 {
		if _, err := db.FavoriteCollection.DeleteOne(ctx, bson.M{"_id": fav.ID}); err != nil {
			log.Println("RemoveFavorite delete error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Could not update favorites")
			return
		}
		utils.RespondSuccess(w, http.StatusOK, "Favorite list is now empty and has been deleted", nil)
		return
	}

	update := bson.M{"$set": bson.M{"store": fav.Stores}}
	if _, err := db.FavoriteCollection.UpdateOne(ctx, bson.M{"_id": fav.ID}, update); err != nil {
		log.Println("RemoveFavorite update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update favorites")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":  true,
		"message":  "Store removed from favorites",
		"favorite": fav,
	})
}

func decodeFavoriteRequest(w http.ResponseWriter, r *http.Request) (userID, storeID primitive.ObjectID, ok bool) {
	userID, ok = utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	var body struct {
		StoreID string `json:"storeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.StoreID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	storeID, ok = utils.ParseObjectID(body.StoreID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID format")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return userID, storeID, true
}

func ensureStoreExists(ctx context.Context, storeID primitive.ObjectID) error {
	return db.StoreCollection.FindOne(ctx, bson.M{"_id": storeID}).Err()
}
