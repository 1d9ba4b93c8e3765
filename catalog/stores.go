package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"savora/db"
	"savora/models"
	"savora/rdx"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const handlerTimeout = 10 * time.Second

// storeListing is a store plus its aggregated rating numbers.
type storeListing struct {
	models.Store `bson:",inline"`
	AvgRating    float64 `json:"avgRating"`
	AmountRating int64   `json:"amountRating"`
	OrderCount   int64   `json:"orderCount,omitempty"`
}

// GetAllStore lists stores with optional name/category filters and
// rating/standout/name sorting. Rating numbers are aggregated per request;
// sorting and paging happen in memory because the sort keys are derived.
func GetAllStore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Name != "" {
		filter["name"] = bson.M{"$regex": opts.Name, "$options": "i"}
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		ids := make([]primitive.ObjectID, 0)
		for _, c := range strings.Split(cat, ",") {
			if id, ok := utils.ParseObjectID(strings.TrimSpace(c)); ok {
				ids = append(ids, id)
			}
		}
		filter["storeCategory"] = bson.M{"$in": ids}
	}

	stores, err := utils.FindAndDecode[models.Store](ctx, db.StoreCollection, filter)
	if err != nil {
		log.Println("GetAllStore find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve stores")
		return
	}

	ratings, err := groupRatings(ctx, "store")
	if err != nil {
		log.Println("GetAllStore rating aggregate error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not aggregate ratings")
		return
	}

	listings := make([]storeListing, 0, len(stores))
	for _, s := range stores {
		l := storeListing{Store: s}
		if r, ok := ratings[s.ID]; ok {
			l.AvgRating = r.AvgRating
			l.AmountRating = r.Count
		}
		listings = append(listings, l)
	}

	switch opts.Sort {
	case "rating":
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].AvgRating > listings[j].AvgRating })
	case "standout":
		counts, err := orderCountsByStore(ctx)
		if err != nil {
			log.Println("GetAllStore order aggregate error:", err)
			utils.RespondError(w, http.StatusInternalServerError, "Could not aggregate orders")
			return
		}
		for i := range listings {
			listings[i].OrderCount = counts[listings[i].Store.ID]
		}
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].OrderCount > listings[j].OrderCount })
	case "name":
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].Store.Name < listings[j].Store.Name })
	}

	total := int64(len(listings))
	if opts.Paged() {
		start := (opts.Page - 1) * opts.Limit
		if start > len(listings) {
			start = len(listings)
		}
		end := start + opts.Limit
		if end > len(listings) {
			end = len(listings)
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success":     true,
			"total":       total,
			"totalPages":  (total + int64(opts.Limit) - 1) / int64(opts.Limit),
			"currentPage": opts.Page,
			"pageSize":    opts.Limit,
			"data":        listings[start:end],
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "total": total, "data": listings})
}

// GetStoreInformation returns one store with its rating summary. The payload
// is cached in Redis for a short window; stores are hot and rarely change.
func GetStoreInformation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	storeID, ok := utils.ParseObjectID(ps.ByName("store_id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	cacheKey := "store:" + storeID.Hex()
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	store, err := FindStoreByID(ctx, storeID)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Store not found")
		return
	}
	if err != nil {
		log.Println("GetStoreInformation find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve store")
		return
	}

	summary, err := RatingSummaryFor(ctx, "store", storeID)
	if err != nil {
		log.Println("GetStoreInformation rating error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not aggregate ratings")
		return
	}

	payload := utils.M{
		"success": true,
		"data": storeListing{
			Store:        store,
			AvgRating:    summary.AvgRating,
			AmountRating: summary.Count,
		},
	}

	if raw, err := json.Marshal(payload); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(raw), 60*time.Second); err != nil {
			log.Println("GetStoreInformation cache error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// groupRatings aggregates average rating and count per entity id for the
// given field ("store" or "dish").
func groupRatings(ctx context.Context, field string) (map[primitive.ObjectID]models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{field: bson.M{"$exists": true}}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$" + field,
			"avgRating": bson.M{"$avg": "$ratingValue"},
			"count":     bson.M{"$sum": 1},
		}}},
	}
	cursor, err := db.RatingCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID        primitive.ObjectID `bson:"_id"`
		AvgRating float64            `bson:"avgRating"`
		Count     int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]models.RatingSummary, len(rows))
	for _, row := range rows {
		out[row.ID] = models.RatingSummary{AvgRating: row.AvgRating, Count: row.Count}
	}
	return out, nil
}

func orderCountsByStore(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$store", "orderCount": bson.M{"$sum": 1}}}},
	}
	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID         primitive.ObjectID `bson:"_id"`
		OrderCount int64              `bson:"orderCount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]int64, len(rows))
	for _, row := range rows {
		out[row.ID] = row.OrderCount
	}
	return out, nil
}
