package employees

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
	"golang.org/x/crypto/bcrypt"
)

const handlerTimeout = 10 * time.Second

var publicProjection = bson.M{
	"name": 1, "email": 1, "phonenumber": 1, "gender": 1, "avatar": 1, "role": 1, "status": 1,
}

// GetAllEmployees lists back-office staff, paginated. Admin only; the gate
// lives on the route.
func GetAllEmployees(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Name != "" {
		filter["name"] = bson.M{"$regex": opts.Name, "$options": "i"}
	}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.Role != "" {
		filter["role"] = opts.Role
	}

	findOpts := options.Find().SetProjection(publicProjection)
	result, err := utils.FindPaginated[models.Employee](ctx, db.EmployeeCollection, filter, opts, findOpts)
	if err != nil {
		log.Println("GetAllEmployees find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve employees")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetEmployee returns one employee's public profile.
func GetEmployee(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id, ok := utils.ParseObjectID(ps.ByName("id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var emp models.Employee
	err := db.EmployeeCollection.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(publicProjection)).Decode(&emp)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		log.Println("GetEmployee find error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve employee")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", emp)
}

// AddEmployee creates a staff account. When no password is given the phone
// number is the initial password, to be changed on first login.
func AddEmployee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		Name        string   `json:"name"`
		Email       string   `json:"email"`
		PhoneNumber string   `json:"phonenumber"`
		Gender      string   `json:"gender"`
		Password    string   `json:"password"`
		Role        []string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	err := db.EmployeeCollection.FindOne(ctx, bson.M{"email": body.Email}).Err()
	if err == nil {
		utils.RespondError(w, http.StatusConflict, "Employee has already existed")
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Println("AddEmployee lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create employee")
		return
	}

	password := body.Password
	if password == "" {
		password = body.PhoneNumber
	}
	if password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Password or phone number is required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("AddEmployee hash error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create employee")
		return
	}

	gender := body.Gender
	if gender == "" {
		gender = "other"
	}
	role := body.Role
	if len(role) == 0 {
		role = []string{"employee"}
	}

	now := time.Now()
	emp := models.Employee{
		Name:        body.Name,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		Password:    string(hash),
		Gender:      gender,
		Role:        role,
		Status:      "ACTIVE",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.EmployeeCollection.InsertOne(ctx, emp); err != nil {
		log.Println("AddEmployee insert error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create employee")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, "Add employee successfully", nil)
}

// UpdateEmployee updates the caller's own staff profile.
func UpdateEmployee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	empID, ok := utils.GetUserObjectID(r)
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

	var updated models.Employee
	err := db.EmployeeCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": empID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(publicProjection),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		log.Println("UpdateEmployee update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update employee")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", updated)
}

// DeleteEmployee removes a staff account by id.
func DeleteEmployee(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id, ok := utils.ParseObjectID(ps.ByName("id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	res, err := db.EmployeeCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Println("DeleteEmployee delete error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not delete employee")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Delete employee successfully", nil)
}

// ChangeRoles replaces an employee's role list wholesale.
func ChangeRoles(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id, ok := utils.ParseObjectID(ps.ByName("id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var body struct {
		Roles []string `json:"roles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Roles) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Roles are required")
		return
	}

	var updated models.Employee
	err := db.EmployeeCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": body.Roles, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(publicProjection),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		log.Println("ChangeRoles update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not update roles")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Update Roles Successfully", updated)
}

// BlockEmployee flips the account status to BLOCKED. Blocked staff can still
// authenticate until their token expires; route guards check status.
func BlockEmployee(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	id, ok := utils.ParseObjectID(ps.ByName("id"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var updated models.Employee
	err := db.EmployeeCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": "BLOCKED", "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(publicProjection),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		log.Println("BlockEmployee update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not block employee")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Employee account has been blocked", updated)
}
