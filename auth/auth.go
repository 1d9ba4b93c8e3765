package auth

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
	"golang.org/x/crypto/bcrypt"
)

const handlerTimeout = 10 * time.Second

// Register creates a customer account. Email is the unique key.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phonenumber"`
		Gender      string `json:"gender"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" || body.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": body.Email}).Err()
	if err == nil {
		utils.RespondError(w, http.StatusConflict, "Account already exists")
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Println("Register lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Register hash error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	user := models.NewUser(body.Name, body.Email, body.PhoneNumber, body.Gender, string(hash))
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		log.Println("Register insert error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, "Account created successfully", nil)
}

// Login checks credentials and issues an access token plus a refresh cookie.
// The refresh token is stored hashed; a stolen database dump cannot replay it.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": body.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Println("Login lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := GenerateAccessToken(user.ID.Hex(), user.Name, user.Role)
	if err != nil {
		log.Println("Login token error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	refreshToken := utils.GenerateRandomString(48)
	update := bson.M{"$set": bson.M{
		"refreshToken":  utils.HashToken(refreshToken),
		"refreshExpiry": time.Now().Add(refreshTokenTTL),
		"lastLogin":     time.Now(),
	}}
	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		log.Println("Login refresh store error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	setRefreshCookie(w, refreshToken)
	utils.RespondSuccess(w, http.StatusOK, "", utils.M{
		"_id":   user.ID.Hex(),
		"token": accessToken,
	})
}

// LoginEmployee authenticates back-office staff. Blocked accounts are
// rejected outright.
func LoginEmployee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var emp models.Employee
	err := db.EmployeeCollection.FindOne(ctx, bson.M{"email": body.Email}).Decode(&emp)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Println("LoginEmployee lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	if emp.Status == "BLOCKED" {
		utils.RespondError(w, http.StatusForbidden, "Account has been blocked")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(body.Password)) != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := GenerateEmployeeAccessToken(emp)
	if err != nil {
		log.Println("LoginEmployee token error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", utils.M{
		"_id":   emp.ID.Hex(),
		"token": accessToken,
	})
}

// RefreshToken exchanges a valid refresh cookie for a new access token.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	cookie, err := r.Cookie(refreshCookie)
	if err != nil || cookie.Value == "" {
		utils.RespondError(w, http.StatusNotFound, "No refresh token in cookies")
		return
	}

	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"refreshToken": utils.HashToken(cookie.Value)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "No refresh token present in database or not matched")
		return
	}
	if err != nil {
		log.Println("RefreshToken lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not refresh token")
		return
	}

	if time.Now().After(user.RefreshExpiry) {
		utils.RespondError(w, http.StatusBadRequest, "Refresh token expired")
		return
	}

	accessToken, err := GenerateAccessToken(user.ID.Hex(), user.Name, user.Role)
	if err != nil {
		log.Println("RefreshToken sign error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not refresh token")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "", utils.M{"accessToken": accessToken})
}

// Logout revokes the refresh token and clears the cookie. Missing cookie is
// not an error; logout is idempotent.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	cookie, err := r.Cookie(refreshCookie)
	if err == nil && cookie.Value != "" {
		_, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"refreshToken": utils.HashToken(cookie.Value)},
			bson.M{"$unset": bson.M{"refreshToken": "", "refreshExpiry": ""}},
		)
		if err != nil {
			log.Println("Logout revoke error:", err)
		}
	}

	clearRefreshCookie(w)
	utils.RespondSuccess(w, http.StatusOK, "Logout successful", nil)
}

// ChangePassword verifies the old password before setting the new one.
func ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	userID, ok := utils.GetUserObjectID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OldPassword == "" || body.NewPassword == "" {
		utils.RespondError(w, http.StatusBadRequest, "Old and new password are required")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Println("ChangePassword lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not change password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.OldPassword)) != nil {
		utils.RespondError(w, http.StatusBadRequest, "Old password is incorrect")
		return
	}

	if err := setPassword(ctx, user.ID, body.NewPassword); err != nil {
		log.Println("ChangePassword update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not change password")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Password changed successfully", nil)
}

// ResetPassword sets a new password for an account that passed the OTP check.
func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.NewPassword == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email and new password are required")
		return
	}

	ok, err := consumeResetGrant(body.Email)
	if err != nil {
		log.Println("ResetPassword grant error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not reset password")
		return
	}
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "OTP verification required")
		return
	}

	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"email": body.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Println("ResetPassword lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not reset password")
		return
	}

	if err := setPassword(ctx, user.ID, body.NewPassword); err != nil {
		log.Println("ResetPassword update error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not reset password")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Password changed successfully", nil)
}

func setPassword(ctx context.Context, userID interface{}, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": string(hash), "updatedAt": time.Now()}},
	)
	return err
}
