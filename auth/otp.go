package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"time"

	"savora/db"
	"savora/rdx"
	"savora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	otpTTL        = 2 * time.Minute
	resetGrantTTL = 10 * time.Minute
)

func otpKey(email string) string        { return "otp:" + email }
func resetGrantKey(email string) string { return "pwreset:" + email }

// SendEmailOTP mails the code using plain SMTP. Credentials come from the
// environment so dev setups can point at a local relay.
func SendEmailOTP(toEmail, otp string) error {
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	msg := []byte("Subject: Forgot Password OTP\n\n" +
		"Your OTP is: " + otp + "\n" +
		"Enter this code to reset your password. It expires in 2 minutes.")

	auth := smtp.PlainAuth("", from, pass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{toEmail}, msg)
}

// ForgotPassword generates a 6 digit OTP, caches its hash and emails the code.
func ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": body.Email}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Account does not exist")
		return
	}
	if err != nil {
		log.Println("ForgotPassword lookup error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not send OTP")
		return
	}

	otp := utils.GenerateOTP(6)
	if err := rdx.SetWithExpiry(otpKey(body.Email), utils.HashToken(otp), otpTTL); err != nil {
		log.Println("ForgotPassword cache error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not send OTP")
		return
	}

	if err := SendEmailOTP(body.Email, otp); err != nil {
		log.Println("ForgotPassword email error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not send email")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Send email successfully", nil)
}

// CheckOTP validates the code and, on success, leaves a short-lived grant
// that ResetPassword consumes. The OTP itself is single use.
func CheckOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.OTP == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	stored, err := rdx.RdxGet(otpKey(body.Email))
	if err != nil || stored == "" || stored != utils.HashToken(body.OTP) {
		utils.RespondError(w, http.StatusBadRequest, "OTP expired or incorrect, please try again")
		return
	}

	if err := rdx.RdxDel(otpKey(body.Email)); err != nil {
		log.Println("CheckOTP cleanup error:", err)
	}
	if err := rdx.SetWithExpiry(resetGrantKey(body.Email), "1", resetGrantTTL); err != nil {
		log.Println("CheckOTP grant error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Could not verify OTP")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "OTP is valid", nil)
}

// consumeResetGrant reports whether the email passed CheckOTP recently and
// removes the grant so it cannot be reused.
func consumeResetGrant(email string) (bool, error) {
	val, err := rdx.RdxGet(resetGrantKey(email))
	if err != nil || val == "" {
		return false, nil
	}
	if err := rdx.RdxDel(resetGrantKey(email)); err != nil {
		return false, err
	}
	return true, nil
}
