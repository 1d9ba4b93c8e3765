package auth

import (
	"net/http"
	"time"

	"savora/globals"
	"savora/middleware"
	"savora/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
	refreshCookie   = "refreshToken"
)

// GenerateAccessToken signs a JWT carrying the user's id, name and roles.
func GenerateAccessToken(userID, name string, roles []string) (string, error) {
	claims := &middleware.Claims{
		Name:   name,
		UserID: userID,
		Role:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// GenerateEmployeeAccessToken is the same token shape for back-office staff.
func GenerateEmployeeAccessToken(emp models.Employee) (string, error) {
	return GenerateAccessToken(emp.ID.Hex(), emp.Name, emp.Role)
}

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(refreshTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
