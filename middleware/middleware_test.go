package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"savora/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signTestToken(t *testing.T, userID string, roles []string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		Name:   "tester",
		UserID: userID,
		Role:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestAuthenticateMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateBadFormat(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not be called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Token abcdef")
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateSetsContext(t *testing.T) {
	var gotUser string
	var gotRoles []string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRoles, _ = r.Context().Value(globals.RoleKey).([]string)
		w.WriteHeader(http.StatusOK)
	})

	token := signTestToken(t, "65f000000000000000000001", []string{"user"}, time.Hour)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUser != "65f000000000000000000001" {
		t.Errorf("userID in context = %q", gotUser)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "user" {
		t.Errorf("roles in context = %v", gotRoles)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not be called")
	})

	token := signTestToken(t, "65f000000000000000000001", []string{"user"}, -time.Hour)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	gate := RequireRole("admin", "employee")
	handler := Authenticate(gate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		roles []string
		want  int
	}{
		{[]string{"admin"}, http.StatusOK},
		{[]string{"user", "employee"}, http.StatusOK},
		{[]string{"user"}, http.StatusForbidden},
		{nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		token := signTestToken(t, "65f000000000000000000001", tc.roles, time.Hour)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employee", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler(rec, req, nil)

		if rec.Code != tc.want {
			t.Errorf("roles %v: status = %d, want %d", tc.roles, rec.Code, tc.want)
		}
	}
}

func TestOptionalAuthAnonymous(t *testing.T) {
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if r.Context().Value(globals.UserIDKey) != nil {
			t.Error("anonymous request must not carry a user id")
		}
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/store", nil)
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signTestToken(t, "65f000000000000000000002", []string{"user"}, time.Hour)

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "65f000000000000000000002" {
		t.Errorf("UserID = %q", claims.UserID)
	}
}
