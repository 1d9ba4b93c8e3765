package utils

import (
	"crypto/sha256"
	"encoding/hex"
	rndm "math/rand"
	"strings"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var digitRunes = []rune("0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateOTP creates a numeric one-time code of length n.
func GenerateOTP(n int) string {
	var otp strings.Builder
	for i := 0; i < n; i++ {
		otp.WriteRune(digitRunes[rndm.Intn(len(digitRunes))])
	}
	return otp.String()
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Hashing ---

// HashToken hashes OTPs and refresh tokens before they are stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
