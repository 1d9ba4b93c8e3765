package orders

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Pickup QR codes carry orderID|userID|timestamp|signature. The signature is
// HMAC-SHA256 over the first three fields so the counter can verify a code
// offline.

const allowedDrift = 15 * 60 // seconds

var pickupSecret = func() []byte {
	if s := os.Getenv("PICKUP_QR_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("savora-pickup-secret")
}()

// GeneratePickupPayload signs a pickup payload for the given order and user.
func GeneratePickupPayload(orderID, userID string) string {
	return generatePickupPayloadAt(orderID, userID, time.Now().Unix())
}

func generatePickupPayloadAt(orderID, userID string, ts int64) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, userID, ts)
	return fmt.Sprintf("%s|%s", data, sign(data))
}

// VerifyPickupQR checks a scanned payload and returns the order and user ids.
func VerifyPickupQR(payload string) (orderID, userID string, err error) {
	return verifyPickupQRAt(payload, time.Now().Unix())
}

func verifyPickupQRAt(payload string, now int64) (orderID, userID string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return "", "", errors.New("invalid QR format")
	}

	orderID = parts[0]
	userID = parts[1]
	timestampStr := parts[2]
	signature := parts[3]

	ts, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return "", "", errors.New("invalid timestamp")
	}
	if abs(now-ts) > allowedDrift {
		return "", "", errors.New("code expired or from the future")
	}

	data := fmt.Sprintf("%s|%s|%s", orderID, userID, timestampStr)
	if !hmac.Equal([]byte(signature), []byte(sign(data))) {
		return "", "", errors.New("invalid signature")
	}

	return orderID, userID, nil
}

func sign(data string) string {
	h := hmac.New(sha256.New, pickupSecret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
