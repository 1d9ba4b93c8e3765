package orders

import (
	"strings"
	"testing"
	"time"
)

func TestPickupQRRoundTrip(t *testing.T) {
	payload := GeneratePickupPayload("65f000000000000000000001", "65f000000000000000000002")

	orderID, userID, err := VerifyPickupQR(payload)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if orderID != "65f000000000000000000001" {
		t.Errorf("orderID = %q", orderID)
	}
	if userID != "65f000000000000000000002" {
		t.Errorf("userID = %q", userID)
	}
}

func TestPickupQRTamperedPayload(t *testing.T) {
	payload := GeneratePickupPayload("order-a", "user-a")
	tampered := strings.Replace(payload, "order-a", "order-b", 1)

	if _, _, err := VerifyPickupQR(tampered); err == nil {
		t.Fatal("expected tampered payload to fail verification")
	}
}

func TestPickupQRExpired(t *testing.T) {
	old := time.Now().Unix() - allowedDrift - 1
	payload := generatePickupPayloadAt("order-a", "user-a", old)

	if _, _, err := VerifyPickupQR(payload); err == nil {
		t.Fatal("expected expired payload to fail verification")
	}
}

func TestPickupQRFutureTimestamp(t *testing.T) {
	future := time.Now().Unix() + allowedDrift + 10
	payload := generatePickupPayloadAt("order-a", "user-a", future)

	if _, _, err := VerifyPickupQR(payload); err == nil {
		t.Fatal("expected future payload to fail verification")
	}
}

func TestPickupQRMalformed(t *testing.T) {
	for _, payload := range []string{"", "a|b", "a|b|c|d|e"} {
		if _, _, err := VerifyPickupQR(payload); err == nil {
			t.Errorf("expected %q to fail verification", payload)
		}
	}
}
