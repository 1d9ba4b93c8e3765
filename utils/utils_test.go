package utils

import (
	"testing"
)

func TestParseObjectID(t *testing.T) {
	id, ok := ParseObjectID("65f000000000000000000001")
	if !ok {
		t.Fatal("expected valid hex to parse")
	}
	if id.Hex() != "65f000000000000000000001" {
		t.Errorf("round trip = %q", id.Hex())
	}

	for _, bad := range []string{"", "xyz", "65f0", "65f00000000000000000000g"} {
		if _, ok := ParseObjectID(bad); ok {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	if len(otp) != 6 {
		t.Fatalf("len = %d, want 6", len(otp))
	}
	for _, c := range otp {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit %q in OTP %q", c, otp)
		}
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("secret-token")
	b := HashToken("secret-token")
	if a != b {
		t.Error("same input must hash identically")
	}
	if a == HashToken("other-token") {
		t.Error("different inputs must not collide")
	}
	if len(a) != 64 {
		t.Errorf("hex sha256 length = %d, want 64", len(a))
	}
}

func TestGenerateRandomStringUnique(t *testing.T) {
	a := GenerateRandomString(32)
	b := GenerateRandomString(32)
	if a == b {
		t.Error("two random strings collided")
	}
	if len(a) == 0 {
		t.Error("empty random string")
	}
}
