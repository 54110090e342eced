package security

import (
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	claims, err := ValidateJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if got := RoleFromClaims(claims); got != "admin" {
		t.Errorf("expected admin role, got %q", got)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Error("validation must fail with the wrong secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if _, err := ValidateJWT(token, "test-secret"); err == nil {
		t.Error("validation must fail for expired tokens")
	}
}
