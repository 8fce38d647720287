package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "jwt-test-secret"

func TestNewAccessToken_ClaimsRoundTrip(t *testing.T) {
	at, err := NewAccessToken(testSecret, 42, "MENTOR", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("expected non-empty token")
	}

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatal("expected valid MapClaims")
	}
	if got := claims["sub"].(float64); got != 42 {
		t.Errorf("sub: got %v, want 42", got)
	}
	if got := claims["role"].(string); got != "MENTOR" {
		t.Errorf("role: got %q, want MENTOR", got)
	}
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken(testSecret, 1, "STUDENT", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestNewRefreshToken_UniqueAndHashed(t *testing.T) {
	a, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens should not collide")
	}
	if len(a.Raw) != 96 {
		t.Errorf("raw length: got %d, want 96", len(a.Raw))
	}
	if HashRefreshRaw(a.Raw) == a.Raw {
		t.Error("hash must differ from raw token")
	}
	if HashRefreshRaw(a.Raw) != HashRefreshRaw(a.Raw) {
		t.Error("hash must be deterministic")
	}
}
