package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leadpilot/bankleads-backend/internal/auth"
	"github.com/leadpilot/bankleads-backend/internal/model"
)

var secret = []byte("unit-test-secret")

func TestTokenRoundTrip(t *testing.T) {
	user := &model.User{ID: "u1", Email: "admin@bank.test", Role: model.RoleAdmin}

	token, err := auth.GenerateToken(secret, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := auth.ParseToken(secret, token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "admin@bank.test" || claims.Role != model.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != auth.TokenTTL {
		t.Errorf("expected 12h validity, got %v", ttl)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(secret, &model.User{ID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.ParseToken([]byte("other-secret"), token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := &auth.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-13 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := auth.ParseToken(secret, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := auth.ParseToken(secret, "not.a.token"); err == nil {
		t.Fatal("expected parse error")
	}
}
