package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID = %d; want 42", userID)
	}
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	claims := jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "42"}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(forged); err == nil {
		t.Fatalf("expected a foreign signature to be rejected")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
