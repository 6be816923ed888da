package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	secret := "my-secret-key"
	j := NewJWT(secret)

	userID := "f4b8c2ce-9d3a-4a0f-8f2e-1c6a33f8b001"

	// 1. Test Generate
	token, err := j.Generate(userID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	// 2. Test Validate Success
	got, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if got != userID {
		t.Errorf("Validate() got subject %s, want %s", got, userID)
	}

	// 3. Test Tampered Token (Wrong Signature)
	parts := strings.Split(token, ".")
	tamperedToken := parts[0] + "." + parts[1] + ".invalid-signature"
	if _, err := j.Validate(tamperedToken); err == nil {
		t.Error("Validate() accepted tampered signature")
	}

	// 4. Test Invalid Format
	if _, err := j.Validate("invalid.token"); err == nil {
		t.Error("Validate() accepted invalid format")
	}

	// 5. Test Wrong Secret
	other := NewJWT("another-secret")
	if _, err := other.Validate(token); err == nil {
		t.Error("Validate() accepted token signed with a different secret")
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("my-secret-key")

	// Sign an already expired token with the same secret
	claims := jwt.RegisteredClaims{
		Subject:   "some-user",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-31 * 24 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	if _, err := j.Validate(token); err == nil {
		t.Error("Validate() accepted expired token")
	}
}

func TestJWT_RejectsUnexpectedSigningMethod(t *testing.T) {
	j := NewJWT("my-secret-key")

	// alg=none tokens must never validate
	claims := jwt.RegisteredClaims{
		Subject:   "some-user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	if _, err := j.Validate(token); err == nil {
		t.Error("Validate() accepted token with alg=none")
	}
}

func TestJWT_RejectsEmptySubject(t *testing.T) {
	j := NewJWT("my-secret-key")

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	if _, err := j.Validate(token); err == nil {
		t.Error("Validate() accepted token without a subject")
	}
}

func TestJWT_TokenValidityWindow(t *testing.T) {
	if TokenValidity != 30*24*time.Hour {
		t.Errorf("TokenValidity = %v, want 30 days", TokenValidity)
	}
}
