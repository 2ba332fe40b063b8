package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", "home-inventory", time.Hour)

	token, err := svc.Generate("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", claims.UserID)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", "home-inventory", -time.Minute)

	token, err := svc.Generate("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issued := NewTokenService("secret-a", "home-inventory", time.Hour)
	verifier := NewTokenService("secret-b", "home-inventory", time.Hour)

	token, err := issued.Generate("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", "home-inventory", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestPasswordHashCompare(t *testing.T) {
	hash, err := HashPassword("longenough")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "longenough" {
		t.Fatal("hash must not equal plaintext")
	}
	if !ComparePassword(hash, "longenough") {
		t.Fatal("expected matching password to compare true")
	}
	if ComparePassword(hash, "wrongpassword") {
		t.Fatal("expected mismatched password to compare false")
	}
}
