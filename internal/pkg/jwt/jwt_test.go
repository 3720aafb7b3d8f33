package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "vendor")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != userID || claims.Role != "vendor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("secret", -time.Minute)
	token, _ := svc.GenerateAccessToken(uuid.New(), "customer")

	if _, err := svc.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _ := NewService("secret-a", time.Hour).GenerateAccessToken(uuid.New(), "customer")

	if _, err := NewService("secret-b", time.Hour).ValidateAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := NewService("secret", time.Hour).ValidateAccessToken("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
