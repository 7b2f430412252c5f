package auth

import (
	"testing"
	"time"

	"gigspace/models"
)

func TestValidRefreshToken(t *testing.T) {
	token, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	user := models.User{
		UserID:        "u1",
		RefreshToken:  hashToken(token),
		RefreshExpiry: time.Now().Add(time.Hour),
	}

	if !validRefreshToken(user, token) {
		t.Fatal("expected stored token to validate")
	}
	if validRefreshToken(user, "deadbeef") {
		t.Fatal("wrong token validated")
	}
	if validRefreshToken(user, "") {
		t.Fatal("empty token validated")
	}
}

func TestValidRefreshTokenExpired(t *testing.T) {
	token, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	user := models.User{
		UserID:        "u1",
		RefreshToken:  hashToken(token),
		RefreshExpiry: time.Now().Add(-time.Minute),
	}

	if validRefreshToken(user, token) {
		t.Fatal("expired token validated")
	}
}

func TestValidRefreshTokenNoneStored(t *testing.T) {
	user := models.User{UserID: "u1"}
	if validRefreshToken(user, "anything") {
		t.Fatal("token validated against user with no stored refresh token")
	}
}
