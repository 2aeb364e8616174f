package services

import (
	"os"
	"testing"

	"main/model"
	"main/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	token, err := GenerateToken("u1", model.RoleHotelOwner)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("Expected user u1, got %q", claims.UserID)
	}
	if claims.Role != model.RoleHotelOwner {
		t.Errorf("Expected role %q, got %q", model.RoleHotelOwner, claims.Role)
	}
	if IsRefreshToken(token) {
		t.Error("Expected access token not to be flagged as refresh")
	}
}

func TestRefreshTokenDetection(t *testing.T) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	refresh, err := GenerateRefreshToken("u1", model.RoleUser)
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}
	if !IsRefreshToken(refresh) {
		t.Error("Expected refresh token to be detected")
	}

	if _, err := ParseToken(refresh); err != nil {
		t.Errorf("Expected refresh token to still parse, got %v", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("Expected error for malformed token")
	}
	if _, err := ParseToken(""); err == nil {
		t.Error("Expected error for empty token")
	}
}
