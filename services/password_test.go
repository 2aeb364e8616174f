package services

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	password := "Secret123!"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if !strings.Contains(hash, "$") {
		t.Fatalf("Expected salt$hash format, got %q", hash)
	}

	match, err := VerifyPassword(hash, password)
	if err != nil {
		t.Fatalf("Failed to verify password: %v", err)
	}
	if !match {
		t.Error("Expected password to verify against its own hash")
	}

	match, err = VerifyPassword(hash, "WrongPass1!")
	if err != nil {
		t.Fatalf("Failed to verify password: %v", err)
	}
	if match {
		t.Error("Expected wrong password to be rejected")
	}
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	weak := []string{"short", "nonumbers!", "noSpecial1", "a1!"}
	for _, password := range weak {
		if _, err := HashPassword(password); err == nil {
			t.Errorf("Expected error for weak password %q", password)
		}
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("Secret123!")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	second, err := HashPassword("Secret123!")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if first == second {
		t.Error("Expected distinct salts to produce distinct hashes")
	}
}

func TestComparePasswordsBadFormat(t *testing.T) {
	if ComparePasswords("not-a-valid-hash", "Secret123!") {
		t.Error("Expected malformed stored hash to fail comparison")
	}
}
