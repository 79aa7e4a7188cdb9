package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword("secret123", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestVerifyPasswordLegacySHA256(t *testing.T) {
	sum := sha256.Sum256([]byte("legacy-pass"))
	stored := hex.EncodeToString(sum[:])

	if !VerifyPassword("legacy-pass", stored) {
		t.Error("legacy sha256 hash rejected")
	}
	if VerifyPassword("other", stored) {
		t.Error("wrong password accepted against legacy hash")
	}
}

func TestVerifyPasswordLegacyPlaintext(t *testing.T) {
	if !VerifyPassword("seeded", "seeded") {
		t.Error("seed-data plaintext rejected")
	}
	if VerifyPassword("seeded", "different") {
		t.Error("mismatched plaintext accepted")
	}
}
