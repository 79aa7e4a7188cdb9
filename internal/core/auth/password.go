package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword digests a password with bcrypt. All new registrations go
// through here.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// VerifyPassword checks a candidate password against a stored credential.
// Besides bcrypt digests it accepts two legacy forms carried over from the
// seeded dataset: unsalted hex SHA-256 digests and plaintext rows. The
// legacy branches are a compatibility shim, not a supported format.
func VerifyPassword(pw, stored string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pw)) == nil
	}
	sum := sha256.Sum256([]byte(pw))
	if subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(stored)) == 1 {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(pw), []byte(stored)) == 1
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
