package domain

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the fixed bcrypt work factor for stored credentials.
const passwordHashCost = 12

// HashPassword returns the bcrypt hash of a plaintext password. Values that
// already carry a bcrypt hash are returned unchanged, keeping the store's
// hash-on-write step idempotent across repeated saves.
func HashPassword(plain string) (string, error) {
	if PasswordHashed(plain) {
		return plain, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// PasswordMatches reports whether plain corresponds to the stored hash.
// A mismatch or malformed hash yields false, never an error.
func PasswordMatches(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordHashed reports whether s already looks like a bcrypt hash.
func PasswordHashed(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
