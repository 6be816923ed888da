package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances brute-force resistance against login latency.
const bcryptCost = 12

// HashPassword hashes a plain text password using bcrypt. Each call salts
// independently, so hashing the same password twice yields different outputs.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plain text password against the stored hash.
// A non-nil error means mismatch; malformed hashes fail the same way.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
