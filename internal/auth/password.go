package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the fixed cost factor used across the service.
const bcryptCost = 10

// MinPasswordLength is the shortest password accepted anywhere a password is set.
const MinPasswordLength = 6

// HashPassword derives a salted one-way digest of the plaintext.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored digest.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
