package auth

import (
	"golang.org/x/crypto/bcrypt"

	svcErr "github.com/emberapp/ember-backend/internal/errors"
)

const minPasswordLength = 8

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a password against its hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword rejects passwords that are too short.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return svcErr.InvalidInput("password must be at least 8 characters long")
	}
	return nil
}
