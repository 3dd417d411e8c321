package auth

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "congregate/pkg/errors"
)

// minPasswordLength keeps obviously weak passwords out of the user table.
const minPasswordLength = 8

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", apperrors.New(apperrors.ErrCodeInvalidInput,
			"password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "hash password")
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
