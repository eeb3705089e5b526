package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatchedHashAndPassword is returned by ComparePasswordAndHash when the
// supplied password does not match the stored hash.
var ErrMismatchedHashAndPassword = errors.New("password does not match hash")

// HashPassword generates a bcrypt hash of the given password using the
// default cost factor. The result is self-describing (algorithm, cost and
// salt are embedded) and is the only form in which a password is ever
// persisted or logged-adjacent.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// ComparePasswordAndHash validates the given cleartext password against the
// stored bcrypt hash. Returns ErrMismatchedHashAndPassword when they do not
// match and the underlying bcrypt error for malformed hashes.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
