// Package auth provides credential hashing, bearer tokens, and the
// authorization policy.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's effective input bound. The guard is applied
// symmetrically at hash and verify time so oversized input surfaces as a
// client error on both paths.
const MaxPasswordBytes = 72

// ErrPasswordTooLong indicates a password beyond bcrypt's 72-byte bound.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword creates a salted bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks the password against a bcrypt hash. A wrong password
// is (false, nil); only malformed hashes or oversized input return an error.
// Comparison is constant-time inside bcrypt itself.
func VerifyPassword(password, hash string) (bool, error) {
	if len(password) > MaxPasswordBytes {
		return false, ErrPasswordTooLong
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
