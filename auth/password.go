// Package auth handles authentication: password hashing, bearer-token
// issuance and verification, and the HTTP middleware that turns an incoming
// Authorization header into a request-scoped identity.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/todoserve-go/apperror"
)

// HashPassword produces a salted bcrypt hash of plaintext. The salt is random
// per call, so hashing the same password twice yields different strings that
// both verify.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// A mismatch is a normal false result; a hash that bcrypt cannot parse is an
// internal error, never a silent non-match, so corrupted rows surface instead
// of locking users out quietly.
func CheckPassword(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperror.NewInternalError("malformed password hash", err)
}
