package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/nbouch/roombrowse/internal/domain"
)

// hashRounds is the PBKDF2 iteration count. Deliberately large so that
// brute-forcing a leaked digest is expensive.
const hashRounds = 100000

// saltBytes is the entropy of a generated salt before hex encoding.
const saltBytes = 32

// DeriveHash returns the hex-encoded PBKDF2-SHA256 digest of the password
// and salt. Deterministic: the same inputs always produce the same digest.
func DeriveHash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashRounds, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

// Verify reports whether password is the user's password. The comparison is
// constant-time so the result does not leak how much of the digest matched.
func Verify(user *domain.User, password string) bool {
	derived := DeriveHash(password, user.Salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(user.PwHash)) == 1
}

// GenerateSalt returns a fresh random salt as a 64-character hex string.
func GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewUser builds an unpersisted user with a fresh salt and derived password
// hash. Callers are responsible for rejecting empty passwords and for
// persisting the result.
func NewUser(firstName, lastName, email, password string) (*domain.User, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		PwHash:    DeriveHash(password, salt),
		Salt:      salt,
	}, nil
}
