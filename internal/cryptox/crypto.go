// Package cryptox holds the password hashing used on both sides of the admin
// API: the client-side one-way hash sent over the wire, and the salted
// verifier the fake server keeps instead of that hash.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// HashPassword returns the lowercase hex SHA-256 of password. This is the
// only form in which a password ever leaves the client.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DeriveVerifier stretches a client password hash with argon2id.
func DeriveVerifier(passwordHash string, salt []byte) []byte {
	return argon2.IDKey([]byte(passwordHash), salt, 1, 64*1024, 4, 32)
}

// CheckVerifier reports whether passwordHash matches the stored verifier.
func CheckVerifier(passwordHash string, salt, verifier []byte) bool {
	candidate := DeriveVerifier(passwordHash, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}

// NewSalt returns n random bytes.
func NewSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
