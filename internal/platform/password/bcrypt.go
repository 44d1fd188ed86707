// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for every stored hash.
const Cost = 10

// MaxBytes is the longest input bcrypt reads. Longer passwords are cut to
// their first MaxBytes bytes before hashing and before comparing.
const MaxBytes = 72

// Hasher hashes plaintext passwords and compares them against stored hashes.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the fixed work factor.
func NewHasher() *Hasher {
	return &Hasher{cost: Cost}
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a mismatch.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(plaintext)) == nil
}

func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > MaxBytes {
		return b[:MaxBytes]
	}
	return b
}
