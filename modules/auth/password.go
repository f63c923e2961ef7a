package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor for newly hashed passwords. Each
// hash records the cost it was created with, so raising this later only
// affects new signups.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies account passwords with bcrypt. Every
// hash embeds a fresh salt, so equal passwords never share a hash.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher at DefaultBcryptCost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		cost: DefaultBcryptCost,
	}
}

// Hash derives the salted hash stored in place of the password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
