// Package security holds the credential store and the session token
// service.
package security

import (
	"crypto/sha256"
	"encoding/base64"
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// Password length bounds, counted in characters.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
)

// bcrypt ignores input past 72 bytes and newer x/crypto releases reject it.
const bcryptMaxInput = 72

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is outside bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").In("security").Wrapf(err, "hash password")
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A malformed hash is a
// mismatch, never an error.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}

// bcryptInput shrinks long passwords to a fixed-size digest so the whole
// password contributes to the hash.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// ValidateStrength lists every rule password breaks. An empty result means
// the password is acceptable.
func ValidateStrength(password string) []string {
	violations := []string{}

	length := utf8.RuneCountInString(password)
	if length < MinPasswordLength {
		violations = append(violations, "Password must be at least 8 characters long")
	}
	if length > MaxPasswordLength {
		violations = append(violations, "Password must be at most 100 characters long")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter {
		violations = append(violations, "Password must contain at least one letter")
	}
	if !hasDigit {
		violations = append(violations, "Password must contain at least one number")
	}
	return violations
}
