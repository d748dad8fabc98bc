// Package crypto implements peppered password hashing on top of bcrypt.
package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password digests.
const BcryptCost = 10

// ErrEmptyInput is returned when a password or digest argument is empty.
var ErrEmptyInput = errors.New("password or hash is empty")

// Hasher produces and verifies password digests. Every digest mixes in the
// process-wide pepper, so digests are not portable across deployments with
// different pepper values.
type Hasher struct {
	pepper string
}

// NewHasher constructs a Hasher with the given pepper. The pepper is a
// deployment secret independent of bcrypt's per-digest salt.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Hash returns a bcrypt digest of the password combined with the pepper.
// The digest embeds its own salt and cost parameters.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyInput
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password+h.pepper), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches the stored digest. A well-formed
// digest that simply does not match yields (false, nil); only empty inputs
// or a malformed digest produce an error.
func (h *Hasher) Verify(password, digest string) (bool, error) {
	if password == "" || digest == "" {
		return false, ErrEmptyInput
	}
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password+h.pepper))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
