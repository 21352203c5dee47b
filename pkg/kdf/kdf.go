package kdf

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Minimums below which Validate rejects a parameter set.
const (
	MinIterations = 100000
	MinSaltLength = 16
)

// Params controls the cost and output shape of the derivation.
type Params struct {
	Iterations int // PBKDF2 round count
	SaltLength int // random salt size in bytes
	KeyLength  int // derived key size in bytes
}

// Default matches the parameters the credential store has always written:
// 100k rounds of PBKDF2-HMAC-SHA512 over a 16-byte salt.
var Default = Params{
	Iterations: MinIterations,
	SaltLength: MinSaltLength,
	KeyLength:  sha512.Size,
}

// Validate rejects parameter sets weaker than the package minimums.
func (p Params) Validate() error {
	if p.Iterations < MinIterations {
		return fmt.Errorf("%w: iterations %d < %d", ErrWeakParams, p.Iterations, MinIterations)
	}
	if p.SaltLength < MinSaltLength {
		return fmt.Errorf("%w: salt length %d < %d", ErrWeakParams, p.SaltLength, MinSaltLength)
	}
	if p.KeyLength <= 0 {
		return fmt.Errorf("%w: key length %d", ErrWeakParams, p.KeyLength)
	}
	return nil
}

// NewSalt returns a fresh salt from the system CSPRNG.
func (p Params) NewSalt() ([]byte, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("read random salt: %w", err)
	}
	return salt, nil
}

// Derive computes the salted key for a cleartext password.
func (p Params) Derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, p.Iterations, p.KeyLength, sha512.New)
}

// Verify reports whether password derives to expected under salt.
// The comparison is constant-time.
func (p Params) Verify(password string, salt, expected []byte) bool {
	derived := p.Derive(password, salt)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}
