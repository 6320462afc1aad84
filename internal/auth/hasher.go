// Package auth hashes and verifies user passwords.
//
// New hashes use Argon2id by default. Verification also accepts the unsalted
// hex SHA-512 digests written by earlier releases, so existing users.json
// files keep working.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm names a password hashing scheme.
type Algorithm string

const (
	AlgorithmArgon2id Algorithm = "argon2id"
	AlgorithmSHA512   Algorithm = "sha512"

	// Guards the hashing cost against absurd inputs.
	maxPasswordLength = 1024
)

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
	// ErrPasswordTooLong is returned when a password exceeds the maximum length.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")
)

// Hasher produces hashes with one algorithm and verifies hashes of any
// supported algorithm.
type Hasher struct {
	algorithm Algorithm
}

// NewHasher returns a hasher for the named algorithm. An empty name selects
// Argon2id.
func NewHasher(algorithm string) (*Hasher, error) {
	switch alg := Algorithm(strings.ToLower(strings.TrimSpace(algorithm))); alg {
	case "":
		return &Hasher{algorithm: AlgorithmArgon2id}, nil
	case AlgorithmArgon2id, AlgorithmSHA512:
		return &Hasher{algorithm: alg}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
}

// Algorithm returns the algorithm used for new hashes.
func (h *Hasher) Algorithm() Algorithm {
	return h.algorithm
}

// Hash returns the encoded hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	if h.algorithm == AlgorithmSHA512 {
		return hashSHA512(password), nil
	}
	return hashArgon2id(password)
}

// Verify reports whether password matches encoded. Unknown formats never match.
func (h *Hasher) Verify(encoded, password string) bool {
	if len(password) > maxPasswordLength {
		return false
	}

	switch {
	case strings.HasPrefix(encoded, argon2Prefix):
		return verifyArgon2id(encoded, password)
	case isSHA512Hex(encoded):
		return verifySHA512(encoded, password)
	default:
		return false
	}
}

// NeedsRehash reports whether encoded was produced by a different algorithm
// than the one this hasher writes.
func (h *Hasher) NeedsRehash(encoded string) bool {
	switch h.algorithm {
	case AlgorithmSHA512:
		return !isSHA512Hex(encoded)
	default:
		return !strings.HasPrefix(encoded, argon2Prefix)
	}
}
