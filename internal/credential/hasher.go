package credential

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"

	"github.com/N2Core/N2Identity/internal/db/models"
)

const (
	// AlgorithmSHA384 selects the legacy SHA-384 hasher.
	AlgorithmSHA384 = "sha384"
	// AlgorithmArgon2id selects the argon2id hasher.
	AlgorithmArgon2id = "argon2id"
)

// Hasher computes and verifies password hashes bound to a user's security stamp.
type Hasher interface {
	// Hash returns the stored form of password for the given normalized user name and stamp.
	Hash(normalizedUserName, securityStamp, password string) (string, error)
	// Verify recomputes the hash from the user's stored fields and compares it to PasswordHash.
	Verify(user *models.User, password string) bool
}

// New returns the hasher for the given algorithm name. An empty name selects SHA-384.
func New(algorithm string) (Hasher, error) {
	switch algorithm {
	case "", AlgorithmSHA384:
		return SHA384Hasher{}, nil
	case AlgorithmArgon2id:
		return NewArgon2Hasher(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, algorithm)
	}
}

// Digest returns base64(SHA-384(value)).
func Digest(value string) string {
	sum := sha512.Sum384([]byte(value))

	return base64.StdEncoding.EncodeToString(sum[:])
}

func material(normalizedUserName, securityStamp, password string) string {
	return normalizedUserName + ":" + password + ":" + securityStamp
}

// SHA384Hasher is the deterministic legacy hasher.
type SHA384Hasher struct{}

// Hash implements Hasher.
func (SHA384Hasher) Hash(normalizedUserName, securityStamp, password string) (string, error) {
	if securityStamp == "" {
		return "", ErrEmptyStamp
	}

	return Digest(material(normalizedUserName, securityStamp, password)), nil
}

// Verify implements Hasher. The comparison takes the same time for every mismatch position.
func (h SHA384Hasher) Verify(user *models.User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}

	computed, err := h.Hash(user.NormalizedUserName, user.SecurityStamp, password)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(user.PasswordHash)) == 1
}

// Argon2Hasher hashes the same material as SHA384Hasher with argon2id and a random salt.
type Argon2Hasher struct {
	params *argon2id.Params
}

// NewArgon2Hasher creates an argon2id hasher. A nil params uses argon2id.DefaultParams.
func NewArgon2Hasher(params *argon2id.Params) Argon2Hasher {
	if params == nil {
		params = argon2id.DefaultParams
	}

	return Argon2Hasher{params: params}
}

// Hash implements Hasher.
func (h Argon2Hasher) Hash(normalizedUserName, securityStamp, password string) (string, error) {
	if securityStamp == "" {
		return "", ErrEmptyStamp
	}

	hash, err := argon2id.CreateHash(material(normalizedUserName, securityStamp, password), h.params)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return hash, nil
}

// Verify implements Hasher.
func (h Argon2Hasher) Verify(user *models.User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(
		material(user.NormalizedUserName, user.SecurityStamp, password),
		user.PasswordHash,
	)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to verify password")
		return false
	}

	return match
}
