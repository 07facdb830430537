// Package token mints and verifies stateless, expiring tokens bound to a user's security stamp.
//
// A token is two base64url segments joined by a dot:
//
//	base64url(normalizedEmail ":" expiry) "." base64url(SHA-384(normalizedEmail ":" expiry ":" securityStamp))
//
// expiry is an absolute instant in Unix nanoseconds. Nothing is stored server side, rotating the
// security stamp revokes every outstanding token of the user.
package token

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/N2Core/N2Identity/internal/db/models"
)

// DefaultValidity is the lifetime used when no validity is configured.
const DefaultValidity = 5 * 24 * time.Hour

// ErrUnboundUser is returned when minting for a user without email or security stamp.
var ErrUnboundUser = errors.New("user has no normalized email or security stamp")

var encoding = base64.RawURLEncoding

// Status is the outcome of a verification.
type Status int

const (
	// Ok means the token is authentic and not expired.
	Ok Status = iota
	// Invalid means the token is malformed, forged or bound to a different stamp or email.
	Invalid
	// Expired means the token is authentic but its expiry has passed.
	Expired
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Ok:
		return "ok"
	case Expired:
		return "expired"
	default:
		return "invalid"
	}
}

// Codec mints and verifies tokens.
type Codec struct {
	validity time.Duration
	now      func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithValidity sets the default lifetime of minted tokens.
func WithValidity(validity time.Duration) Option {
	return func(c *Codec) {
		if validity > 0 {
			c.validity = validity
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec creates a codec with a five day default validity.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		validity: DefaultValidity,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Validity returns the default lifetime of minted tokens.
func (c *Codec) Validity() time.Duration {
	return c.validity
}

// Mint returns a token for user expiring validity from now. A validity <= 0 uses the codec default.
func (c *Codec) Mint(user *models.User, validity time.Duration) (string, error) {
	if user == nil || user.NormalizedEmail == "" || user.SecurityStamp == "" {
		return "", ErrUnboundUser
	}

	if validity <= 0 {
		validity = c.validity
	}

	expiry := strconv.FormatInt(c.now().Add(validity).UnixNano(), 10)
	payload := user.NormalizedEmail + ":" + expiry

	return encoding.EncodeToString([]byte(payload)) + "." +
		encoding.EncodeToString(signature(user.NormalizedEmail, expiry, user.SecurityStamp)), nil
}

// Verify checks token against the user's current normalized email and security stamp.
func (c *Codec) Verify(user *models.User, token string) Status {
	if user == nil || user.SecurityStamp == "" {
		return Invalid
	}

	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return Invalid
	}

	payload, err := encoding.DecodeString(parts[0])
	if err != nil {
		return Invalid
	}

	fields := strings.Split(string(payload), ":")
	if len(fields) != 2 {
		return Invalid
	}

	email, expiry := fields[0], fields[1]

	ticks, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return Invalid
	}

	given, err := encoding.DecodeString(parts[1])
	if err != nil {
		return Invalid
	}

	if subtle.ConstantTimeCompare(given, signature(email, expiry, user.SecurityStamp)) != 1 {
		return Invalid
	}

	if email != user.NormalizedEmail {
		return Invalid
	}

	if c.now().After(time.Unix(0, ticks)) {
		return Expired
	}

	return Ok
}

func signature(email, expiry, stamp string) []byte {
	sum := sha512.Sum384([]byte(email + ":" + expiry + ":" + stamp))

	return sum[:]
}
