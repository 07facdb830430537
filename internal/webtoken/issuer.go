// Package webtoken issues and parses HS256 signed bearer tokens.
//
// A token carries the user name as subject and one entry per role in the "roles"
// claim. Validity is given in minutes and clamped to [MinValidityMinutes, MaxValidityMinutes].
package webtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/N2Core/N2Identity/internal/identity"
)

const (
	// MinValidityMinutes is the shortest token lifetime.
	MinValidityMinutes = 5
	// MaxValidityMinutes is the longest token lifetime (24h).
	MaxValidityMinutes = 1440
	// MinSecretLength is the minimum size of the signing secret in bytes.
	MinSecretLength = 20
)

// Claims is the token payload.
type Claims struct {
	jwt.RegisteredClaims

	UserID string   `json:"uid,omitempty"`
	Name   string   `json:"name,omitempty"`
	Email  string   `json:"email,omitempty"`
	Phone  string   `json:"phone,omitempty"`
	Roles  []string `json:"roles"`
}

// Issuer signs and verifies tokens for one issuer and audience.
type Issuer struct {
	issuer          string
	audience        string
	key             []byte
	defaultValidity int
	now             func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithDefaultValidity sets the lifetime in minutes used when Issue is called with validity <= 0.
func WithDefaultValidity(minutes int) Option {
	return func(i *Issuer) {
		i.defaultValidity = minutes
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates an Issuer. secret must be at least MinSecretLength bytes.
func NewIssuer(issuer, audience, secret string, opts ...Option) (*Issuer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}

	i := &Issuer{
		issuer:   issuer,
		audience: audience,
		key:      []byte(secret),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

// ClampValidity applies the validity policy: minutes <= 0 becomes fallback (or the build
// default when fallback <= 0), the result is bounded by MinValidityMinutes and MaxValidityMinutes.
func ClampValidity(minutes, fallback int) int {
	if minutes <= 0 {
		minutes = fallback
		if minutes <= 0 {
			minutes = buildDefaultValidityMinutes
		}
	}

	return max(MinValidityMinutes, min(minutes, MaxValidityMinutes))
}

// Issue signs a token for uc valid for validityMinutes (clamped).
func (i *Issuer) Issue(uc identity.UserContext, validityMinutes int) (string, error) {
	if uc == nil || !uc.IsAuthenticated() {
		return "", ErrNotAuthenticated
	}

	now := i.now()
	validity := time.Duration(ClampValidity(validityMinutes, i.defaultValidity)) * time.Minute

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   uc.UserName(),
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Name:  uc.Description(),
		Email: uc.Email(),
		Phone: uc.Phone(),
		Roles: uc.CurrentRoles(),
	}

	if uc.UserID() != uuid.Nil {
		claims.UserID = uc.UserID().String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies signature, algorithm, issuer, audience and expiry and returns the claims.
func (i *Issuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) {
			return i.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ContextFromToken parses token and builds the user context from its claims.
func (i *Issuer) ContextFromToken(token string) (identity.UserContext, error) {
	claims, err := i.Parse(token)
	if err != nil {
		return nil, err
	}

	return ContextFromClaims(claims), nil
}

// ContextFromClaims builds the user context from verified claims.
func ContextFromClaims(c *Claims) identity.UserContext {
	if c == nil {
		return identity.Anonymous()
	}

	id, err := uuid.Parse(c.UserID)
	if err != nil {
		id = uuid.Nil
	}

	return identity.FromClaims(identity.Claims{
		UserID:      id,
		UserName:    c.Subject,
		DisplayName: c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Roles:       c.Roles,
	})
}
