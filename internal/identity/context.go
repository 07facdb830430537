// Package identity describes the authenticated principal.
//
// A UserContext is built either from a directory record after a successful login
// (FromUser) or from a verified claim set such as a parsed web token (FromClaims).
// Both produce the same implementation, so every capability is available regardless
// of where the principal came from.
package identity

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/rbac"
)

// AnonymousName is the user name of the unauthenticated principal.
const AnonymousName = "Anonymous"

// UserContext is the read-only view of a principal plus its alert queue.
type UserContext interface {
	UserID() uuid.UUID
	UserName() string
	// Description is the display name, falling back to the email address.
	Description() string
	Phone() string
	Email() string
	IsAuthenticated() bool
	// CurrentRoles returns a copy of the role names held by the principal.
	CurrentRoles() []string
	IsInRole(role string) bool
	CanPublish() bool
	CanModifyRights() bool
	CanDesign() bool
	// Alert queues a message for the principal.
	Alert(message string, priority Priority)
	// Alerts returns the queued messages in the order they were raised.
	Alerts() []Alert
}

// Claims is an externally supplied, already verified claim set.
type Claims struct {
	UserID      uuid.UUID
	UserName    string
	DisplayName string
	Email       string
	Phone       string
	Roles       []string
}

type principal struct {
	id            uuid.UUID
	userName      string
	description   string
	phone         string
	email         string
	authenticated bool
	roles         []string

	mu     sync.Mutex
	alerts []Alert
	now    func() time.Time
}

// FromUser builds the context of a user that passed authentication.
func FromUser(user *models.User, roles []string) UserContext {
	if user == nil {
		return Anonymous()
	}

	return &principal{
		id:            user.ID,
		userName:      fallback(user.UserName, user.Email),
		description:   fallback(user.DisplayName, user.Email),
		phone:         user.PhoneNumber,
		email:         user.Email,
		authenticated: true,
		roles:         slices.Clone(roles),
		now:           time.Now,
	}
}

// FromClaims builds a context from a verified claim set.
// The principal counts as authenticated when the claims name a user.
func FromClaims(c Claims) UserContext {
	name := fallback(c.UserName, c.Email)
	if name == "" {
		return Anonymous()
	}

	return &principal{
		id:            c.UserID,
		userName:      name,
		description:   fallback(c.DisplayName, c.Email),
		phone:         c.Phone,
		email:         c.Email,
		authenticated: true,
		roles:         slices.Clone(c.Roles),
		now:           time.Now,
	}
}

// Anonymous returns the unauthenticated principal. It holds no roles.
func Anonymous() UserContext {
	return &principal{
		id:          uuid.Nil,
		userName:    AnonymousName,
		description: AnonymousName,
		now:         time.Now,
	}
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}

	return alt
}

func (p *principal) UserID() uuid.UUID     { return p.id }
func (p *principal) UserName() string      { return p.userName }
func (p *principal) Description() string   { return p.description }
func (p *principal) Phone() string         { return p.phone }
func (p *principal) Email() string         { return p.email }
func (p *principal) IsAuthenticated() bool { return p.authenticated }

func (p *principal) CurrentRoles() []string {
	if !p.authenticated {
		return []string{}
	}

	return slices.Clone(p.roles)
}

func (p *principal) IsInRole(role string) bool {
	if !p.authenticated {
		return false
	}

	return slices.ContainsFunc(p.roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

func (p *principal) CanPublish() bool {
	return p.authenticated && rbac.CanPublish(p.roles)
}

func (p *principal) CanModifyRights() bool {
	return p.authenticated && rbac.CanModifyRights(p.roles)
}

func (p *principal) CanDesign() bool {
	return p.authenticated && rbac.CanDesign(p.roles)
}

type contextKey struct{ name string }

var userContextKey = contextKey{"user-context"} //nolint:gochecknoglobals

// NewContext returns a copy of ctx carrying uc.
func NewContext(ctx context.Context, uc UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// FromContext returns the principal stored in ctx, or the anonymous principal.
func FromContext(ctx context.Context) UserContext {
	if ctx != nil {
		if uc, ok := ctx.Value(userContextKey).(UserContext); ok && uc != nil {
			return uc
		}
	}

	return Anonymous()
}
