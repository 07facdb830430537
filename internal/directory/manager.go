package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/N2Core/N2Identity/internal/audit"
	"github.com/N2Core/N2Identity/internal/credential"
	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/identity"
	"github.com/N2Core/N2Identity/internal/token"
)

const (
	tableUsers     = "users"
	tableRoles     = "roles"
	tableUserRoles = "user_roles"

	msgNotFound = "Not found"
)

// Manager orchestrates user and role operations against a Store.
type Manager struct {
	factory StoreFactory

	// mu guards the single assignment of store.
	mu    sync.Mutex
	store Store

	hasher   credential.Hasher
	codec    *token.Codec
	sink     audit.Sink
	logger   zerolog.Logger
	validate *validator.Validate
	region   string
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithHasher sets the password hasher. Defaults to credential.SHA384Hasher.
func WithHasher(h credential.Hasher) Option {
	return func(m *Manager) {
		if h != nil {
			m.hasher = h
		}
	}
}

// WithTokenCodec sets the email confirmation token codec.
func WithTokenCodec(c *token.Codec) Option {
	return func(m *Manager) {
		if c != nil {
			m.codec = c
		}
	}
}

// WithChangeLog sets the sink receiving an entry for every committed change.
func WithChangeLog(s audit.Sink) Option {
	return func(m *Manager) {
		m.sink = audit.Normalize(s)
	}
}

// WithLogger sets the logger. Defaults to the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithClock replaces time.Now for lockout checks and change log timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithPhoneRegion sets the region (ISO 3166-1 alpha-2) used for phone numbers
// without a country code. Without it numbers must start with +.
func WithPhoneRegion(region string) Option {
	return func(m *Manager) {
		m.region = region
	}
}

// NewManager creates a Manager that opens its Store through factory on first use.
func NewManager(factory StoreFactory, opts ...Option) *Manager {
	m := &Manager{
		factory:  factory,
		hasher:   credential.SHA384Hasher{},
		sink:     audit.Nop(),
		logger:   log.Logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.codec == nil {
		m.codec = token.NewCodec(token.WithClock(m.now))
	}

	return m
}

// acquire returns the Store, opening it exactly once.
// A failed factory call leaves the Manager unbound so a later call can retry.
func (m *Manager) acquire(ctx context.Context) (Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		return m.store, nil
	}

	if m.factory == nil {
		return nil, ErrNoStoreFactory
	}

	s, err := m.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	m.store = s

	return s, nil
}

// commit saves staged changes. A failed save on a cancelled context is returned as the context error.
func (m *Manager) commit(ctx context.Context, uow UnitOfWork) (Result, error) {
	if err := ctx.Err(); err != nil {
		uow.Discard()
		return Result{}, err //nolint:wrapcheck
	}

	code, msg := uow.Save(ctx)
	if code >= int(CodeInternal) {
		if err := ctx.Err(); err != nil {
			return Result{}, err //nolint:wrapcheck
		}

		m.logger.Error().Int("code", code).Str("message", msg).Msg("failed to save directory changes")
	}

	return Result{Code: Code(code), Message: msg}, nil
}

// record appends a change log entry attributed to the principal in ctx.
func (m *Manager) record(ctx context.Context, table, reference, message string) {
	actor := identity.FromContext(ctx)

	entry := audit.Entry{
		ID:            uuid.New(),
		Table:         table,
		ReferenceID:   reference,
		Message:       message,
		CreatedBy:     actor.UserID(),
		CreatedByName: actor.UserName(),
		Created:       m.now(),
	}

	if err := m.sink.Record(ctx, entry); err != nil {
		m.logger.Warn().Err(err).Str("table", table).Msg("failed to record change")
	}
}

// lookup maps ErrNotFound to a nil user.
func lookup(user *models.User, err error) (*models.User, error) {
	if isNotFound(err) {
		return nil, nil //nolint:nilnil
	}

	return user, err
}

// FindByID returns the user with id or ErrNotFound.
func (m *Manager) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return s.UserByID(ctx, id) //nolint:wrapcheck
}

// FindByName returns the user with the given user name (any case) or ErrNotFound.
func (m *Manager) FindByName(ctx context.Context, userName string) (*models.User, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return s.UserByNormalizedName(ctx, Normalize(userName)) //nolint:wrapcheck
}

// FindByEmail returns the user with the given email (any case) or ErrNotFound.
func (m *Manager) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return s.UserByNormalizedEmail(ctx, Normalize(email)) //nolint:wrapcheck
}

// ListUsers returns all users ordered by user name.
func (m *Manager) ListUsers(ctx context.Context) ([]models.User, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return s.Users(ctx) //nolint:wrapcheck
}
