// Package authn implements the login pipeline.
//
// Authenticate runs lookup, password verification, lockout check and role fetch in
// that order and stops at the first failure. Every rejection returns a nil
// UserContext and a nil error, the cause is only written to the log (field "reason")
// and counted in authn_attempts_total.
package authn

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/directory"
	"github.com/N2Core/N2Identity/internal/identity"
)

// Rejection reasons as written to the log.
const (
	ReasonUserNotFound = "UserNotFound"
	ReasonLoginFailed  = "LoginFailed"
	ReasonLockedOut    = "LockedOut"
)

// Values of the result label of authn_attempts_total.
const (
	resultSuccess      = "success"
	resultInvalid      = "invalid"
	resultUserNotFound = "user_not_found"
	resultLoginFailed  = "login_failed"
	resultLockedOut    = "locked_out"
)

// Directory is the part of directory.Manager the pipeline needs.
type Directory interface {
	FindByName(ctx context.Context, userName string) (*models.User, error)
	Validate(ctx context.Context, user *models.User, password string) (directory.Result, error)
	CanSignIn(ctx context.Context, userID uuid.UUID) (bool, error)
	GetRoles(ctx context.Context, user *models.User) ([]string, error)
}

// Login is a sign in request.
type Login struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"` //nolint:gosec
}

// Authenticator turns login requests into user contexts.
type Authenticator struct {
	dir      Directory
	logger   zerolog.Logger
	validate *validator.Validate
	attempts *prometheus.CounterVec
	reg      prometheus.Registerer
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithLogger sets the logger. Defaults to the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = l
	}
}

// WithRegisterer registers the attempt counter with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(a *Authenticator) {
		a.reg = reg
	}
}

// NewAuthenticator creates an Authenticator over dir.
func NewAuthenticator(dir Directory, opts ...Option) (*Authenticator, error) {
	if dir == nil {
		return nil, ErrNoDirectory
	}

	a := &Authenticator{
		dir:      dir,
		logger:   log.Logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authn_attempts_total",
				Help: "Number of authentication attempts, differentiated by result.",
			},
			[]string{"result"},
		),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.reg != nil {
		if err := a.reg.Register(a.attempts); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}

			a.attempts = are.ExistingCollector.(*prometheus.CounterVec) //nolint:forcetypeassert
		}
	}

	return a, nil
}

// Authenticate returns the context of the user identified by login, or nil if the
// login is rejected. An error is returned for an incomplete request and for
// infrastructure faults.
func (a *Authenticator) Authenticate(ctx context.Context, login Login) (identity.UserContext, error) {
	if err := a.validate.Struct(login); err != nil {
		a.attempts.WithLabelValues(resultInvalid).Inc()
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	user, err := a.dir.FindByName(ctx, login.UserName)
	if errors.Is(err, directory.ErrNotFound) {
		return a.reject(login.UserName, ReasonUserNotFound, resultUserNotFound), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	res, err := a.dir.Validate(ctx, user, login.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}

	if !res.IsSuccess() {
		return a.reject(login.UserName, ReasonLoginFailed, resultLoginFailed), nil
	}

	can, err := a.dir.CanSignIn(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check lockout: %w", err)
	}

	if !can {
		return a.reject(login.UserName, ReasonLockedOut, resultLockedOut), nil
	}

	roles, err := a.dir.GetRoles(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}

	a.attempts.WithLabelValues(resultSuccess).Inc()
	a.logger.Info().Str("username", user.UserName).Strs("roles", roles).Msg("user signed in")

	return identity.FromUser(user, roles), nil
}

func (a *Authenticator) reject(userName, reason, result string) identity.UserContext {
	a.attempts.WithLabelValues(result).Inc()
	a.logger.Warn().Str("username", userName).Str("reason", reason).Msg("authentication rejected")

	return nil
}
