// Package bootstrap wires the configured database, directory, authenticator and token issuer together.
package bootstrap

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/N2Core/N2Identity/internal/audit"
	"github.com/N2Core/N2Identity/internal/authn"
	"github.com/N2Core/N2Identity/internal/config"
	"github.com/N2Core/N2Identity/internal/credential"
	"github.com/N2Core/N2Identity/internal/db"
	"github.com/N2Core/N2Identity/internal/directory"
	"github.com/N2Core/N2Identity/internal/directory/gormstore"
	"github.com/N2Core/N2Identity/internal/logger/gormlog"
	"github.com/N2Core/N2Identity/internal/token"
	"github.com/N2Core/N2Identity/internal/webtoken"
)

// ErrConfigNil is returned when New is called without a configuration.
var ErrConfigNil = errors.New("config is nil")

var openDB = db.Open //nolint:gochecknoglobals

// Services represents the wired application.
type Services struct {
	DB            *gorm.DB
	Manager       *directory.Manager
	Authenticator *authn.Authenticator
	Issuer        *webtoken.Issuer
	ChangeLog     *audit.Ring
}

type options struct {
	registerer prometheus.Registerer
	migrate    bool
}

// Option configures New.
type Option func(*options)

// WithRegisterer sets the registry for the authentication metrics.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithMigration migrates the schema right after connecting.
func WithMigration() Option {
	return func(o *options) {
		o.migrate = true
	}
}

// New creates the services for cfg.
func New(cfg *config.Config, opts ...Option) (*Services, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}

	slow := time.Duration(cfg.Log.SQLSlowThreshold) * time.Millisecond

	gdb, err := openDB(cfg.DB, gormlog.New(slow))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	s, err := build(cfg, &o, gdb)
	if err != nil {
		closeDB(gdb)
		return nil, err
	}

	return s, nil
}

// closeDB releases a connection that did not make it into Services.
func closeDB(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return
	}

	if err = sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}

func build(cfg *config.Config, o *options, gdb *gorm.DB) (*Services, error) {
	if o.migrate {
		if err := db.Migrate(gdb); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	hasher, err := credential.New(cfg.Identity.Hasher)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create password hasher")
	}

	ring := audit.NewRing(cfg.Audit.Retention)

	var changes audit.Sink = ring
	if cfg.Audit.LogChanges {
		changes = audit.Multi(ring, audit.LogSink{Logger: log.Logger})
	}

	manager := directory.NewManager(
		gormstore.Factory(gdb),
		directory.WithHasher(hasher),
		directory.WithTokenCodec(token.NewCodec(token.WithValidity(cfg.Identity.ConfirmationTokenValidity))),
		directory.WithChangeLog(changes),
		directory.WithLogger(log.Logger),
		directory.WithPhoneRegion(cfg.Identity.PhoneRegion),
	)

	authenticator, err := authn.NewAuthenticator(manager,
		authn.WithLogger(log.Logger),
		authn.WithRegisterer(o.registerer),
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	issuer, err := webtoken.NewIssuer(cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Secret,
		webtoken.WithDefaultValidity(cfg.JWT.DefaultValidity))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &Services{
		DB:            gdb,
		Manager:       manager,
		Authenticator: authenticator,
		Issuer:        issuer,
		ChangeLog:     ring,
	}, nil
}

// Close releases the database connection.
func (s *Services) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}

	return sqlDB.Close() //nolint:wrapcheck
}
