// Package db opens the gorm connection for the configured engine and migrates the identity schema.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/N2Core/N2Identity/internal/config"
	"github.com/N2Core/N2Identity/internal/db/dsn"
	"github.com/N2Core/N2Identity/internal/db/models"
)

// ErrUnknownEngine is returned for an engine without a gorm dialector.
var ErrUnknownEngine = errors.New("unknown database engine")

func dialector(cfg config.DB) (gorm.Dialector, error) {
	switch cfg.Engine {
	case config.EngineMySQL:
		return gormmysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.Engine)
	}
}

// Open connects to the database. A nil log keeps gorm's default logger.
func Open(cfg config.DB, log gormlogger.Interface) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{}
	if log != nil {
		gcfg.Logger = log
	}

	db, err := gorm.Open(d, gcfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.Engine)
	}

	// every connection to :memory: gets its own database
	if cfg.Engine == config.EngineSQLite && cfg.Path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sql.DB")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the identity tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
