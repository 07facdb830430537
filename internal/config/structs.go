package config

import (
	"time"

	"github.com/N2Core/N2Identity/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode  bool       `mapstructure:"devMode"` // enable dev mode for development
	DB       DB         `mapstructure:"db"`
	Log      logger.Log `mapstructure:"log"`
	JWT      JWT        `mapstructure:"jwt"`
	Identity Identity   `mapstructure:"identity"`
	Audit    Audit      `mapstructure:"audit"`
}

// JWT holds the web token settings.
type JWT struct {
	Issuer   string `mapstructure:"issuer"   validate:"required"`
	Audience string `mapstructure:"audience" validate:"required"`
	// Secret is the HS256 signing key, at least 20 bytes.
	Secret string `mapstructure:"secret" validate:"min=20"`
	// DefaultValidity in minutes, used when a caller asks for validity <= 0.
	DefaultValidity int `mapstructure:"defaultValidity" validate:"gte=0"`
}

// Identity holds account settings.
type Identity struct {
	// ConfirmationTokenValidity is the lifetime of email confirmation tokens.
	ConfirmationTokenValidity time.Duration `mapstructure:"confirmationTokenValidity" validate:"gt=0"`
	// Hasher is the password hash algorithm: sha384 or argon2id.
	Hasher string `mapstructure:"hasher" validate:"oneof=sha384 argon2id"`
	// PhoneRegion is the default region for phone numbers without country code, empty requires +.
	PhoneRegion string `mapstructure:"phoneRegion" validate:"omitempty,len=2"`
}

// Audit holds change log settings.
type Audit struct {
	// Retention is the number of change log entries kept in memory.
	Retention int `mapstructure:"retention" validate:"gte=0"`
	// LogChanges also writes every change log entry to the logger.
	LogChanges bool `mapstructure:"logChanges"`
}
