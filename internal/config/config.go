// Package config handles input from etc/main.toml, the environment and a JSON override.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. N2IDENTITY_JWT_SECRET.
	EnvPrefix = "N2IDENTITY"

	// EnvConfigJSON holds a JSON document merged over the file config.
	EnvConfigJSON = "N2IDENTITY_CONFIG_JSON"

	configFile = "main.toml"
	masked     = "********"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("devMode", false)

	v.SetDefault("db.engine", EngineSQLite)
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 0)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.path", "n2identity.db")
	v.SetDefault("db.extras", "")

	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "n2identity")
	v.SetDefault("log.serviceName", "n2identity")
	v.SetDefault("log.console.enabled", true)

	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.audience", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.defaultValidity", 0)

	v.SetDefault("identity.confirmationTokenValidity", "120h")
	v.SetDefault("identity.hasher", "sha384")
	v.SetDefault("identity.phoneRegion", "")

	v.SetDefault("audit.retention", 1000) //nolint:mnd
	v.SetDefault("audit.logChanges", false)
}

// ReadConfig reads main.toml from the directory path ("./etc/" if empty), applies
// N2IDENTITY_* environment overrides and the N2IDENTITY_CONFIG_JSON document, and validates the result.
func ReadConfig(path string) (Config, error) {
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(filepath.Join(path, configFile))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if doc := os.Getenv(EnvConfigJSON); doc != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(doc)); err != nil {
			return Config{}, errors.Wrap(err, "failed to merge "+EnvConfigJSON)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return c, validate(&c)
}

// DumpConfigJSON renders c as indented JSON with secrets masked.
func DumpConfigJSON(c *Config) (string, error) {
	out := *c
	if out.JWT.Secret != "" {
		out.JWT.Secret = masked
	}

	if out.DB.Password != "" {
		out.DB.Password = masked
	}

	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(out); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the struct tags and the engine specific settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	switch c.DB.Engine {
	case EngineMySQL, EnginePostgres:
		if c.DB.Name == "" {
			return errors.Wrap(ErrEmptyDBName, invalidErrMessage)
		}
	case EngineSQLite:
		if c.DB.Path == "" {
			return errors.Wrap(ErrEmptyDBPath, invalidErrMessage)
		}
	}

	return nil
}
