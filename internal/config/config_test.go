package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc")
}

func validConfig() Config {
	return Config{
		DB: DB{Engine: EngineSQLite, Path: ":memory:"},
		JWT: JWT{
			Issuer:   "n2identity",
			Audience: "n2-clients",
			Secret:   strings.Repeat("s", 20),
		},
		Identity: Identity{ConfirmationTokenValidity: time.Hour, Hasher: "sha384"},
	}
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, "n2identity.db", cfg.DB.Path)
	assert.Equal(t, "n2identity", cfg.JWT.Issuer)
	assert.Equal(t, "n2-clients", cfg.JWT.Audience)
	assert.Equal(t, 60, cfg.JWT.DefaultValidity)
	assert.Equal(t, 120*time.Hour, cfg.Identity.ConfirmationTokenValidity)
	assert.Equal(t, "sha384", cfg.Identity.Hasher)
	assert.Equal(t, 1000, cfg.Audit.Retention)
	assert.True(t, cfg.Audit.LogChanges)
	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.True(t, cfg.Log.Console.Enabled)
	assert.Equal(t, "info.log", cfg.Log.File.InfoLog)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
}

func TestReadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "[jwt]\nissuer = \"i\"\naudience = \"a\"\nsecret = \"" + strings.Repeat("k", 24) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, 120*time.Hour, cfg.Identity.ConfirmationTokenValidity)
	assert.Equal(t, "sha384", cfg.Identity.Hasher)
	assert.Equal(t, 1000, cfg.Audit.Retention)
}

func TestReadConfigWithEnvOverride(t *testing.T) {
	secret := strings.Repeat("e", 32)
	t.Setenv("N2IDENTITY_JWT_SECRET", secret)
	t.Setenv("N2IDENTITY_IDENTITY_HASHER", "argon2id")

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, secret, cfg.JWT.Secret)
	assert.Equal(t, "argon2id", cfg.Identity.Hasher)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"jwt":{"issuer":"override"},"audit":{"retention":5}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "override", cfg.JWT.Issuer)
	assert.Equal(t, "n2-clients", cfg.JWT.Audience)
	assert.Equal(t, 5, cfg.Audit.Retention)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.JWT.Secret = "short" }},
		{name: "missing issuer", mutate: func(c *Config) { c.JWT.Issuer = "" }},
		{name: "unknown engine", mutate: func(c *Config) { c.DB.Engine = "oracle" }},
		{name: "unknown hasher", mutate: func(c *Config) { c.Identity.Hasher = "md5" }},
		{name: "bad phone region", mutate: func(c *Config) { c.Identity.PhoneRegion = "USA" }},
		{name: "zero token validity", mutate: func(c *Config) { c.Identity.ConfirmationTokenValidity = 0 }},
		{
			name:    "mysql without name",
			mutate:  func(c *Config) { c.DB.Engine = EngineMySQL },
			wantErr: ErrEmptyDBName,
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.DB.Path = "" },
			wantErr: ErrEmptyDBPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)

			err := validate(&c)

			switch {
			case tt.name == "valid config":
				assert.NoError(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestDumpConfigJSON(t *testing.T) {
	c := validConfig()
	c.DB.Password = "db-password"

	out, err := DumpConfigJSON(&c)
	require.NoError(t, err)

	assert.Contains(t, out, "n2identity")
	assert.Contains(t, out, masked)
	assert.NotContains(t, out, c.JWT.Secret)
	assert.NotContains(t, out, "db-password")
	assert.Equal(t, strings.Repeat("s", 20), c.JWT.Secret, "dumping must not modify the config")
}
