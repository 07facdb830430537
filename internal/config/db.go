package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string `mapstructure:"engine" validate:"oneof=mysql postgres sqlite"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	// Path is the database file for the sqlite engine, ":memory:" for a throwaway database.
	Path string `mapstructure:"path"`
	// Extras are appended to the DSN (query string for mysql and sqlite, key=value pairs for postgres).
	Extras string `mapstructure:"extras"`
}
