package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled"`
	UseConsoleWriter bool `mapstructure:"useConsoleWriter"`
}

// LogFile implements a file based logger, one rolling file per level group.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`

	ErrorLog        string `mapstructure:"error"`
	ErrorMaxSize    int    `mapstructure:"errorMaxSize"`
	ErrorMaxBackups int    `mapstructure:"errorMaxBackups"`
	ErrorMaxAge     int    `mapstructure:"errorMaxAge"`

	InfoLog        string `mapstructure:"info"`
	InfoMaxSize    int    `mapstructure:"infoMaxSize"`
	InfoMaxBackups int    `mapstructure:"infoMaxBackups"`
	InfoMaxAge     int    `mapstructure:"infoMaxAge"`

	TraceLog        string `mapstructure:"trace"`
	TraceMaxSize    int    `mapstructure:"traceMaxSize"`
	TraceMaxBackups int    `mapstructure:"traceMaxBackups"`
	TraceMaxAge     int    `mapstructure:"traceMaxAge"`

	WarnLog        string `mapstructure:"warn"`
	WarnMaxSize    int    `mapstructure:"warnMaxSize"`
	WarnMaxBackups int    `mapstructure:"warnMaxBackups"`
	WarnMaxAge     int    `mapstructure:"warnMaxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel     string `mapstructure:"logLevel"` // trace, debug, info, warn, error.
	LogEnv       string `mapstructure:"logEnv"`
	ReportCaller bool   `mapstructure:"reportCaller"`

	AppName     string `mapstructure:"appName"`
	ServiceName string `mapstructure:"serviceName"`

	// SQLSlowThreshold in milliseconds, queries above are logged as warnings. 0 disables.
	SQLSlowThreshold int `mapstructure:"sqlSlowThreshold"`

	// Console used mainly for docker and dev.
	Console Console `mapstructure:"console"`

	// Legacy non docker env file logging.
	File LogFile `mapstructure:"file"`
}
