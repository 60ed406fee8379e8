// Package config provides centralized configuration management for the service.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sheets   SheetsConfig
	Import   ImportConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// SheetsConfig holds Google Sheets source settings.
type SheetsConfig struct {
	// CredentialsPath is the path to the service account JSON file (required)
	CredentialsPath string `env:"GOOGLE_SHEETS_CREDENTIALS_PATH" required:"true"`

	// SpreadsheetID is the id of the source spreadsheet (required)
	SpreadsheetID string `env:"GOOGLE_SHEETS_SPREADSHEET_ID" required:"true"`

	// StudentsRange is the A1 range of the students sheet
	StudentsRange string `env:"SHEETS_STUDENTS_RANGE" default:"Telegram аккаунты студентов!A2:C"`

	// MentorsRange is the A1 range of the mentors sheet
	MentorsRange string `env:"SHEETS_MENTORS_RANGE" default:"Менторы!A5:H29"`

	// ProjectsRange is the A1 range of the projects sheet
	ProjectsRange string `env:"SHEETS_PROJECTS_RANGE" default:"Projects!A2:J"`

	// ReviewsRange is the A1 range of the reviews sheet
	ReviewsRange string `env:"SHEETS_REVIEWS_RANGE" default:"Reviews!A2:I"`

	// SponsoredReviewsRange is the A1 range of the sponsored reviews sheet
	SponsoredReviewsRange string `env:"SHEETS_SPONSORED_REVIEWS_RANGE" default:"Спонсируемые ревью!A2:G"`

	// FetchTimeout bounds each individual range fetch (default: 30s)
	FetchTimeout time.Duration `env:"SHEETS_FETCH_TIMEOUT" default:"30s"`
}

// ImportConfig holds import run settings.
type ImportConfig struct {
	// BackupDir is where run artifacts are written; empty disables backups (default: backups)
	BackupDir string `env:"IMPORT_BACKUP_DIR" default:"backups"`

	// FinancialImport controls whether sponsored reviews are imported (default: true)
	FinancialImport bool `env:"IMPORT_FINANCIAL" default:"true"`

	// RunTimeout is the maximum duration of one import run (default: 10m)
	RunTimeout time.Duration `env:"IMPORT_RUN_TIMEOUT" default:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
