package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SecretKey    string
	TokenTTL     time.Duration
	LogLevel     slog.Level
	Location     *time.Location
	SeedFile     string
}

// ParseFlags reads flags, falling back to environment variables (PORT,
// DATABASE_URL, SECRET_KEY, ...) and an optional --config file. A .env file
// in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	var (
		cfg      Config
		logLevel string
		timezone string
	)

	fs := flag.NewFlagSet("acc-model-app", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "port", 8000, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "database-url", "", "Database URL or SQLite file path")
	fs.StringVar(&cfg.DatabaseType, "database-type", DatabaseSQLite, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SecretKey, "secret-key", "", "JWT signing secret (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 300*time.Minute, "Access token lifetime")

	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&timezone, "timezone", "UTC", "Location used to resolve calendar dates")
	fs.StringVar(&cfg.SeedFile, "seed-file", "", "YAML file with bootstrap data (optional)")
	fs.String("config", "", "Config file (optional)")

	err := ff.Parse(fs, args,
		ff.WithEnvVarNoPrefix(),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use --database-url or DATABASE_URL env)")
	}

	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secret - MUST be provided
	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY required")
	}

	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("token TTL must be positive")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", logLevel)
	}

	cfg.Location, err = time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	return cfg, nil
}

// loadDotEnv loads path into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
