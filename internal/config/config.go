// Package config loads server settings from the environment (and an optional
// .env file).
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMinio = "minio"
	BackendS3    = "s3"
)

var (
	ErrMissingBucket  = errors.New("S3_BUCKET is required")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrParsingConfig  = errors.New("failed to parse configuration")
)

// Config is the full server configuration.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	CSRFEnabled bool   `env:"CSRF_ENABLED" envDefault:"true"`

	Log     Log
	Storage Storage
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or console
}

// Storage describes the single bucket the server fronts.
type Storage struct {
	Backend         string `env:"STORAGE_BACKEND" envDefault:"minio"`
	Endpoint        string `env:"S3_ENDPOINT" envDefault:"play.min.io:9000"`
	Region          string `env:"S3_REGION" envDefault:"auto"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"S3_SESSION_TOKEN"`
	Bucket          string `env:"S3_BUCKET"`
	Insecure        bool   `env:"S3_INSECURE"`
	PathStyle       bool   `env:"S3_PATH_STYLE" envDefault:"true"`
}

// Load reads the given .env files (default ".env", missing files are fine)
// and parses the environment into a Config.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// godotenv never overrides variables that are already set.
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that env tags cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMinio, BackendS3:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}
	if c.Storage.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}
