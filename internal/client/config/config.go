package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/validation"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

const (
	DriverSupabase = "supabase"
	DriverS3       = "s3"
)

// Config holds runtime settings for the docdesk CLI.
//
// Units: SignedURLTTL and RequestTimeout are time.Duration values.
type Config struct {
	APIURL         string        `json:"api_url" validate:"required,url"`
	StorageDriver  string        `json:"storage_driver" validate:"oneof=supabase s3"`
	StorageURL     string        `json:"storage_url" validate:"omitempty,url"`
	StorageKey     string        `json:"storage_key"`
	StorageSecret  string        `json:"storage_secret"`
	StorageRegion  string        `json:"storage_region"`
	StorageBucket  string        `json:"storage_bucket" validate:"required"`
	SignedURLTTL   time.Duration `json:"signed_url_ttl" validate:"gt=0"`
	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`
	DownloadDir    string        `json:"download_dir" validate:"required"`
	LogLevel       string        `json:"log_level" validate:"oneof=debug info warn warning error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:8000"
	c.StorageDriver = DriverSupabase
	c.StorageRegion = "us-east-1"
	c.StorageBucket = "files"
	c.SignedURLTTL = 3600 * time.Second
	c.RequestTimeout = 60 * time.Second
	c.DownloadDir = "downloads"
	c.LogLevel = "info"
}

// StorageEnabled reports whether enough credentials are present to browse
// the storage bucket.
func (c *Config) StorageEnabled() bool {
	switch c.StorageDriver {
	case DriverS3:
		return c.StorageKey != "" && c.StorageSecret != ""
	default:
		return c.StorageURL != "" && c.StorageKey != ""
	}
}

// Validate checks c with the shared validator.
func (c *Config) Validate(ctx context.Context, v *validation.Validator) error {
	return v.Validate(ctx, c)
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then the environment, then command-line flags. Later sources take
// precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	v, err := validation.New(logging.Discard())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(context.Background(), v); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
