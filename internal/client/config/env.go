package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFile is loaded into the process environment before the env stage.
// Variables already set win over the file.
var envFile = ".env"

// envKeys maps config keys to the variables read for them, in priority order.
var envKeys = map[string][]string{
	"api_url":         {"DOCDESK_API_URL", "API_URL"},
	"storage_driver":  {"DOCDESK_STORAGE_DRIVER"},
	"storage_url":     {"DOCDESK_STORAGE_URL", "SUPABASE_URL"},
	"storage_key":     {"DOCDESK_STORAGE_KEY", "SUPABASE_ANON_KEY"},
	"storage_secret":  {"DOCDESK_STORAGE_SECRET"},
	"storage_region":  {"DOCDESK_STORAGE_REGION"},
	"storage_bucket":  {"DOCDESK_STORAGE_BUCKET"},
	"signed_url_ttl":  {"DOCDESK_SIGNED_URL_TTL"},
	"request_timeout": {"DOCDESK_REQUEST_TIMEOUT"},
	"download_dir":    {"DOCDESK_DOWNLOAD_DIR"},
	"log_level":       {"DOCDESK_LOG_LEVEL"},
}

func parseEnv(cfg *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	for key, names := range envKeys {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return err
		}
	}

	str := func(key string, dst *string) {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			*dst = s
		}
	}
	str("api_url", &cfg.APIURL)
	str("storage_driver", &cfg.StorageDriver)
	str("storage_url", &cfg.StorageURL)
	str("storage_key", &cfg.StorageKey)
	str("storage_secret", &cfg.StorageSecret)
	str("storage_region", &cfg.StorageRegion)
	str("storage_bucket", &cfg.StorageBucket)
	str("download_dir", &cfg.DownloadDir)
	str("log_level", &cfg.LogLevel)

	for key, dst := range map[string]*time.Duration{
		"signed_url_ttl":  &cfg.SignedURLTTL,
		"request_timeout": &cfg.RequestTimeout,
	} {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			continue
		}
		d, err := parseDuration(s)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	return nil
}

// parseDuration accepts Go duration strings and bare integers, which are
// taken as seconds.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
