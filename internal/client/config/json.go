package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docdesk/internal/flagx"
	"github.com/dmitrijs2005/docdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// go through timex.Duration so they may be strings like "60s" or integer
// nanoseconds.
type JsonConfig struct {
	APIURL         string         `json:"api_url"`
	StorageDriver  string         `json:"storage_driver"`
	StorageURL     string         `json:"storage_url"`
	StorageKey     string         `json:"storage_key"`
	StorageSecret  string         `json:"storage_secret"`
	StorageRegion  string         `json:"storage_region"`
	StorageBucket  string         `json:"storage_bucket"`
	SignedURLTTL   timex.Duration `json:"signed_url_ttl"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DownloadDir    string         `json:"download_dir"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c or -config. Keys missing
// from the file keep their earlier value.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.StorageURL, jc.StorageURL)
	setString(&cfg.StorageKey, jc.StorageKey)
	setString(&cfg.StorageSecret, jc.StorageSecret)
	setString(&cfg.StorageRegion, jc.StorageRegion)
	setString(&cfg.StorageBucket, jc.StorageBucket)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.SignedURLTTL.Duration > 0 {
		cfg.SignedURLTTL = jc.SignedURLTTL.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
