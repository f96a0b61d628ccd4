package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-d string   storage driver (supabase or s3)
//	-s string   storage endpoint URL
//	-k string   storage key
//	-b string   storage bucket
//	-t int      request timeout in seconds
//	-l string   log level
//	-o string   download directory
//
// args are filtered with flagx.FilterArgs so flags owned by other
// components do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-k", "-b", "-t", "-l", "-o"})

	fs := flag.NewFlagSet("docdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver (supabase or s3)")
	fs.StringVar(&cfg.StorageURL, "s", cfg.StorageURL, "storage endpoint URL")
	fs.StringVar(&cfg.StorageKey, "k", cfg.StorageKey, "storage key")
	fs.StringVar(&cfg.StorageBucket, "b", cfg.StorageBucket, "storage bucket")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
