// Package config loads runtime configuration for the docdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv). A .env file in the working
//     directory is loaded first; variables already set are not replaced.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   storage driver: supabase or s3
//	-s string   storage endpoint URL
//	-k string   storage key (Supabase anon key or S3 access key)
//	-b string   storage bucket
//	-t int      request timeout (seconds)
//	-l string   log level
//	-o string   download directory
//
// Environment
//
//	DOCDESK_API_URL, API_URL
//	DOCDESK_STORAGE_DRIVER
//	DOCDESK_STORAGE_URL, SUPABASE_URL
//	DOCDESK_STORAGE_KEY, SUPABASE_ANON_KEY
//	DOCDESK_STORAGE_SECRET, DOCDESK_STORAGE_REGION, DOCDESK_STORAGE_BUCKET
//	DOCDESK_SIGNED_URL_TTL, DOCDESK_REQUEST_TIMEOUT (duration or seconds)
//	DOCDESK_DOWNLOAD_DIR, DOCDESK_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "60s"
// or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8000",
//	  "storage_url": "https://project.supabase.co",
//	  "storage_key": "anon-key",
//	  "request_timeout": "60s"
//	}
//
// Missing storage credentials are not an error: the CLI starts with the
// storage view disabled (see (*Config).StorageEnabled).
package config
