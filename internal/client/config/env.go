package config

import (
	"os"
	"strconv"
)

// Environment variables recognized by the client.
const (
	EnvServerURL     = "BLACKFILE_SERVER_URL"
	EnvPublicBaseURL = "BLACKFILE_PUBLIC_URL"
	EnvDBPath        = "BLACKFILE_DB"
	EnvCachePath     = "BLACKFILE_CACHE"
	EnvMaxUploadMB   = "BLACKFILE_MAX_UPLOAD_MB"
)

// parseEnv overlays Config fields from the environment. Unset or
// malformed variables leave the current value untouched.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvPublicBaseURL); v != "" {
		cfg.PublicBaseURL = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvCachePath); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv(EnvMaxUploadMB); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadSizeMB = n
		}
	}
}
