// Package config reads the command-line front end's settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const defaultBaseURL = "http://localhost:8000"

type Config struct {
	BaseURL string

	// WireLog is the file receiving one JSON line per request and response; empty disables it.
	WireLog string

	PrefsFile string

	// HTTPTimeout of zero means no timeout.
	HTTPTimeout time.Duration
}

func Load() Config {
	return Config{
		BaseURL:     getenv("NOTES_API_BASE_URL", defaultBaseURL),
		WireLog:     getenv("NOTES_WIRE_LOG", ""),
		PrefsFile:   getenv("NOTES_PREFS_FILE", defaultPrefsFile()),
		HTTPTimeout: getenvDuration("NOTES_HTTP_TIMEOUT", 0),
	}
}

func defaultPrefsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "lib", "notes", "prefs.yaml")
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
