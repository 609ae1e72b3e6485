package config

import (
	"os"
	"strings"
)

// Config holds the application configuration, read from the environment.
type Config struct {
	Environment string
	Port        string

	// OutDir is where exported midi files land when no path is given
	OutDir string

	// MidiOutPort is matched against out port names; empty picks the first
	MidiOutPort string

	SentryDSN string
	LogLevel  string

	// CORSOrigins is a comma separated list; "*" allows any origin
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		OutDir:      getEnv("OUT_DIR", "out"),
		MidiOutPort: getEnv("MIDI_OUT_PORT", ""),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
