package config

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gallerykeeper/internal/logging"
)

// Config holds runtime settings for the gallery CLI.
type Config struct {
	// BaseURL is the backend origin, e.g. https://project.supabase.co.
	BaseURL string
	// APIKey is the project's public key. Never a service key.
	APIKey string
	// DataDir holds the local SQLite database.
	DataDir   string
	LogFormat string
	Debug     bool
}

const dbFileName = "gallery.db"

func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:54321"
	c.APIKey = ""
	c.DataDir = "data"
	c.LogFormat = logging.FormatText
	c.Debug = false
}

// DatabasePath is the SQLite file inside dir, which should be the resolved
// DataDir.
func (c *Config) DatabasePath(dir string) string {
	return filepath.Join(dir, dbFileName)
}

// LoadConfig applies defaults, then the environment, the JSON file and the
// flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
