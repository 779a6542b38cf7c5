package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/dmitrijs2005/gallerykeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envBaseURL   = "GALLERY_BASE_URL"
	envAPIKey    = "GALLERY_API_KEY"
	envDataDir   = "GALLERY_DATA_DIR"
	envLogFormat = "GALLERY_LOG_FORMAT"
	envDebug     = "GALLERY_DEBUG"

	envSupabaseURL = "SUPABASE_URL"
	envSupabaseKey = "SUPABASE_ANON_KEY"
)

// parseEnv overlays cfg with values from the dotenv file and the process
// environment. A missing dotenv file is not an error.
func parseEnv(cfg *Config) error {
	file, err := godotenv.Read(flagx.EnvFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	get := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok && v != "" {
				return v, true
			}
			if v, ok := file[k]; ok && v != "" {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := get(envBaseURL, envSupabaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := get(envAPIKey, envSupabaseKey); ok {
		cfg.APIKey = v
	}
	if v, ok := get(envDataDir); ok {
		cfg.DataDir = v
	}
	if v, ok := get(envLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := get(envDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		cfg.Debug = b
	}
	return nil
}
