package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gallerykeeper/internal/flagx"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// an absent key from an empty value.
type JsonConfig struct {
	BaseURL   *string `json:"base_url"`
	APIKey    *string `json:"api_key"`
	DataDir   *string `json:"data_dir"`
	LogFormat *string `json:"log_format"`
	Debug     *bool   `json:"debug"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config) error {
	path := flagx.ConfigFile()
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

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.APIKey != nil {
		cfg.APIKey = *jc.APIKey
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	return nil
}
