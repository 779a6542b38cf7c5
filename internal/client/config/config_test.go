package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the dotenv lookup at an empty temp dir and clears the
// variables the package reads.
func isolate(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, k := range []string{envBaseURL, envAPIKey, envDataDir, envLogFormat, envDebug, envSupabaseURL, envSupabaseKey} {
		t.Setenv(k, "")
	}

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"gallerykeeper"}, args...)
	return dir
}

func writeJSON(t *testing.T, dir string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:54321", c.BaseURL)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "text", c.LogFormat)
	assert.False(t, c.Debug)
	assert.Equal(t, filepath.Join("x", "gallery.db"), c.DatabasePath("x"))
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"GALLERY_BASE_URL=https://dotenv.supabase.co\n"+
			"GALLERY_API_KEY=dotenv-key\n"+
			"GALLERY_DATA_DIR=dotenv-data\n"+
			"GALLERY_LOG_FORMAT=json\n"), 0o600))
	t.Setenv(envAPIKey, "env-key")

	path := writeJSON(t, dir, map[string]any{
		"data_dir": "json-data",
		"debug":    true,
	})
	os.Args = []string{"gallerykeeper", "-c", path, "-l", "zap"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(&Config{
		BaseURL:   "https://dotenv.supabase.co", // .env
		APIKey:    "env-key",                    // environment beats .env
		DataDir:   "json-data",                  // JSON beats .env
		LogFormat: "zap",                        // flag beats .env
		Debug:     true,                         // JSON
	}, cfg))
}

func TestParseEnv_SupabaseFallbacks(t *testing.T) {
	isolate(t)
	t.Setenv(envSupabaseURL, "https://fallback.supabase.co")
	t.Setenv(envSupabaseKey, "anon")

	var cfg Config
	require.NoError(t, parseEnv(&cfg))
	assert.Equal(t, "https://fallback.supabase.co", cfg.BaseURL)
	assert.Equal(t, "anon", cfg.APIKey)

	t.Setenv(envBaseURL, "https://primary.supabase.co")
	require.NoError(t, parseEnv(&cfg))
	assert.Equal(t, "https://primary.supabase.co", cfg.BaseURL)
}

func TestParseEnv_CustomFileAndBadBool(t *testing.T) {
	dir := isolate(t)
	custom := filepath.Join(dir, "prod.env")
	require.NoError(t, os.WriteFile(custom, []byte("GALLERY_DEBUG=maybe\n"), 0o600))
	os.Args = []string{"gallerykeeper", "-e", custom}

	var cfg Config
	require.Error(t, parseEnv(&cfg))
}

func TestParseJson(t *testing.T) {
	dir := isolate(t)

	t.Run("absent keys keep earlier values", func(t *testing.T) {
		os.Args = []string{"gallerykeeper", "-config", writeJSON(t, dir, map[string]any{"base_url": "https://j.supabase.co"})}

		cfg := &Config{APIKey: "keep", DataDir: "keep"}
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, "https://j.supabase.co", cfg.BaseURL)
		assert.Equal(t, "keep", cfg.APIKey)
		assert.Equal(t, "keep", cfg.DataDir)
	})

	t.Run("no flag no change", func(t *testing.T) {
		os.Args = []string{"gallerykeeper"}
		cfg := &Config{BaseURL: "defaults"}
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, "defaults", cfg.BaseURL)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		os.Args = []string{"gallerykeeper", "-c", bad}
		require.Error(t, parseJson(&Config{}))
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"gallerykeeper", "-c", filepath.Join(dir, "nope.json")}
		require.Error(t, parseJson(&Config{}))
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://f.supabase.co", "-k", "key", "-d", "/tmp/g", "-l", "json", "-debug"},
			want: &Config{BaseURL: "https://f.supabase.co", APIKey: "key", DataDir: "/tmp/g", LogFormat: "json", Debug: true},
		},
		{
			name: "unrelated args ignored",
			args: []string{"-c", "cfg.json", "-a", "https://f.supabase.co"},
			want: &Config{BaseURL: "https://f.supabase.co"},
		},
		{
			name:    "bad bool",
			args:    []string{"-debug=maybe"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, tt.args...)

			cfg := &Config{}
			err := parseFlags(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}
}
