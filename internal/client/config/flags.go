package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/gallerykeeper/internal/flagx"
)

// parseFlags overlays cfg with the command-line flags it knows about. Other
// arguments are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-l", "-debug"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "public API key")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json or zap")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")

	return fs.Parse(args)
}
