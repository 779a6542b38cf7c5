// Package config loads runtime configuration for the gallery CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-e/-env, default ".env", optional) and the process
//     environment; a variable set in the environment wins over the file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Environment
//
//	GALLERY_BASE_URL    backend base URL (falls back to SUPABASE_URL)
//	GALLERY_API_KEY     public API key (falls back to SUPABASE_ANON_KEY)
//	GALLERY_DATA_DIR    directory of the local database
//	GALLERY_LOG_FORMAT  text, json or zap
//	GALLERY_DEBUG       true to log at debug level
//
// Flags
//
//	-a string   backend base URL
//	-k string   public API key
//	-d string   data directory
//	-l string   log format
//	-debug      debug logging
//
// # JSON schema
//
//	{
//	  "base_url": "https://project.supabase.co",
//	  "api_key": "eyJ...",
//	  "data_dir": "data",
//	  "log_format": "json",
//	  "debug": false
//	}
package config
