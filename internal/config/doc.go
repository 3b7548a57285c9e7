// Package config loads shutter's startup configuration.
//
// # Resolution Order
//
// Load builds a Config in layers, each overriding the previous one:
//
//  1. Built-in defaults (see Default)
//  2. The TOML file at the given path, or ~/.config/shutter/config.toml
//  3. A .env file in the working directory, loaded with godotenv
//  4. SHUTTER_* environment variables, parsed with caarlos0/env
//
// A missing config file is not an error. Empty or whitespace-only values in
// the file keep their defaults. The .env file never overrides variables that
// are already set in the environment.
//
// # TOML Format
//
//	api_url        = "http://127.0.0.1:5000"
//	user_id        = 7
//	session_cookie = ""
//	csrf_token     = ""
//	refresh_every  = "1m"     # "0s" disables periodic feed refresh
//	log_file       = "~/.local/share/shutter/shutter.log"
//	log_level      = "info"   # debug, info, warn, error
//	log_format     = "text"   # text or json
//	metrics_addr   = ""       # e.g. "127.0.0.1:9100" to serve /metrics
//
//	[upload]
//	max_dimension = 2048      # 0 disables downscaling
//	jpeg_quality  = 85
//
//	[store]
//	photos_scoped   = "replace"   # or "union"
//	albums_scoped   = "replace"
//	comments_scoped = "replace"
//
// # Environment Variables
//
//	SHUTTER_API_URL, SHUTTER_USER_ID, SHUTTER_SESSION_COOKIE,
//	SHUTTER_CSRF_TOKEN, SHUTTER_REFRESH_EVERY, SHUTTER_LOG_LEVEL,
//	SHUTTER_METRICS_ADDR
//
// Empty variables are ignored.
//
// # Errors
//
// Load fails on unreadable files, invalid TOML, an unparseable
// refresh_every, or an unknown store policy name. Tilde paths are expanded
// against the user's home directory.
package config
