package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/shutter/internal/store"
)

// Config holds everything shutter reads at startup.
type Config struct {
	APIURL        string
	UserID        int64
	SessionCookie string
	CSRFToken     string
	RefreshEvery  time.Duration
	LogFile       string
	LogLevel      string
	LogFormat     string
	MetricsAddr   string
	Upload        Upload
	Store         Store
}

// Upload controls image preparation before upload.
type Upload struct {
	MaxDimension int
	JPEGQuality  int
}

// Store names the scoped-slot merge policy per entity kind ("union" or
// "replace"; empty keeps the default).
type Store struct {
	PhotosScoped   string
	AlbumsScoped   string
	CommentsScoped string
}

const (
	defaultConfigPath   = "~/.config/shutter/config.toml"
	defaultLogFile      = "~/.local/share/shutter/shutter.log"
	defaultAPIURL       = "http://127.0.0.1:5000"
	defaultRefreshEvery = time.Minute
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultMaxDimension = 2048
	defaultJPEGQuality  = 85
	dotenvFile          = ".env"
)

type rawConfig struct {
	APIURL        string `toml:"api_url"`
	UserID        int64  `toml:"user_id"`
	SessionCookie string `toml:"session_cookie"`
	CSRFToken     string `toml:"csrf_token"`
	RefreshEvery  string `toml:"refresh_every"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	MetricsAddr   string `toml:"metrics_addr"`
	Upload        struct {
		MaxDimension *int `toml:"max_dimension"`
		JPEGQuality  int  `toml:"jpeg_quality"`
	} `toml:"upload"`
	Store struct {
		PhotosScoped   string `toml:"photos_scoped"`
		AlbumsScoped   string `toml:"albums_scoped"`
		CommentsScoped string `toml:"comments_scoped"`
	} `toml:"store"`
}

// envOverrides are applied after the file. Empty values leave the file value.
type envOverrides struct {
	APIURL        string        `env:"SHUTTER_API_URL"`
	UserID        int64         `env:"SHUTTER_USER_ID"`
	SessionCookie string        `env:"SHUTTER_SESSION_COOKIE"`
	CSRFToken     string        `env:"SHUTTER_CSRF_TOKEN"`
	RefreshEvery  time.Duration `env:"SHUTTER_REFRESH_EVERY"`
	LogLevel      string        `env:"SHUTTER_LOG_LEVEL"`
	MetricsAddr   string        `env:"SHUTTER_METRICS_ADDR"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:       defaultAPIURL,
		RefreshEvery: defaultRefreshEvery,
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
		Upload:       Upload{MaxDimension: defaultMaxDimension, JPEGQuality: defaultJPEGQuality},
	}
}

// Load reads the TOML config at path (or the default location), falling back
// to defaults when it is missing, then applies a .env file from the working
// directory and SHUTTER_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := loadFile(resolved, &cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.StorePolicies(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.UserID = raw.UserID
	cfg.SessionCookie = strings.TrimSpace(raw.SessionCookie)
	cfg.CSRFToken = strings.TrimSpace(raw.CSRFToken)
	if v := strings.TrimSpace(raw.RefreshEvery); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("parse config: refresh_every %q is not a duration", raw.RefreshEvery)
		}
		cfg.RefreshEvery = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	if raw.Upload.MaxDimension != nil {
		cfg.Upload.MaxDimension = *raw.Upload.MaxDimension
	}
	if q := raw.Upload.JPEGQuality; q > 0 && q <= 100 {
		cfg.Upload.JPEGQuality = q
	}
	cfg.Store = Store{
		PhotosScoped:   strings.TrimSpace(raw.Store.PhotosScoped),
		AlbumsScoped:   strings.TrimSpace(raw.Store.AlbumsScoped),
		CommentsScoped: strings.TrimSpace(raw.Store.CommentsScoped),
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if _, err := os.Stat(dotenvFile); err == nil {
		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(dotenvFile); err != nil {
			return fmt.Errorf("load %s: %w", dotenvFile, err)
		}
	}

	var over envOverrides
	if err := env.Parse(&over); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if v := strings.TrimSpace(over.APIURL); v != "" {
		cfg.APIURL = v
	}
	if over.UserID > 0 {
		cfg.UserID = over.UserID
	}
	if over.SessionCookie != "" {
		cfg.SessionCookie = over.SessionCookie
	}
	if over.CSRFToken != "" {
		cfg.CSRFToken = over.CSRFToken
	}
	if over.RefreshEvery > 0 {
		cfg.RefreshEvery = over.RefreshEvery
	}
	if v := strings.TrimSpace(over.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(over.MetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	return nil
}

// StorePolicies converts the [store] table into store policies. The All slot
// always keeps its default.
func (c Config) StorePolicies() (store.Policies, error) {
	photos, err := store.ParseMergePolicy(c.Store.PhotosScoped)
	if err != nil {
		return store.Policies{}, fmt.Errorf("store.photos_scoped: %w", err)
	}
	albums, err := store.ParseMergePolicy(c.Store.AlbumsScoped)
	if err != nil {
		return store.Policies{}, fmt.Errorf("store.albums_scoped: %w", err)
	}
	comments, err := store.ParseMergePolicy(c.Store.CommentsScoped)
	if err != nil {
		return store.Policies{}, fmt.Errorf("store.comments_scoped: %w", err)
	}
	return store.Policies{
		Photos:   store.Policy{Scoped: photos},
		Albums:   store.Policy{Scoped: albums},
		Comments: store.Policy{Scoped: comments},
	}, nil
}

// LogPath returns the client log file, falling back to the default location.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return mustExpand(defaultLogFile)
	}
	return c.LogFile
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
