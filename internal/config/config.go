package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tao/internal/kv"
)

// Config is the reader's resolved configuration.
type Config struct {
	Content      string
	FetchTimeout time.Duration
	StoreBackend string
	StorePath    string
	LogFile      string
	LogLevel     string
}

const (
	defaultConfigPath   = "~/.config/tao/config.toml"
	defaultContent      = "~/.local/share/tao/tao_te_ching_complete.json"
	defaultStateDir     = "~/.local/state/tao"
	defaultFetchTimeout = 5 * time.Second
	defaultLogLevel     = "info"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return normalize(rawConfig{})
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return normalize(raw)
}

type rawConfig struct {
	Content             string `toml:"content"`
	FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
	Store               string `toml:"store"`
	StorePath           string `toml:"store_path"`
	LogFile             string `toml:"log_file"`
	LogLevel            string `toml:"log_level"`
}

func normalize(raw rawConfig) (Config, error) {
	cfg := Config{
		FetchTimeout: defaultFetchTimeout,
		LogLevel:     defaultLogLevel,
	}

	cfg.Content = strings.TrimSpace(raw.Content)
	if cfg.Content == "" {
		cfg.Content = defaultContent
	}
	if !isURL(cfg.Content) {
		cfg.Content = mustExpand(cfg.Content)
	}

	if raw.FetchTimeoutSeconds > 0 {
		cfg.FetchTimeout = time.Duration(raw.FetchTimeoutSeconds) * time.Second
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(raw.Store))
	switch cfg.StoreBackend {
	case "":
		cfg.StoreBackend = kv.BackendFile
	case kv.BackendFile, kv.BackendSQLite, kv.BackendMemory:
	default:
		return Config{}, fmt.Errorf("parse config: unknown store %q", raw.Store)
	}

	cfg.StorePath = strings.TrimSpace(raw.StorePath)
	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath(cfg.StoreBackend)
	}
	cfg.StorePath = mustExpand(cfg.StorePath)

	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = defaultStateDir + "/tao.log"
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	return cfg, nil
}

func defaultStorePath(backend string) string {
	if backend == kv.BackendSQLite {
		return defaultStateDir + "/store.db"
	}
	return defaultStateDir + "/store.json"
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
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
