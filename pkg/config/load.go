package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AppName names the config, cache and log directories.
const AppName = "photo-groove"

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatForPath picks the syntax from the file extension. Anything other
// than .yaml or .yml is read as TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Load reads configuration from the first existing file among:
//  1. $XDG_CONFIG_HOME/photo-groove/config.{toml,yaml,yml}
//  2. ~/.config/photo-groove/config.{toml,yaml,yml}
//
// If no file exists, it returns DefaultConfig with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg, os.Getenv)
	return cfg, nil
}

// LoadFromFile reads configuration from path. A missing file yields the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg, os.Getenv)
			return cfg, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes configuration in the given format over the
// defaults, then applies env overrides and validates the result.
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	}
	applyEnvOverrides(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	cacheDir := filepath.Join(xdgCacheHome(home), AppName)

	return &Config{
		Catalog: CatalogConfig{
			BaseURL: "http://elm-in-action.com/",
			Timeout: Duration{10 * time.Second},
		},
		Image: ImageConfig{
			Protocol:       "auto",
			MaxCacheSizeMB: 32,
		},
		Cache: CacheConfig{
			Dir:       filepath.Join(cacheDir, "photos"),
			MaxSizeMB: 128,
		},
		UI: UIConfig{
			Theme:         "default",
			ThumbnailSize: "med",
			Mouse:         true,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(cacheDir, AppName+".log"),
		},
	}
}

// CatalogURL returns the catalog URL, derived from BaseURL when unset.
func (c *Config) CatalogURL() string {
	if c.Catalog.URL != "" {
		return c.Catalog.URL
	}
	base := c.Catalog.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "photos/list.json"
}

// applyEnvOverrides replaces config values with PHOTO_GROOVE_* variables.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("PHOTO_GROOVE_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := getenv("PHOTO_GROOVE_BASE_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := getenv("PHOTO_GROOVE_PROTOCOL"); v != "" {
		cfg.Image.Protocol = v
	}
	if v := getenv("PHOTO_GROOVE_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := getenv("PHOTO_GROOVE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// configSearchPaths returns the ordered list of config files to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{filepath.Join(xdgConfigHome(home), AppName)}

	// An explicit XDG_CONFIG_HOME still falls back to ~/.config.
	if def := filepath.Join(home, ".config", AppName); def != dirs[0] {
		dirs = append(dirs, def)
	}

	var paths []string
	for _, d := range dirs {
		for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
			paths = append(paths, filepath.Join(d, name))
		}
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
