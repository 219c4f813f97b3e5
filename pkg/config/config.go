// Package config provides TOML and YAML configuration for photo-groove.
package config

// Config is the complete photo-groove configuration.
type Config struct {
	Catalog CatalogConfig `toml:"catalog" yaml:"catalog"`
	Image   ImageConfig   `toml:"image" yaml:"image"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	UI      UIConfig      `toml:"ui" yaml:"ui"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// CatalogConfig locates the photo catalog.
type CatalogConfig struct {
	// URL of the JSON catalog. Empty means BaseURL + "photos/list.json".
	URL string `toml:"url" yaml:"url"`

	// BaseURL prefixes every photo path.
	BaseURL string `toml:"base_url" yaml:"base_url"`

	// Timeout bounds each HTTP request.
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// ImageConfig controls canvas rendering.
type ImageConfig struct {
	// Protocol is "auto", "kitty", "iterm2", "sixel", "halfblocks" or "none".
	Protocol string `toml:"protocol" yaml:"protocol"`

	// MaxCacheSizeMB bounds the in-memory rendered frame cache.
	MaxCacheSizeMB int `toml:"max_cache_size_mb" yaml:"max_cache_size_mb"`
}

// CacheConfig controls the on-disk photo cache.
type CacheConfig struct {
	Dir       string `toml:"dir" yaml:"dir"`
	MaxSizeMB int    `toml:"max_size_mb" yaml:"max_size_mb"`
}

// UIConfig controls the terminal interface.
type UIConfig struct {
	Theme         string `toml:"theme" yaml:"theme"`
	ThumbnailSize string `toml:"thumbnail_size" yaml:"thumbnail_size"`
	Mouse         bool   `toml:"mouse" yaml:"mouse"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}
