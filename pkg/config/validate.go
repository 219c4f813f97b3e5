package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
)

var validProtocols = map[string]bool{
	"auto": true, "kitty": true, "iterm2": true,
	"sixel": true, "halfblocks": true, "none": true,
}

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate reports every invalid field, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if _, err := url.ParseRequestURI(c.Catalog.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("catalog.base_url: %w", err))
	}
	if c.Catalog.URL != "" {
		if _, err := url.ParseRequestURI(c.Catalog.URL); err != nil {
			errs = append(errs, fmt.Errorf("catalog.url: %w", err))
		}
	}
	if !validProtocols[strings.ToLower(c.Image.Protocol)] {
		errs = append(errs, fmt.Errorf("image.protocol: unknown protocol %q", c.Image.Protocol))
	}
	if c.Image.MaxCacheSizeMB < 0 {
		errs = append(errs, fmt.Errorf("image.max_cache_size_mb: must not be negative"))
	}
	if c.Cache.MaxSizeMB < 0 {
		errs = append(errs, fmt.Errorf("cache.max_size_mb: must not be negative"))
	}
	if _, ok := gallery.ParseThumbnailSize(c.UI.ThumbnailSize); !ok {
		errs = append(errs, fmt.Errorf("ui.thumbnail_size: unknown size %q", c.UI.ThumbnailSize))
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
