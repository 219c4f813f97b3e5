package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tinyland/lab/photo-groove/pkg/cache"
	"gitlab.com/tinyland/lab/photo-groove/pkg/canvas"
	"gitlab.com/tinyland/lab/photo-groove/pkg/config"
	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
	"gitlab.com/tinyland/lab/photo-groove/pkg/image"
	"gitlab.com/tinyland/lab/photo-groove/pkg/photo"
	"gitlab.com/tinyland/lab/photo-groove/pkg/terminal"
	"gitlab.com/tinyland/lab/photo-groove/pkg/theme"
)

// rootOptions are the persistent flags. Set flags override the config file
// and environment.
type rootOptions struct {
	configPath string
	verbose    bool
	protocol   string
	catalogURL string
	theme      string
	noMouse    bool
}

// session is the state shared by every command once flags are parsed.
type session struct {
	cfg     *config.Config
	theme   theme.Theme
	logger  *slog.Logger
	logFile io.Closer
}

func (s *session) setup(opts *rootOptions) error {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := openLog(cfg.Log)
	if err != nil {
		return err
	}

	th, err := resolveTheme(cfg.UI.Theme)
	if err != nil {
		closer.Close()
		return err
	}

	s.cfg = cfg
	s.theme = th
	s.logger = logger
	s.logFile = closer
	logger.Debug("config loaded", "catalog", cfg.CatalogURL(), "protocol", cfg.Image.Protocol, "theme", th.Name)
	return nil
}

func (s *session) close() {
	if s.logFile != nil {
		s.logFile.Close()
		s.logFile = nil
	}
}

func applyFlags(cfg *config.Config, opts *rootOptions) {
	if opts.protocol != "" {
		cfg.Image.Protocol = opts.protocol
	}
	if opts.catalogURL != "" {
		cfg.Catalog.URL = opts.catalogURL
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if opts.noMouse {
		cfg.UI.Mouse = false
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
}

// openLog opens the log file in append mode. The TUI owns the terminal, so
// logs never go to stderr.
func openLog(lc config.LogConfig) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}

// resolveTheme accepts a registered theme name or a path to a TOML theme
// file, which is registered under its own name.
func resolveTheme(name string) (theme.Theme, error) {
	if strings.HasSuffix(strings.ToLower(name), ".toml") {
		t, err := theme.LoadFile(name)
		if err != nil {
			return theme.Theme{}, fmt.Errorf("theme %s: %w", name, err)
		}
		return t, nil
	}
	t, ok := theme.Lookup(name)
	if !ok {
		return theme.Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(theme.Names(), ", "))
	}
	return t, nil
}

func (s *session) machine() gallery.Machine {
	return gallery.NewMachine(s.cfg.Catalog.BaseURL, s.cfg.CatalogURL())
}

func (s *session) fetcher() *photo.Fetcher {
	return photo.NewFetcher(s.cfg.Catalog.Timeout.Duration, s.logger)
}

// painter wires the filter bridge: fetcher, disk cache and renderer. The
// caller closes the returned AsyncRenderer after the painter.
func (s *session) painter(caps terminal.Capabilities, width, height int) (*canvas.Painter, *image.AsyncRenderer) {
	store, err := cache.New(s.cfg.Cache.Dir, s.cfg.Cache.MaxSizeMB)
	if err != nil {
		s.logger.Warn("photo cache disabled", "dir", s.cfg.Cache.Dir, "error", err)
		store = nil
	}
	ar := image.NewAsyncRenderer(image.NewRenderer(caps, s.cfg.Image))
	p := canvas.New(canvas.Options{
		Fetcher:  s.fetcher(),
		Store:    store,
		Renderer: ar,
		Width:    width,
		Height:   height,
		Logger:   s.logger,
	})
	return p, ar
}
