package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/photo-groove/pkg/app"
	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
	"gitlab.com/tinyland/lab/photo-groove/pkg/terminal"
	"gitlab.com/tinyland/lab/photo-groove/pkg/theme"
)

var errNotTerminal = errors.New("photo-groove needs an interactive terminal; try \"photo-groove list\"")

// runGallery starts the interactive gallery and blocks until it exits.
func runGallery(ctx context.Context, s *session) error {
	if !terminal.IsTerminal(os.Stdout) {
		return errNotTerminal
	}

	caps := terminal.Probe(s.cfg.Image.Protocol)
	theme.ApplyProfile(os.Getenv("NO_COLOR") != "")
	s.logger.Info("starting gallery",
		"terminal", caps.Term,
		"protocol", caps.Protocol,
		"ssh", caps.SSH,
		"catalog", s.cfg.CatalogURL(),
	)

	painter, renderer := s.painter(caps, 0, 0)
	defer renderer.Close()
	painter.Start(ctx)
	defer painter.Close()

	size, ok := gallery.ParseThumbnailSize(s.cfg.UI.ThumbnailSize)
	if !ok {
		return fmt.Errorf("unknown thumbnail size %q", s.cfg.UI.ThumbnailSize)
	}
	m := app.New(
		app.Deps{Catalog: s.fetcher(), Canvas: painter},
		app.Options{
			Machine: s.machine(),
			Theme:   s.theme,
			Size:    &size,
			Mouse:   s.cfg.UI.Mouse,
			Logger:  s.logger,
			Context: ctx,
		},
	)
	defer m.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if s.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("gallery: %w", err)
	}
	s.logger.Info("gallery stopped")
	return nil
}
