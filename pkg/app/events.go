// Package app is the Bubbletea runtime for the photo gallery. It owns the
// gallery state machine, turns terminal input and pipeline notifications
// into gallery events, and interprets the effects each transition returns.
package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/photo-groove/pkg/canvas"
	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
	"gitlab.com/tinyland/lab/photo-groove/pkg/photo"
)

// FrameEvent carries a newly painted canvas frame into the update loop.
type FrameEvent struct {
	Frame canvas.Frame
}

// FetchCatalogCmd runs one catalog fetch and delivers the outcome as a
// gallery.CatalogFetched event. The underlying error is logged; the gallery
// only sees that the fetch failed.
func FetchCatalogCmd(ctx context.Context, c Catalog, url string, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return gallery.CatalogFetched{Err: errNoCatalog}
		}
		photos, err := c.FetchCatalog(ctx, url)
		if err != nil {
			logger.Error("catalog fetch failed", "url", url, "error", err)
			return gallery.CatalogFetched{Err: err}
		}
		logger.Info("catalog loaded", "url", url, "photos", len(photos))
		return gallery.CatalogFetched{Photos: photos}
	}
}

// ChooseRandomCmd draws one photo uniformly with intn and delivers it as a
// gallery.RandomPhotoChosen event.
func ChooseRandomCmd(photos []photo.Photo, intn func(n int) int) tea.Cmd {
	if len(photos) == 0 {
		return nil
	}
	return func() tea.Msg {
		i := intn(len(photos))
		if i < 0 || i >= len(photos) {
			i = 0
		}
		return gallery.RandomPhotoChosen{Photo: photos[i]}
	}
}

// ListenActivity waits for the next activity string. It returns nil once
// the source is closed, which ends the subscription.
func ListenActivity(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return gallery.ActivityReported{Activity: s}
	}
}

// ListenFrames waits for the next painted frame.
func ListenFrames(ch <-chan canvas.Frame) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return nil
		}
		return FrameEvent{Frame: f}
	}
}
