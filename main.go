// photo-groove is a terminal photo gallery.
//
// It fetches a photo catalog, shows it as a grid of thumbnails and paints the
// selected photo on a canvas with hue, ripple and noise filters.
//
// Usage:
//
//	photo-groove [flags]
//	photo-groove list [--json]
//	photo-groove paint <path> [--hue n] [--ripple n] [--noise n]
//	photo-groove themes
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"gitlab.com/tinyland/lab/photo-groove/cmd"
)

var version = "0.1.0"

func main() {
	root := cmd.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
