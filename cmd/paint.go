package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/photo-groove/pkg/canvas"
	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
	"gitlab.com/tinyland/lab/photo-groove/pkg/terminal"
)

func newPaintCmd(s *session) *cobra.Command {
	var (
		filters       = gallery.DefaultFilters
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "paint <path>",
		Short: "Paint one photo with filters to stdout",
		Long: `Download the large rendition of a catalog photo, apply the hue, ripple
and noise filters and print the result once, without starting the UI.

Filter values range from 0 to 11.`,
		Example: `  # Paint with strong ripple and no noise
  photo-groove paint 2pt-thumb.jpg --ripple 11 --noise 0

  # Save half block output to a file
  photo-groove paint coli.jpg --protocol halfblocks > coli.ans`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFilters(filters); err != nil {
				return err
			}

			caps := terminal.Probe(s.cfg.Image.Protocol)
			if _, explicit, _ := terminal.ParseProtocol(s.cfg.Image.Protocol); !explicit && !caps.Interactive {
				caps.Protocol = terminal.ProtocolHalfblocks
			}

			painter, renderer := s.painter(caps, width, height)
			defer renderer.Close()
			defer painter.Close()

			req := s.machine().FilterRequest(args[0], filters)
			s.logger.Info("painting", "url", req.URL, "protocol", caps.Protocol)
			frame, err := painter.Paint(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("paint %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), frame.Rendered)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&filters.Hue, "hue", filters.Hue, "Hue filter (0-11)")
	f.IntVar(&filters.Ripple, "ripple", filters.Ripple, "Ripple filter (0-11)")
	f.IntVar(&filters.Noise, "noise", filters.Noise, "Noise filter (0-11)")
	f.IntVar(&width, "width", canvas.DefaultWidth, "Canvas width in cells")
	f.IntVar(&height, "height", canvas.DefaultHeight, "Canvas height in cells")

	return cmd
}

func checkFilters(f gallery.Filters) error {
	for _, c := range []struct {
		name string
		v    int
	}{{"hue", f.Hue}, {"ripple", f.Ripple}, {"noise", f.Noise}} {
		if c.v < 0 || c.v > gallery.FilterMax {
			return fmt.Errorf("--%s must be between 0 and %d, got %d", c.name, gallery.FilterMax, c.v)
		}
	}
	return nil
}
