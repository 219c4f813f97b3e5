// Package cmd holds the photo-groove command tree.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the photo-groove command. Without a subcommand it runs
// the interactive gallery.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	s := &session{}

	cmd := &cobra.Command{
		Use:   "photo-groove",
		Short: "Browse a photo gallery and paint filtered photos in the terminal",
		Long: `Photo Groove fetches a photo catalog, shows it as a thumbnail grid and
paints the selected photo on a canvas with hue, ripple and noise filters.

Use the arrow keys or the mouse to pick a photo, tab to move between the
filter sliders and [ or ] to adjust them.`,
		Example: `  # Browse the default catalog
  photo-groove

  # Force half block rendering and a different palette
  photo-groove --protocol halfblocks --theme nord

  # Print the catalog without starting the UI
  photo-groove list`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return s.setup(opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(cmd.Context(), s)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	f.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	f.StringVar(&opts.protocol, "protocol", "", "Graphics protocol (auto|kitty|iterm2|sixel|halfblocks|none)")
	f.StringVar(&opts.catalogURL, "catalog-url", "", "Photo catalog URL")
	f.StringVar(&opts.theme, "theme", "", "Theme name or path to a TOML theme file")
	f.BoolVar(&opts.noMouse, "no-mouse", false, "Disable mouse input")

	cmd.AddCommand(newListCmd(s))
	cmd.AddCommand(newPaintCmd(s))
	cmd.AddCommand(newThemesCmd(s))

	return cmd
}
