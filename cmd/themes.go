package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/photo-groove/pkg/theme"
)

func newThemesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List the built-in themes and any theme loaded with --theme. The active
theme is marked with "*".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range theme.Names() {
				t := theme.Get(name)
				marker := " "
				if t.Name == s.theme.Name {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-12s %s\n", marker, name, swatch(t))
			}
			return nil
		},
	}
}

// swatch renders one block per main palette colour.
func swatch(t theme.Theme) string {
	var out string
	for _, c := range []string{t.Accent, t.Selected, t.SliderFilled, t.Border, t.Error} {
		out += lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██")
	}
	return out
}
