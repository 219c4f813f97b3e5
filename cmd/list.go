package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/photo-groove/pkg/photo"
	"gitlab.com/tinyland/lab/photo-groove/pkg/theme"
)

func newListCmd(s *session) *cobra.Command {
	var (
		asJSON bool
		match  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the photo catalog",
		Long: `Fetch the photo catalog once and print every photo with its size and
title. Missing titles are shown as "(untitled)".`,
		Example: `  # Only JPEG photos, as JSON
  photo-groove list --match "*.jpeg" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := s.cfg.CatalogURL()
			photos, err := s.fetcher().FetchCatalog(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("fetch catalog: %w", err)
			}
			if match != "" {
				if photos, err = filterPhotos(photos, match); err != nil {
					return err
				}
			}
			s.logger.Info("catalog listed", "url", url, "photos", len(photos))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(photos)
			}
			fmt.Fprintln(out, renderCatalog(photos, s.theme))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	cmd.Flags().StringVar(&match, "match", "", "Only list photos whose path matches this glob")

	return cmd
}

// renderCatalog lays the catalog out as a table.
func renderCatalog(photos []photo.Photo, th theme.Theme) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Accent)).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Foreground)).Padding(0, 1)
	dim := cell.Foreground(lipgloss.Color(th.Dim))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(th.Border))).
		Headers("PATH", "SIZE", "TITLE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 1:
				return dim.Align(lipgloss.Right)
			}
			return cell
		})
	for _, p := range photos {
		t.Row(p.Path, strconv.Itoa(p.SizeKB)+" KB", p.Title)
	}
	return t.Render()
}

// filterPhotos keeps the photos whose path matches pattern.
func filterPhotos(photos []photo.Photo, pattern string) ([]photo.Photo, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid --match pattern %q: %w", pattern, err)
	}
	out := make([]photo.Photo, 0, len(photos))
	for _, p := range photos {
		if g.Match(p.Path) {
			out = append(out, p)
		}
	}
	return out, nil
}
