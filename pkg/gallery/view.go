package gallery

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/photo-groove/pkg/components"
	"gitlab.com/tinyland/lab/photo-groove/pkg/theme"
)

// Marker wraps a rendered region in a named mouse zone. *zone.Manager
// satisfies it.
type Marker interface {
	Mark(id, v string) string
}

// ViewContext carries everything Page.View needs that is not part of the
// Model: styles, the zone marker and output from other widgets.
type ViewContext struct {
	Styles theme.Styles
	Zones  Marker
	Width  int

	// Sliders holds the rendered slider widgets, index-aligned with
	// Page.Sliders. Missing entries fall back to a plain value label.
	Sliders []string

	// FocusedSlider is the index of the slider receiving keys, or -1.
	FocusedSlider int

	// Canvas is the latest painted frame for Page.Canvas.
	Canvas string

	// CanvasRaw marks Canvas as a graphics protocol escape sequence. Raw
	// frames are written below the layout instead of inside the canvas box.
	CanvasRaw bool

	Spinner string
	Footer  string
}

// View renders the page as terminal text.
func (p Page) View(vc ViewContext) string {
	width := vc.Width
	if width < minWidth {
		width = minWidth
	}
	st := vc.Styles

	var b strings.Builder
	b.WriteString(st.Title.Render(p.Title))
	b.WriteString("\n\n")

	if p.ErrorText != "" {
		b.WriteString(st.Error.Render(p.ErrorText))
		b.WriteString("\n")
		return p.withFooter(b.String(), vc)
	}

	if p.SurpriseMe {
		b.WriteString(mark(vc, SurpriseZoneID, st.Button.Render(SurpriseLabel)))
		b.WriteString("\n")
	}

	b.WriteString(p.viewSliders(vc))
	b.WriteString("\n")
	b.WriteString(p.viewSizes(vc))
	b.WriteString("\n\n")

	switch {
	case p.Loading:
		b.WriteString(vc.Spinner + st.Caption.Render(" Loading photos..."))
		b.WriteString("\n")
	case len(p.Thumbnails) > 0:
		b.WriteString(p.viewBody(vc, width))
		b.WriteString("\n")
		if vc.CanvasRaw && vc.Canvas != "" && p.Canvas != nil {
			b.WriteString(vc.Canvas)
			b.WriteString("\n")
		}
	}

	if p.Activity != "" {
		b.WriteString(st.Activity.Render(components.Ellipsize(p.Activity, width)))
		b.WriteString("\n")
	}
	return p.withFooter(b.String(), vc)
}

func (p Page) withFooter(s string, vc ViewContext) string {
	if vc.Footer == "" {
		return s
	}
	return s + "\n" + vc.Styles.Footer.Render(vc.Footer)
}

func (p Page) viewSliders(vc ViewContext) string {
	rows := make([]string, 0, len(p.Sliders))
	for i, s := range p.Sliders {
		label := vc.Styles.Label
		if i == vc.FocusedSlider {
			label = vc.Styles.SliderFocus
		}
		widget := ""
		if i < len(vc.Sliders) {
			widget = vc.Sliders[i]
		} else {
			widget = vc.Styles.Caption.Render(formatValue(s.Value, s.Max))
		}
		rows = append(rows, label.Render(components.PadRight(s.Name, 7))+" "+widget)
	}
	return strings.Join(rows, "\n")
}

func (p Page) viewSizes(vc ViewContext) string {
	parts := []string{vc.Styles.Label.Render("Thumbnail Size:")}
	for _, o := range p.Sizes {
		var radio string
		if o.Checked {
			radio = vc.Styles.RadioOn.Render("(•) " + o.Label())
		} else {
			radio = vc.Styles.Radio.Render("( ) " + o.Label())
		}
		parts = append(parts, mark(vc, SizeZoneID(o.Size), radio))
	}
	return strings.Join(parts, "  ")
}

// viewBody lays out the thumbnail grid and the canvas side by side, or
// stacked when the terminal is too narrow.
func (p Page) viewBody(vc ViewContext, width int) string {
	size := Medium
	for _, o := range p.Sizes {
		if o.Checked {
			size = o.Size
		}
	}

	body := Arrange(width, size)
	grid := p.viewGrid(vc, size, body.Columns)
	canvas := p.viewCanvas(vc, body)

	if canvas == "" {
		return grid
	}
	if body.SideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", canvas)
	}
	return lipgloss.JoinVertical(lipgloss.Left, grid, canvas)
}

func (p Page) viewGrid(vc ViewContext, size ThumbnailSize, cols int) string {
	var rows []string
	var row []string
	for i, t := range p.Thumbnails {
		row = append(row, mark(vc, ThumbZoneID(i), viewTile(vc.Styles, t, size)))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func viewTile(st theme.Styles, t Thumbnail, size ThumbnailSize) string {
	inner := tileWidth(size)
	style := st.Thumb
	if t.Selected {
		style = st.ThumbOn
	}
	lines := []string{components.Ellipsize(t.Path, inner)}
	if size != Small {
		lines = append(lines, st.Caption.Render(components.Ellipsize(t.Title, inner)))
	}
	if size == Large {
		lines = append(lines, st.Caption.Render(components.Ellipsize(t.Src, inner)))
	}
	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

func (p Page) viewCanvas(vc ViewContext, b Body) string {
	if p.Canvas == nil {
		return ""
	}
	w, h := b.CanvasCells()
	content := vc.Canvas
	if content == "" || vc.CanvasRaw {
		content = vc.Styles.Caption.Render(components.Ellipsize(p.Canvas.URL, w))
	}
	content = components.ClipBlock(content, w, h)
	return vc.Styles.Canvas.Width(w).Render(content)
}

func mark(vc ViewContext, id, s string) string {
	if vc.Zones == nil {
		return s
	}
	return vc.Zones.Mark(id, s)
}

func formatValue(v, limit int) string {
	return components.PadRight(strconv.Itoa(v)+"/"+strconv.Itoa(limit), 5)
}
