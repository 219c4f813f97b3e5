package gallery

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
)

// Title is the heading of the gallery page.
const Title = "Photo Groove"

// SurpriseLabel is the caption of the random-pick button.
const SurpriseLabel = "Surprise Me!"

// RenderOptions configures Render.
type RenderOptions struct {
	// BaseURL prefixes thumbnail and large-rendition paths. Empty selects
	// DefaultBaseURL.
	BaseURL string
}

// Page is the rendered tree for one Model. Every interactive node knows the
// Event it raises, so input handling never has to inspect the Model.
type Page struct {
	Title      string
	ErrorText  string
	Loading    bool
	SurpriseMe bool
	Sliders    []SliderView
	Sizes      []SizeOption
	Thumbnails []Thumbnail
	Canvas     *CanvasTarget
	Activity   string
}

// SliderView is one filter slider bound to its current value.
type SliderView struct {
	Name  string
	Value int
	Max   int
}

// Slide returns the event raised when the slider reports value v.
func (s SliderView) Slide(v int) Event {
	switch s.Name {
	case bridge.FilterHue:
		return HueSlid{Value: v}
	case bridge.FilterRipple:
		return RippleSlid{Value: v}
	case bridge.FilterNoise:
		return NoiseSlid{Value: v}
	}
	return nil
}

// SizeOption is one radio button of the thumbnail size chooser.
type SizeOption struct {
	Size    ThumbnailSize
	Checked bool
}

// Label is the text shown next to the radio button.
func (o SizeOption) Label() string { return o.Size.String() }

// Click returns the event raised when the option is chosen.
func (o SizeOption) Click() Event { return SizeClicked{Size: o.Size} }

// Thumbnail is one photo tile.
type Thumbnail struct {
	Path     string
	Src      string
	Title    string
	Selected bool
}

// Click returns the event raised when the tile is clicked.
func (t Thumbnail) Click() Event { return PhotoClicked{Path: t.Path} }

// CanvasTarget is where the filtered large rendition is painted.
type CanvasTarget struct {
	URL string
}

// Render maps m to its Page. It has no side effects.
func Render(m Model, opts RenderOptions) Page {
	mc := NewMachine(opts.BaseURL, "")
	page := Page{Title: Title, Activity: m.Activity}

	switch st := m.Status.(type) {
	case Errored:
		page.ErrorText = "Error " + st.Message
		page.Activity = ""
		return page

	case Loading:
		page.Loading = true
		page.Sliders = renderSliders(m.Filters)
		page.Sizes = renderSizes(m.ChosenSize)
		return page

	case Loaded:
		page.SurpriseMe = true
		page.Sliders = renderSliders(m.Filters)
		page.Sizes = renderSizes(m.ChosenSize)
		page.Thumbnails = make([]Thumbnail, 0, len(st.Photos))
		for _, p := range st.Photos {
			page.Thumbnails = append(page.Thumbnails, Thumbnail{
				Path:     p.Path,
				Src:      mc.ThumbnailURL(p.Path),
				Title:    fmt.Sprintf("%s [%d KB]", p.Title, p.SizeKB),
				Selected: p.Path == st.Selected,
			})
		}
		page.Canvas = &CanvasTarget{URL: mc.LargeURL(st.Selected)}
	}
	return page
}

func renderSliders(f Filters) []SliderView {
	return []SliderView{
		{Name: bridge.FilterHue, Value: f.Hue, Max: FilterMax},
		{Name: bridge.FilterRipple, Value: f.Ripple, Max: FilterMax},
		{Name: bridge.FilterNoise, Value: f.Noise, Max: FilterMax},
	}
}

func renderSizes(chosen ThumbnailSize) []SizeOption {
	opts := make([]SizeOption, len(ThumbnailSizes))
	for i, s := range ThumbnailSizes {
		opts[i] = SizeOption{Size: s, Checked: s == chosen}
	}
	return opts
}

// Zone IDs used to mark interactive regions of the view.
const (
	SurpriseZoneID   = "surprise"
	thumbZonePrefix  = "thumb:"
	sizeZonePrefix   = "size:"
	sliderZonePrefix = "slider:"
)

// ThumbZoneID names the zone of the i-th thumbnail.
func ThumbZoneID(i int) string { return thumbZonePrefix + strconv.Itoa(i) }

// SizeZoneID names the zone of a size radio button.
func SizeZoneID(s ThumbnailSize) string { return sizeZonePrefix + s.String() }

// SliderZoneID names the zone of a filter slider.
func SliderZoneID(name string) string { return sliderZonePrefix + strings.ToLower(name) }

// EventFor returns the click event for a zone of the page. Slider zones are
// not clickable targets here; the slider element turns pointer positions
// into values itself.
func (p Page) EventFor(zoneID string) (Event, bool) {
	switch {
	case zoneID == SurpriseZoneID:
		if p.SurpriseMe {
			return SurpriseMeClicked{}, true
		}
	case strings.HasPrefix(zoneID, thumbZonePrefix):
		i, err := strconv.Atoi(strings.TrimPrefix(zoneID, thumbZonePrefix))
		if err == nil && i >= 0 && i < len(p.Thumbnails) {
			return p.Thumbnails[i].Click(), true
		}
	case strings.HasPrefix(zoneID, sizeZonePrefix):
		name := strings.TrimPrefix(zoneID, sizeZonePrefix)
		for _, o := range p.Sizes {
			if o.Label() == name {
				return o.Click(), true
			}
		}
	}
	return nil, false
}

// ZoneIDs lists every clickable zone of the page in display order.
func (p Page) ZoneIDs() []string {
	var ids []string
	if p.SurpriseMe {
		ids = append(ids, SurpriseZoneID)
	}
	for _, o := range p.Sizes {
		ids = append(ids, SizeZoneID(o.Size))
	}
	for i := range p.Thumbnails {
		ids = append(ids, ThumbZoneID(i))
	}
	return ids
}
