package gallery

import (
	"strings"

	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
)

// Machine holds the fixed endpoints a transition needs. Its methods are
// pure functions of their arguments.
type Machine struct {
	// BaseURL prefixes every photo path. It must end with "/".
	BaseURL string

	// CatalogURL is fetched once at startup.
	CatalogURL string
}

// NewMachine returns a Machine for the given endpoints. Empty values select
// the defaults, and a trailing slash is added to baseURL when missing.
func NewMachine(baseURL, catalogURL string) Machine {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if catalogURL == "" {
		catalogURL = baseURL + "photos/list.json"
	}
	return Machine{BaseURL: baseURL, CatalogURL: catalogURL}
}

// Init returns the startup model and the single catalog fetch that is issued
// before any user event.
func (mc Machine) Init() (Model, Effect) {
	return InitialModel(), FetchCatalog{URL: mc.CatalogURL}
}

// Transition computes the model that follows m after ev, and the effect to
// run, if any. It never fails: events that do not apply to the current
// status leave the model unchanged.
func (mc Machine) Transition(m Model, ev Event) (Model, Effect) {
	switch ev := ev.(type) {
	case PhotoClicked:
		return mc.selectPhoto(m, ev.Path)

	case RandomPhotoChosen:
		return mc.selectPhoto(m, ev.Photo.Path)

	case SizeClicked:
		m.ChosenSize = ev.Size
		return m, nil

	case SurpriseMeClicked:
		if loaded, ok := m.Status.(Loaded); ok && len(loaded.Photos) > 0 {
			return m, ChooseRandom{Photos: loaded.Photos}
		}
		return m, nil

	case CatalogFetched:
		if _, ok := m.Status.(Errored); ok {
			return m, nil
		}
		switch {
		case ev.Err != nil:
			m.Status = Errored{Message: ServerErrorMessage}
			return m, nil
		case len(ev.Photos) == 0:
			m.Status = Errored{Message: EmptyCatalogMessage}
			return m, nil
		}
		m.Status = Loaded{Photos: ev.Photos, Selected: ev.Photos[0].Path}
		return m, mc.pushFilters(m)

	case ActivityReported:
		m.Activity = ev.Activity
		return m, nil

	case HueSlid:
		m.Filters.Hue = ev.Value
		return m, mc.pushFilters(m)

	case RippleSlid:
		m.Filters.Ripple = ev.Value
		return m, mc.pushFilters(m)

	case NoiseSlid:
		m.Filters.Noise = ev.Value
		return m, mc.pushFilters(m)
	}
	return m, nil
}

// selectPhoto moves the selection to path when the catalog is loaded. A path
// outside the catalog keeps the current selection.
func (mc Machine) selectPhoto(m Model, path string) (Model, Effect) {
	loaded, ok := m.Status.(Loaded)
	if !ok {
		return m, nil
	}
	if loaded.Contains(path) {
		loaded.Selected = path
		m.Status = loaded
	}
	return m, mc.pushFilters(m)
}

// pushFilters builds the PushFilters effect for a loaded model.
func (mc Machine) pushFilters(m Model) Effect {
	loaded, ok := m.Status.(Loaded)
	if !ok {
		return nil
	}
	return PushFilters{Request: mc.FilterRequest(loaded.Selected, m.Filters)}
}

// FilterRequest builds the paint request for the large rendition of path.
func (mc Machine) FilterRequest(path string, f Filters) bridge.Request {
	return bridge.Request{
		URL: mc.LargeURL(path),
		Filters: []bridge.Filter{
			{Name: bridge.FilterHue, Amount: normalize(f.Hue)},
			{Name: bridge.FilterRipple, Amount: normalize(f.Ripple)},
			{Name: bridge.FilterNoise, Amount: normalize(f.Noise)},
		},
	}
}

// ThumbnailURL is where the thumbnail for path is served.
func (mc Machine) ThumbnailURL(path string) string {
	return mc.BaseURL + path
}

// LargeURL is where the large rendition of path is served.
func (mc Machine) LargeURL(path string) string {
	return mc.BaseURL + "large/" + path
}

// normalize maps a slider value in [0, FilterMax] onto [0.0, 1.0].
func normalize(v int) float64 {
	return float64(v) / FilterMax
}
