// Package gallery is the photo gallery's state machine and view renderer.
//
// The package is pure: Transition computes the next Model and at most one
// Effect from the current Model and an Event, and Render maps a Model to a
// Page tree. Running effects and translating terminal input into events is
// the job of package app.
package gallery

import (
	"strings"

	"gitlab.com/tinyland/lab/photo-groove/pkg/photo"
)

// Default remote endpoints.
const (
	DefaultBaseURL    = "http://elm-in-action.com/"
	DefaultCatalogURL = DefaultBaseURL + "photos/list.json"
)

// Messages shown when the catalog cannot be used.
const (
	EmptyCatalogMessage = "0 photos found"
	ServerErrorMessage  = "Server error!"
)

// Status is the catalog loading state: exactly one of Loading, Loaded or
// Errored.
type Status interface {
	status()
}

// Loading is the initial status, before the catalog response arrives.
type Loading struct{}

// Loaded holds the catalog and the path of the selected photo. Transition
// only produces Loaded values whose Selected names one of Photos.
type Loaded struct {
	Photos   []photo.Photo
	Selected string
}

// Errored is terminal for the session.
type Errored struct {
	Message string
}

func (Loading) status() {}
func (Loaded) status()  {}
func (Errored) status() {}

// Contains reports whether path names one of the loaded photos.
func (l Loaded) Contains(path string) bool {
	for _, p := range l.Photos {
		if p.Path == path {
			return true
		}
	}
	return false
}

// SelectedPhoto returns the selected photo, if any.
func (l Loaded) SelectedPhoto() (photo.Photo, bool) {
	for _, p := range l.Photos {
		if p.Path == l.Selected {
			return p, true
		}
	}
	return photo.Photo{}, false
}

// ThumbnailSize is the display size of thumbnails. It has no effect on
// selection or filtering.
type ThumbnailSize int

const (
	Small ThumbnailSize = iota
	Medium
	Large
)

// ThumbnailSizes lists the sizes in display order.
var ThumbnailSizes = []ThumbnailSize{Small, Medium, Large}

var sizeNames = [...]string{
	Small:  "small",
	Medium: "med",
	Large:  "large",
}

// String returns the size label shown next to its radio button.
func (s ThumbnailSize) String() string {
	if s >= 0 && int(s) < len(sizeNames) {
		return sizeNames[s]
	}
	return "unknown"
}

// ParseThumbnailSize parses "small", "med"/"medium" or "large". Unknown
// names return Medium and false.
func ParseThumbnailSize(name string) (ThumbnailSize, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "small", "s":
		return Small, true
	case "med", "medium", "m":
		return Medium, true
	case "large", "l":
		return Large, true
	}
	return Medium, false
}

// FilterMax is the upper bound of every filter slider.
const FilterMax = 11

// Filters holds the three filter magnitudes, each in [0, FilterMax] as
// bounded by the slider element. The state machine does not re-validate.
type Filters struct {
	Hue    int
	Ripple int
	Noise  int
}

// DefaultFilters is the starting value of every filter.
var DefaultFilters = Filters{Hue: 5, Ripple: 5, Noise: 5}

// Model is the complete application state. It is a value: every transition
// returns a new Model instead of mutating the previous one.
type Model struct {
	Status     Status
	ChosenSize ThumbnailSize
	Filters    Filters
	Activity   string
}

// InitialModel returns the startup model.
func InitialModel() Model {
	return Model{
		Status:     Loading{},
		ChosenSize: Medium,
		Filters:    DefaultFilters,
	}
}
