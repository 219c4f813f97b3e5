package gallery

import "gitlab.com/tinyland/lab/photo-groove/pkg/photo"

// Event is an input to Transition. The set is closed.
type Event interface {
	event()
}

// PhotoClicked selects the photo at Path.
type PhotoClicked struct {
	Path string
}

// SizeClicked chooses the thumbnail size.
type SizeClicked struct {
	Size ThumbnailSize
}

// SurpriseMeClicked asks for a random photo.
type SurpriseMeClicked struct{}

// RandomPhotoChosen carries the result of a ChooseRandom effect.
type RandomPhotoChosen struct {
	Photo photo.Photo
}

// CatalogFetched carries the result of the FetchCatalog effect. Err is
// non-nil when the fetch failed for any reason.
type CatalogFetched struct {
	Photos []photo.Photo
	Err    error
}

// ActivityReported carries a status string from the painting pipeline.
type ActivityReported struct {
	Activity string
}

// HueSlid sets the hue filter.
type HueSlid struct{ Value int }

// RippleSlid sets the ripple filter.
type RippleSlid struct{ Value int }

// NoiseSlid sets the noise filter.
type NoiseSlid struct{ Value int }

func (PhotoClicked) event()      {}
func (SizeClicked) event()       {}
func (SurpriseMeClicked) event() {}
func (RandomPhotoChosen) event() {}
func (CatalogFetched) event()    {}
func (ActivityReported) event()  {}
func (HueSlid) event()           {}
func (RippleSlid) event()        {}
func (NoiseSlid) event()         {}
