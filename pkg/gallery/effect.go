package gallery

import (
	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
	"gitlab.com/tinyland/lab/photo-groove/pkg/photo"
)

// Effect is an asynchronous side action requested by a transition. Its
// result, if any, re-enters the machine as a new Event.
type Effect interface {
	effect()
}

// FetchCatalog requests the photo list; it resolves to CatalogFetched.
type FetchCatalog struct {
	URL string
}

// ChooseRandom requests a uniform draw over Photos; it resolves to
// RandomPhotoChosen.
type ChooseRandom struct {
	Photos []photo.Photo
}

// PushFilters sends Request to the painting pipeline. Nothing re-enters the
// machine when it completes.
type PushFilters struct {
	Request bridge.Request
}

func (FetchCatalog) effect() {}
func (ChooseRandom) effect() {}
func (PushFilters) effect()  {}
