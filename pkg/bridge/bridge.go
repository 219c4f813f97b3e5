// Package bridge defines the contract between the gallery and the external
// image-processing pipeline that paints the large canvas: an outbound,
// fire-and-forget filter request and an inbound stream of activity strings.
package bridge

// Filter names understood by the painting pipeline.
const (
	FilterHue    = "Hue"
	FilterRipple = "Ripple"
	FilterNoise  = "Noise"
)

// Filter is one named filter amount in [0.0, 1.0].
type Filter struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Request asks the pipeline to paint URL with the given filters.
type Request struct {
	URL     string   `json:"url"`
	Filters []Filter `json:"filters"`
}

// Amount returns the amount of the named filter and whether it was present.
func (r Request) Amount(name string) (float64, bool) {
	for _, f := range r.Filters {
		if f.Name == name {
			return f.Amount, true
		}
	}
	return 0, false
}

// Sink accepts paint requests. Push must not block; the caller never waits
// for, or reacts to, the completion of a request.
type Sink interface {
	Push(req Request)
}

// Source delivers free-text activity notifications from the pipeline. The
// channel is closed when the pipeline shuts down.
type Source interface {
	Activity() <-chan string
}
