// Package photo defines the photo descriptor served by the catalog endpoint
// and the HTTP fetcher that retrieves the catalog and full-size renditions.
package photo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// UntitledTitle is the title given to catalog entries that carry no title.
const UntitledTitle = "(untitled)"

// Photo describes one entry of the remote catalog. Values are treated as
// immutable once decoded.
type Photo struct {
	// Path is the photo's location relative to the gallery base URL
	// (e.g. "coli.jpg"). It doubles as the photo's identity.
	Path string `json:"url"`

	// SizeKB is the file size reported by the catalog, in kilobytes.
	SizeKB int `json:"size"`

	// Title is the human-readable caption.
	Title string `json:"title"`
}

// FromPath synthesizes a Photo known only by its path, with zero size and
// an empty title.
func FromPath(path string) Photo {
	return Photo{Path: path}
}

// wirePhoto mirrors the catalog JSON object. Title is a pointer so that a
// missing key and an explicit null both decode to nil.
type wirePhoto struct {
	URL   *string `json:"url"`
	Size  *int    `json:"size"`
	Title *string `json:"title"`
}

// UnmarshalJSON decodes one catalog object. "url" and "size" are required;
// "title" defaults to UntitledTitle when missing or null.
func (p *Photo) UnmarshalJSON(data []byte) error {
	var w wirePhoto
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.URL == nil {
		return errors.New("missing \"url\"")
	}
	if w.Size == nil {
		return fmt.Errorf("missing \"size\" for %q", *w.URL)
	}

	title := UntitledTitle
	if w.Title != nil {
		title = *w.Title
	}

	*p = Photo{Path: *w.URL, SizeKB: *w.Size, Title: title}
	return nil
}

// DecodeCatalog decodes a JSON array of catalog objects, preserving order.
func DecodeCatalog(data []byte) ([]Photo, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, fmt.Errorf("%w: expected an array, got null", ErrDecode)
	}
	var photos []Photo
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return photos, nil
}

// Paths returns the paths of photos in order.
func Paths(photos []Photo) []string {
	paths := make([]string, len(photos))
	for i, p := range photos {
		paths[i] = p.Path
	}
	return paths
}
