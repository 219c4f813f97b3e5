package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Sentinel errors returned (wrapped) by the fetcher and decoder.
var (
	// ErrStatus reports a non-2xx HTTP response.
	ErrStatus = errors.New("photo: unexpected HTTP status")

	// ErrDecode reports a catalog body that is not a valid photo list.
	ErrDecode = errors.New("photo: invalid catalog")
)

// maxBodyBytes caps how much of any response body is read.
const maxBodyBytes = 64 << 20

// Fetcher retrieves the photo catalog and photo bytes over HTTP.
type Fetcher struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewFetcher creates a Fetcher whose requests time out after timeout.
// A non-positive timeout selects 10 seconds.
func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger.With("component", "fetcher"),
	}
}

// FetchCatalog performs one GET against url and decodes the JSON photo list.
func (f *Fetcher) FetchCatalog(ctx context.Context, url string) ([]Photo, error) {
	body, err := f.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	photos, err := DecodeCatalog(body)
	if err != nil {
		return nil, err
	}
	f.Logger.Debug("catalog fetched", "url", url, "photos", len(photos))
	return photos, nil
}

// FetchBytes performs one GET against url and returns the response body.
func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	f.Logger.Debug("fetched", "url", url, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}
