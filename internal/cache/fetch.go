package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// fetchTimeout bounds a single word list download.
	fetchTimeout = 30 * time.Second

	// downloadInterval spaces out consecutive downloads. It only matters
	// when several lists are fetched in one run (prefetch mode); a single
	// cache miss passes the limiter without waiting.
	downloadInterval = 2 * time.Second

	// maxListBytes caps a download. Real word lists are well under 200 KiB;
	// a multi-megabyte response is not a word list.
	maxListBytes = 4 << 20
)

// Fetcher downloads word lists over HTTP.
//
// Downloads share a politeness limiter so prefetching every language does not
// hammer the remote hosts in a burst.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher with the default timeout and download rate.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: fetchTimeout},
		limiter: rate.NewLimiter(rate.Every(downloadInterval), 1),
		logger:  logger,
	}
}

// Fetch downloads the word list at url.
//
// Parameters:
//   - ctx: context for cancellation and timeout control
//   - url: the remote word list location
//
// Returns the response body as text, or an error if the download fails or
// answers with a non-200 status.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("cache: download cancelled: %w", err)
	}

	f.logger.Debug("Downloading word list", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("cache: invalid word list URL %q: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cache: failed to download word list from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cache: failed to download word list from %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListBytes))
	if err != nil {
		return "", fmt.Errorf("cache: failed to read word list from %s: %w", url, err)
	}
	return string(body), nil
}
