package pricefeed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/kimphuquy/silvershop/internal/config"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// FetchError reports that both the direct attempt and the relay fallback
// failed. It is the only error type Fetch returns.
type FetchError struct {
	URL       string
	DirectErr error
	RelayErr  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("price source %s unreachable: direct: %v, relay: %v", e.URL, e.DirectErr, e.RelayErr)
}

// Fetcher retrieves the raw price document. The direct request gets a short
// timeout; when it fails for any reason the same URL is routed once through
// the relay with a longer timeout. No retries beyond that single fallback.
type Fetcher struct {
	cfg    config.CrawlerConfig
	client *http.Client
}

// NewFetcher creates a Fetcher for the configured price source.
func NewFetcher(cfg config.CrawlerConfig) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Fetch returns the full source document, or a *FetchError when both
// attempts failed. There is no partial result: a timed-out body read fails
// the attempt as a whole.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	body, directErr := f.fetchOnce(ctx, f.cfg.SourceURL, f.cfg.DirectTimeout)
	if directErr == nil {
		return body, nil
	}

	log.Printf("⚠️ Direct fetch failed (%v), trying relay...", directErr)

	relayURL := fmt.Sprintf("%s?url=%s", f.cfg.RelayURL, url.QueryEscape(f.cfg.SourceURL))
	body, relayErr := f.fetchOnce(ctx, relayURL, f.cfg.RelayTimeout)
	if relayErr == nil {
		log.Println("✅ Relay fetch succeeded")
		return body, nil
	}

	return "", &FetchError{URL: f.cfg.SourceURL, DirectErr: directErr, RelayErr: relayErr}
}

// fetchOnce performs a single bounded GET. The timeout aborts the in-flight
// request, including the body read.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
