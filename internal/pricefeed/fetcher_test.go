package pricefeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/kimphuquy/silvershop/internal/config"
)

func fetcherConfig(sourceURL, relayURL string) config.CrawlerConfig {
	return config.CrawlerConfig{
		SourceURL:     sourceURL,
		RelayURL:      relayURL,
		DirectTimeout: 2 * time.Second,
		RelayTimeout:  2 * time.Second,
	}
}

func TestFetchDirect(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" || ua == "Go-http-client/1.1" {
			t.Errorf("Expected a browser user agent, got %q", ua)
		}
		w.Write([]byte("<html>direct</html>"))
	}))
	defer source.Close()

	f := NewFetcher(fetcherConfig(source.URL, "http://127.0.0.1:1/relay"))
	body, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "<html>direct</html>" {
		t.Errorf("Wrong body: %q", body)
	}
}

func TestFetchFallsBackToRelay(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer source.Close()

	var relayedURL string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		relayedURL = r.URL.Query().Get("url")
		w.Write([]byte("<html>relayed</html>"))
	}))
	defer relay.Close()

	f := NewFetcher(fetcherConfig(source.URL, relay.URL))
	body, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "<html>relayed</html>" {
		t.Errorf("Wrong body: %q", body)
	}
	// The source URL must be passed through the relay query parameter intact.
	if relayedURL != source.URL {
		t.Errorf("Relay received url=%q, want %q", relayedURL, source.URL)
	}
}

func TestFetchRelayURLEscaping(t *testing.T) {
	sourceURL := "https://example.com/gia?tab=bạc&x=1"
	cfg := fetcherConfig(sourceURL, "https://relay.test/get")

	relayURL := cfg.RelayURL + "?url=" + url.QueryEscape(cfg.SourceURL)
	parsed, err := url.Parse(relayURL)
	if err != nil {
		t.Fatalf("Relay URL does not parse: %v", err)
	}
	if got := parsed.Query().Get("url"); got != sourceURL {
		t.Errorf("Round-tripped url=%q, want %q", got, sourceURL)
	}
}

func TestFetchReportsBothFailures(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer source.Close()

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down too", http.StatusBadGateway)
	}))
	defer relay.Close()

	f := NewFetcher(fetcherConfig(source.URL, relay.URL))
	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected an error when both attempts fail")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected *FetchError, got %T: %v", err, err)
	}
	if fe.DirectErr == nil || fe.RelayErr == nil {
		t.Errorf("FetchError must carry both failures: %+v", fe)
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(fetcherConfig(source.URL, source.URL))
	if _, err := f.Fetch(ctx); err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}
}
