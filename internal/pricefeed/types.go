// Package pricefeed retrieves raw price documents from the external source,
// extracts crawled product records from them and matches those records
// against the canonical catalog.
package pricefeed

import (
	"context"

	"github.com/kimphuquy/silvershop/internal/models"
)

// CrawledRecord is one product row extracted from the external source.
// Records live for a single update cycle and are never persisted.
type CrawledRecord struct {
	Name      string `json:"name"`
	Code      string `json:"code"` // parsed out of the name when embedded
	SellPrice int64  `json:"sellPrice"`
	BuyPrice  int64  `json:"buyPrice"`
	InStock   bool   `json:"inStock"`
	Weight    string `json:"weight,omitempty"`
}

// MatchResult pairs a crawled record with its best catalog candidate.
type MatchResult struct {
	Product    models.Product `json:"product"`
	Record     CrawledRecord  `json:"record"`
	Similarity float64        `json:"similarity"`
}

// Source produces crawled records. The HTML scraper is the default
// implementation; the interface keeps the parse strategy swappable without
// touching the matcher or the update engine.
type Source interface {
	FetchRecords(ctx context.Context) ([]CrawledRecord, error)
}

// HTMLSource fetches the source document and scrapes records out of it.
type HTMLSource struct {
	fetcher *Fetcher
}

// NewHTMLSource creates the default scraping source over the given fetcher.
func NewHTMLSource(f *Fetcher) *HTMLSource {
	return &HTMLSource{fetcher: f}
}

// FetchRecords retrieves the source document and extracts product records.
func (s *HTMLSource) FetchRecords(ctx context.Context) ([]CrawledRecord, error) {
	html, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseProducts(html)
}
