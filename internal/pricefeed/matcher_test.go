package pricefeed

import (
	"testing"

	"github.com/kimphuquy/silvershop/internal/models"
)

func TestSimilarityBounds(t *testing.T) {
	cases := []struct{ a, b string }{
		{"", ""},
		{"bạc miếng 1kg", "bạc miếng 1kg"},
		{"bạc miếng 1kg", "bạc thỏi 1 lượng"},
		{"abc", ""},
		{"kitten", "sitting"},
	}

	for _, tc := range cases {
		got := Similarity(tc.a, tc.b)
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", tc.a, tc.b, got)
		}
		if rev := Similarity(tc.b, tc.a); rev != got {
			t.Errorf("Similarity not symmetric for (%q, %q): %v vs %v", tc.a, tc.b, got, rev)
		}
	}

	if got := Similarity("bạc miếng", "bạc miếng"); got != 1 {
		t.Errorf("Similarity of identical strings = %v, want 1", got)
	}
	if got := Similarity("", ""); got != 1 {
		t.Errorf("Similarity of two empty strings = %v, want 1", got)
	}
}

func TestSimilarityKnownDistances(t *testing.T) {
	// kitten -> sitting is the classic distance-3 pair.
	want := 4.0 / 7.0
	if got := Similarity("kitten", "sitting"); got != want {
		t.Errorf("Similarity(kitten, sitting) = %v, want %v", got, want)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Bạc miếng 1kg", "bạc miếng 1kg"},
		{"  Bạc   miếng,  1kg!! ", "bạc miếng 1kg"},
		{"BẠC-MIẾNG (1kg)", "bạc miếng 1kg"},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func matcherCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Bạc miếng Phú Quý 1kg", Code: "PQ01", SellPrice: 19000000, BuyPrice: 18400000},
		{ID: 2, Name: "Bạc thỏi Phú Quý 1 lượng", Code: "PQ1L", SellPrice: 1503000, BuyPrice: 1430000},
	}
}

func TestMatchRecordsAcceptsCodeBackedMatch(t *testing.T) {
	records := []CrawledRecord{
		{Name: "Bạc miếng 1kg", Code: "PQ01", SellPrice: 19500000, BuyPrice: 18900000, InStock: true},
	}

	matches := MatchRecords(records, matcherCatalog())
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Product.ID != 1 {
		t.Errorf("Matched wrong product: %d", matches[0].Product.ID)
	}
	if matches[0].Similarity <= 0.6 {
		t.Errorf("Code-backed match should clear the threshold, got %v", matches[0].Similarity)
	}
}

func TestMatchRecordsRejectsAtOrBelowThreshold(t *testing.T) {
	catalog := []models.Product{{ID: 1, Name: "aaaaaaa", Code: ""}}

	// Name similarity 6/7 with no code bonus scores 0.7 * 6/7 = 0.6 exactly,
	// which must be rejected by the strictly-greater threshold.
	boundary := []CrawledRecord{{Name: "aaaaaab", SellPrice: 1000}}
	if matches := MatchRecords(boundary, catalog); len(matches) != 0 {
		t.Errorf("Score of exactly 0.6 must be rejected, got %d matches", len(matches))
	}

	unrelated := []CrawledRecord{{Name: "vàng nhẫn trơn 9999", SellPrice: 1000}}
	if matches := MatchRecords(unrelated, matcherCatalog()); len(matches) != 0 {
		t.Errorf("Unrelated record must not match, got %d matches", len(matches))
	}
}

func TestMatchRecordsPicksBestCandidatePerRecord(t *testing.T) {
	records := []CrawledRecord{
		{Name: "Bạc thỏi Phú Quý 1 lượng", Code: "", SellPrice: 1550000},
	}

	matches := MatchRecords(records, matcherCatalog())
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Product.ID != 2 {
		t.Errorf("Expected product 2 (exact name), got %d", matches[0].Product.ID)
	}
}

func TestMatchRecordsKeepsHighestScorePerProduct(t *testing.T) {
	records := []CrawledRecord{
		{Name: "Bạc miếng Phú Quý 1kgg", Code: "", SellPrice: 19400000},         // close name, no code
		{Name: "Bạc miếng Phú Quý 1kg", Code: "PQ01", SellPrice: 19500000},      // exact name + code
		{Name: "Bạc thỏi Phú Quý 1 lượng", Code: "PQ1L", SellPrice: 1550000},    // different product
	}

	matches := MatchRecords(records, matcherCatalog())
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches after per-product dedup, got %d", len(matches))
	}

	// Product 1 must be claimed by the code-backed record, not the weaker one.
	for _, m := range matches {
		if m.Product.ID == 1 {
			if m.Record.SellPrice != 19500000 {
				t.Errorf("Product 1 claimed by the wrong record: %+v", m.Record)
			}
			if m.Similarity != 1.0 {
				t.Errorf("Exact name + code should score 1.0, got %v", m.Similarity)
			}
		}
	}

	// Sorted by descending similarity.
	for i := 1; i < len(matches); i++ {
		if matches[i].Similarity > matches[i-1].Similarity {
			t.Errorf("Matches not sorted by descending similarity: %v then %v",
				matches[i-1].Similarity, matches[i].Similarity)
		}
	}
}
