package pricefeed

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kimphuquy/silvershop/internal/models"
)

const (
	nameWeight     = 0.7
	codeWeight     = 0.3
	matchThreshold = 0.6 // accepted only when score is strictly above
)

// MatchRecords associates crawled records with catalog products by fuzzy
// name similarity plus exact-code bonus. Each record maps to at most one
// product; when several records contend for the same product only the
// highest-scoring one survives. Results are sorted by descending similarity.
func MatchRecords(records []CrawledRecord, catalog []models.Product) []MatchResult {
	var matches []MatchResult

	for _, record := range records {
		recordName := NormalizeName(record.Name)

		var best *models.Product
		bestScore := 0.0

		for i := range catalog {
			product := catalog[i]
			nameSim := Similarity(recordName, NormalizeName(product.Name))

			codeSim := 0.0
			if record.Code != "" && product.Code != "" && strings.EqualFold(record.Code, product.Code) {
				codeSim = 1.0
			}

			score := nameSim*nameWeight + codeSim*codeWeight
			// Strictly-greater on both comparisons: ties break to the
			// first-seen catalog product.
			if score > bestScore && score > matchThreshold {
				bestScore = score
				best = &catalog[i]
			}
		}

		if best != nil {
			matches = append(matches, MatchResult{
				Product:    best.Clone(),
				Record:     record,
				Similarity: bestScore,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	// Several records can contend for the same catalog product; keep only
	// the globally highest-scoring match per product id.
	seen := make(map[int64]struct{}, len(matches))
	deduped := matches[:0]
	for _, m := range matches {
		if _, ok := seen[m.Product.ID]; ok {
			continue
		}
		seen[m.Product.ID] = struct{}{}
		deduped = append(deduped, m)
	}

	return deduped
}

// NormalizeName prepares a product name for comparison: lowercase,
// punctuation to spaces, whitespace collapsed.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity is normalized Levenshtein similarity in [0,1]. Symmetric, and
// 1 for two empty strings.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}

	dist := levenshtein(ra, rb)
	return float64(maxLen-dist) / float64(maxLen)
}

// levenshtein computes edit distance with a rolling two-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
