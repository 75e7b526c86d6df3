package pricefeed

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var weightPattern = regexp.MustCompile(`\(([^)]+)\)`)

// ParseProducts extracts crawled records from the source HTML. Rows without
// a name or with a non-positive sell price are skipped; the function only
// errors when the document itself cannot be parsed.
func ParseProducts(html string) ([]CrawledRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse source document: %w", err)
	}

	var records []CrawledRecord
	doc.Find(".product-item").Each(func(i int, sel *goquery.Selection) {
		fullName := strings.TrimSpace(sel.Find("h3").First().Text())
		name, code := SplitProductCode(fullName)
		if name == "" {
			return
		}

		sellPrice := ParsePrice(sel.Find(".sellprice").First().Text())
		buyPrice := ParsePrice(sel.Find(".buyprice").First().Text())

		inStock := true
		sel.Find(".tm-product-badges span").Each(func(_ int, badge *goquery.Selection) {
			text := strings.ToLower(badge.Text())
			if strings.Contains(text, "hết hàng") || strings.Contains(text, "dừng bán") {
				inStock = false
			}
		})

		weight := ""
		if m := weightPattern.FindStringSubmatch(name); m != nil {
			weight = m[1]
		}

		if sellPrice <= 0 {
			return
		}

		records = append(records, CrawledRecord{
			Name:      name,
			Code:      code,
			SellPrice: sellPrice,
			BuyPrice:  buyPrice,
			InStock:   inStock,
			Weight:    weight,
		})
	})

	log.Printf("Parsed %d product records from source document", len(records))
	return records, nil
}

// SplitProductCode splits a source product title of the form
// "Product Name -CODE" into its name and SKU parts.
func SplitProductCode(fullName string) (name, code string) {
	parts := strings.SplitN(fullName, " -", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(fullName), ""
}

// ParsePrice reads a Vietnamese-formatted currency string ("19.500.000đ",
// "1,503,000") into whole VND. Unparseable input yields 0.
func ParsePrice(priceStr string) int64 {
	var digits strings.Builder
	for _, r := range priceStr {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
