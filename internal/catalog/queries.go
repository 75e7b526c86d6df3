package catalog

import (
	"sort"
	"time"

	"github.com/kimphuquy/silvershop/internal/models"
)

// ProductByID returns the product with the given id from the current list.
func (s *Service) ProductByID(id int64) (models.Product, bool) {
	for _, p := range s.CurrentProducts() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductsByCategory returns current products in the given category.
func (s *Service) ProductsByCategory(category string) []models.Product {
	var out []models.Product
	for _, p := range s.CurrentProducts() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// AvailableProducts returns products that can currently be purchased,
// including pre-orders.
func (s *Service) AvailableProducts() []models.Product {
	var out []models.Product
	for _, p := range s.CurrentProducts() {
		if p.Status == models.StatusAvailable || p.Status == models.StatusPreOrder {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories of the current list, in
// first-seen order.
func (s *Service) Categories() []string {
	return distinct(s.CurrentProducts(), func(p models.Product) string { return p.Category })
}

// Brands returns the distinct brands of the current list, in first-seen order.
func (s *Service) Brands() []string {
	return distinct(s.CurrentProducts(), func(p models.Product) string { return p.Brand })
}

// RecentProducts returns products created within the last N days.
func (s *Service) RecentProducts(days int) []models.Product {
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []models.Product
	for _, p := range s.CurrentProducts() {
		created, err := time.Parse("2006-01-02", p.CreatedDate)
		if err != nil {
			continue
		}
		if !created.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// SortByNewest returns a copy sorted by creation date, newest first.
func SortByNewest(products []models.Product) []models.Product {
	out := models.CloneProducts(products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedDate > out[j].CreatedDate
	})
	return out
}

// SortByOldest returns a copy sorted by creation date, oldest first.
func SortByOldest(products []models.Product) []models.Product {
	out := models.CloneProducts(products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedDate < out[j].CreatedDate
	})
	return out
}

// PriceRange returns the lowest and highest sell price across products with
// a listed price. Unpriced (contact-for-price) products are ignored; an
// all-unpriced input yields (0, 0).
func PriceRange(products []models.Product) (min, max int64) {
	for _, p := range products {
		if p.SellPrice <= 0 {
			continue
		}
		if min == 0 || p.SellPrice < min {
			min = p.SellPrice
		}
		if p.SellPrice > max {
			max = p.SellPrice
		}
	}
	return min, max
}

func distinct(products []models.Product, field func(models.Product) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
