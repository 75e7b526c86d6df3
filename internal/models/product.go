package models

// ProductStatus defines the sale status of a catalog product
type ProductStatus string

const (
	StatusAvailable    ProductStatus = "available"     // In stock, can be purchased
	StatusOutOfStock   ProductStatus = "out_of_stock"  // Temporarily unavailable
	StatusDiscontinued ProductStatus = "discontinued"  // No longer sold
	StatusPreOrder     ProductStatus = "pre_order"     // Can be ordered in advance
)

// Product is the canonical catalog entity. Prices are VND with no minor unit.
type Product struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Code           string            `json:"code"`   // SKU, e.g. "PQ01"
	Weight         string            `json:"weight"` // descriptor, e.g. "1kg", "1 lượng"
	SellPrice      int64             `json:"sellPrice"`
	BuyPrice       int64             `json:"buyPrice"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand"`
	InStock        bool              `json:"inStock"`
	Status         ProductStatus     `json:"status"`
	CreatedDate    string            `json:"createdDate"` // YYYY-MM-DD
	Images         []string          `json:"images"`
	Description    string            `json:"description"`
	Specifications map[string]string `json:"specifications"`
	Features       []string          `json:"features"`
}

// Clone returns a deep copy so callers can mutate freely without
// touching the snapshot or a cached set.
func (p Product) Clone() Product {
	c := p
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	if p.Features != nil {
		c.Features = append([]string(nil), p.Features...)
	}
	if p.Specifications != nil {
		c.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			c.Specifications[k] = v
		}
	}
	return c
}

// CloneProducts deep-copies a product list.
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// StatusForStock maps a stock flag to the matching sale status.
func StatusForStock(inStock bool) ProductStatus {
	if inStock {
		return StatusAvailable
	}
	return StatusOutOfStock
}
