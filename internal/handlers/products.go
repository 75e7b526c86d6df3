package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kimphuquy/silvershop/internal/catalog"
)

// listProducts returns the current reconciled product set. Supports
// ?category=, ?available=true and ?sort=newest|oldest.
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	products := r.catalog.CurrentProducts()
	if category := q.Get("category"); category != "" {
		products = r.catalog.ProductsByCategory(category)
	}
	if q.Get("available") == "true" {
		filtered := products[:0]
		for _, p := range products {
			if p.InStock {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	switch q.Get("sort") {
	case "newest":
		products = catalog.SortByNewest(products)
	case "oldest":
		products = catalog.SortByOldest(products)
	}

	respondJSON(w, http.StatusOK, products)
}

// getProduct returns a single product by id
func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, ok := r.catalog.ProductByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// listCategories returns the distinct product categories
func (r *Router) listCategories(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.catalog.Categories())
}

// listBrands returns the distinct product brands
func (r *Router) listBrands(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.catalog.Brands())
}

// getPriceRange returns the lowest and highest listed sell price
func (r *Router) getPriceRange(w http.ResponseWriter, req *http.Request) {
	min, max := catalog.PriceRange(r.catalog.CurrentProducts())
	respondJSON(w, http.StatusOK, map[string]int64{"min": min, "max": max})
}

// resyncProducts drops all persisted product state and rebuilds it from the
// bundled snapshot, discarding accumulated price overrides.
func (r *Router) resyncProducts(w http.ResponseWriter, req *http.Request) {
	products := r.catalog.ForceResync()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": len(products),
	})
}
