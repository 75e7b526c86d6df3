package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kimphuquy/silvershop/internal/favorites"
)

// listFavorites returns the client's favorite products
func (r *Router) listFavorites(w http.ResponseWriter, req *http.Request) {
	client := mux.Vars(req)["client"]
	items := r.favorites.List(client)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": items,
		"count":     len(items),
	})
}

// addFavorite adds a product to the client's favorites
func (r *Router) addFavorite(w http.ResponseWriter, req *http.Request) {
	client := mux.Vars(req)["client"]

	var item favorites.Item
	if err := json.NewDecoder(req.Body).Decode(&item); err != nil || item.ID == 0 {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	items, err := r.favorites.Add(client, item)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": items,
		"count":     len(items),
	})
}

// toggleFavorite flips a product's favorited state for the client
func (r *Router) toggleFavorite(w http.ResponseWriter, req *http.Request) {
	client := mux.Vars(req)["client"]

	var item favorites.Item
	if err := json.NewDecoder(req.Body).Decode(&item); err != nil || item.ID == 0 {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	favorited, err := r.favorites.Toggle(client, item)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorited": favorited,
		"count":     r.favorites.Count(client),
	})
}

// removeFavorite drops a product from the client's favorites
func (r *Router) removeFavorite(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	productID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	items, err := r.favorites.Remove(vars["client"], productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": items,
		"count":     len(items),
	})
}
