// Package handlers exposes the storefront HTTP API.
package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/kimphuquy/silvershop/internal/buildinfo"
	"github.com/kimphuquy/silvershop/internal/catalog"
	"github.com/kimphuquy/silvershop/internal/favorites"
	"github.com/kimphuquy/silvershop/internal/orders"
	"github.com/kimphuquy/silvershop/internal/updater"
	"github.com/kimphuquy/silvershop/internal/websocket"
)

// Router wraps the mux router and the services it dispatches to
type Router struct {
	*mux.Router
	catalog   *catalog.Service
	engine    *updater.Engine
	orders    *orders.Service
	favorites *favorites.Service
	hub       *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(cat *catalog.Service, engine *updater.Engine, orderSvc *orders.Service, favSvc *favorites.Service, hub *websocket.Hub) *Router {
	r := &Router{
		Router:    mux.NewRouter(),
		catalog:   cat,
		engine:    engine,
		orders:    orderSvc,
		favorites: favSvc,
		hub:       hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Product routes
	products := r.PathPrefix("/api/products").Subrouter()
	products.HandleFunc("", r.listProducts).Methods("GET")
	products.HandleFunc("/categories", r.listCategories).Methods("GET")
	products.HandleFunc("/brands", r.listBrands).Methods("GET")
	products.HandleFunc("/price-range", r.getPriceRange).Methods("GET")
	products.HandleFunc("/resync", r.resyncProducts).Methods("POST")
	products.HandleFunc("/{id:[0-9]+}", r.getProduct).Methods("GET")

	// Price update routes
	prices := r.PathPrefix("/api/prices").Subrouter()
	prices.HandleFunc("/update", r.updatePrices).Methods("POST")
	prices.HandleFunc("/status", r.getPriceStatus).Methods("GET")
	prices.HandleFunc("/last-update", r.getLastUpdate).Methods("GET")

	// Order routes
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.HandleFunc("", r.listOrders).Methods("GET")
	ordersAPI.HandleFunc("", r.createOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}", r.getOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}", r.deleteOrder).Methods("DELETE")
	ordersAPI.HandleFunc("/{id}/status", r.updateOrderStatus).Methods("PUT")
	ordersAPI.HandleFunc("/{id}/complete", r.completeOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}/invoice", r.getOrderInvoice).Methods("GET")

	// Favorites routes, keyed by an opaque client id the storefront generates
	favoritesAPI := r.PathPrefix("/api/favorites").Subrouter()
	favoritesAPI.HandleFunc("/{client}", r.listFavorites).Methods("GET")
	favoritesAPI.HandleFunc("/{client}", r.addFavorite).Methods("POST")
	favoritesAPI.HandleFunc("/{client}/toggle", r.toggleFavorite).Methods("POST")
	favoritesAPI.HandleFunc("/{client}/{id:[0-9]+}", r.removeFavorite).Methods("DELETE")

	// Store routes
	storesAPI := r.PathPrefix("/api/stores").Subrouter()
	storesAPI.HandleFunc("", r.listStores).Methods("GET")
	storesAPI.HandleFunc("/{slug}", r.getStore).Methods("GET")

	// Live update notifications
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(hub, w, req)
	})

	// Static storefront assets
	publicDir := os.Getenv("FRONTEND_DIR")
	if publicDir == "" {
		publicDir = "./public"
	}
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(publicDir)))

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "local",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "running",
		"updating":    r.engine.IsUpdating(),
		"wsClients":   r.hub.ClientCount(),
		"productSize": len(r.catalog.CurrentProducts()),
		"startedAt":   buildinfo.StartTime,
		"build": map[string]string{
			"time":   buildinfo.BuildTime,
			"commit": buildinfo.CommitHash,
		},
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
