package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kimphuquy/silvershop/internal/stores"
)

// storeView is a store plus its live open/closed state.
type storeView struct {
	stores.Store
	OpenNow bool `json:"openNow"`
}

// listStores returns all store locations. ?active=true filters to operating
// stores only.
func (r *Router) listStores(w http.ResponseWriter, req *http.Request) {
	var list []stores.Store
	if req.URL.Query().Get("active") == "true" {
		list = stores.Active()
	} else {
		list = stores.All()
	}

	now := time.Now()
	views := make([]storeView, 0, len(list))
	for _, s := range list {
		views = append(views, storeView{Store: s, OpenNow: stores.IsOpen(s, now)})
	}
	respondJSON(w, http.StatusOK, views)
}

// getStore returns one store by slug
func (r *Router) getStore(w http.ResponseWriter, req *http.Request) {
	s, ok := stores.BySlug(mux.Vars(req)["slug"])
	if !ok {
		respondError(w, http.StatusNotFound, "Store not found")
		return
	}
	respondJSON(w, http.StatusOK, storeView{Store: s, OpenNow: stores.IsOpen(s, time.Now())})
}
