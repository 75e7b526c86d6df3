package handlers

import (
	"net/http"
	"time"
)

// updatePrices runs a price update cycle. The cooldown and freshness gates
// apply unless ?force=true.
func (r *Router) updatePrices(w http.ResponseWriter, req *http.Request) {
	var result interface{}
	if req.URL.Query().Get("force") == "true" {
		result = r.engine.TriggerUpdate(req.Context())
	} else {
		result = r.engine.CheckAndUpdate(req.Context())
	}
	respondJSON(w, http.StatusOK, result)
}

// getPriceStatus reports the engine state and the most recent cycle result
func (r *Router) getPriceStatus(w http.ResponseWriter, req *http.Request) {
	status := map[string]interface{}{
		"updating":   r.engine.IsUpdating(),
		"lastResult": r.engine.LastResult(),
	}
	if lastCheck := r.engine.LastCheck(); !lastCheck.IsZero() {
		status["lastCheck"] = lastCheck.UTC().Format(time.RFC3339)
	}
	respondJSON(w, http.StatusOK, status)
}

// getLastUpdate returns when prices were last persisted
func (r *Router) getLastUpdate(w http.ResponseWriter, req *http.Request) {
	last, ok := r.catalog.LastUpdateTime()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]interface{}{"updated": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"updated":   true,
		"timestamp": last.UTC().Format(time.RFC3339),
		"ageSecs":   int64(time.Since(last).Seconds()),
	})
}
