package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/marketpulse-systems/itchbook/internal/engine"
	"github.com/marketpulse-systems/itchbook/model"
)

// newBookHandler returns an http.HandlerFunc serving the current in-memory
// depth for one symbol, read straight off the live engine rather than the
// Redis cache — this is the strongly-consistent read path; the cache exists
// for readers who don't need it.
func newBookHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := r.PathValue("symbol")
		depth, ok := eng.Snapshot(symbol, 50)
		if !ok {
			http.Error(w, "unknown symbol", http.StatusNotFound)
			return
		}

		snap := model.BookSnapshot{
			Symbol:    symbol,
			Bids:      convertLevels(depth.Bids),
			Asks:      convertLevels(depth.Asks),
			CreatedAt: time.Now().UTC(),
			Reason:    "query",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snap)
	}
}
