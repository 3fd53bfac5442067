package http

import (
	"encoding/json"
	"net/http"

	"github.com/courtneynewtocode/career-compass/internal/analytics"
)

// POST /events
func TrackEventHandler(events EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e analytics.Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if !e.Name.Known() {
			http.Error(w, "unknown event: "+string(e.Name), 400)
			return
		}
		if err := events.Append(r.Context(), e); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// GET /analytics/stats
func AnalyticsStatsHandler(events EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := events.Stats(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}
