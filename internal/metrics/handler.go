package metrics

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler serves the current snapshot as JSON.
func (c *Collector) Handler(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(c.Snapshot(service)); err != nil {
			c.logger.Error("Failed to encode metrics snapshot", slog.Any("err", err))
		}
	}
}
