package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
)

// Probe reports whether one dependency is reachable.
type Probe func(context.Context) error

// Healthcheck aggregates named probes into a readiness handler: 200 when all
// pass, 503 with the failing names otherwise.
func Healthcheck(probes map[string]Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		results := make(map[string]string, len(probes))
		for name, probe := range probes {
			if err := probe(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(results)
	}
}
