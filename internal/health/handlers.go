package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync/atomic"
	"time"
)

// Probe checks one dependency within the given timeout.
type Probe func(ctx context.Context) error

// Handler exposes HTTP handlers for the health endpoints. Probes are
// registered only for dependencies that are actually configured; a
// memory-only deployment with no Postgres or Redis has none and is always
// ready once serving.
type Handler struct {
	Probes  map[string]Probe
	Timeout time.Duration
}

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady flips the readiness gate. Shutdown sets it to false so load
// balancers drain the instance before connections close.
func SetReady(v bool) { ready.Store(v) }

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the gate and dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !ready.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	status := make(map[string]string, len(h.Probes))
	healthy := true
	for _, name := range h.probeNames() {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
		err := h.Probes[name](ctx)
		cancel()
		if err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) probeNames() []string {
	names := make([]string, 0, len(h.Probes))
	for name := range h.Probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h Handler) timeout() time.Duration {
	if h.Timeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.Timeout
}
