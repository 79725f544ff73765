package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// engineState reports whether the boundary holds a live engine.
type engineState interface {
	Initialized() bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	engine  engineState
	db      dbPinger // nil when no database is configured
	version string
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(engine engineState, db dbPinger, version string) *HealthHandler {
	return &HealthHandler{engine: engine, db: db, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready is 200 once the engine is initialized, 503 before.
func (h *HealthHandler) Ready(w http.ResponseWriter, _ *http.Request) {
	if !h.engine.Initialized() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports the engine and, when configured, the database with its
// ping latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus, 2)
	overall := "ok"

	if h.engine.Initialized() {
		components["engine"] = CompStatus{Status: "ok"}
	} else {
		components["engine"] = CompStatus{Status: "down"}
		overall = "down"
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		start := time.Now()
		if err := h.db.Ping(ctx); err != nil {
			components["database"] = CompStatus{Status: "down"}
			overall = "down"
		} else {
			components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
		}
	}

	status := http.StatusOK
	if overall != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
