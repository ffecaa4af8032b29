package server

import (
	"net/http"

	"github.com/desertthunder/airwave/internal/storage"
)

// HealthHandler reports whether the configured storage engine is reachable.
type HealthHandler struct {
	driver storage.Driver
}

// NewHealthHandler creates a HealthHandler for the given driver.
func NewHealthHandler(driver storage.Driver) *HealthHandler {
	return &HealthHandler{driver: driver}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"GET /healthz"}
}

// ServeHTTP pings the driver and reports 200 or 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.driver.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: err.Error()})
		return
	}
	writeMessage(w, "ok")
}
