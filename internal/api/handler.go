package api

import (
	"net/http"
	"time"

	"epiroom-backend/config"
	"epiroom-backend/internal/floorplan"
	"epiroom-backend/internal/spatial"
	"epiroom-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	snap     *store.Snapshot
	rooms    *floorplan.Registry
	regions  *spatial.Registry
	upstream config.UpstreamConfig
	client   *http.Client
}

// NewHandler creates a new API handler.
func NewHandler(snap *store.Snapshot, rooms *floorplan.Registry, regions *spatial.Registry, upstream config.UpstreamConfig) *Handler {
	return &Handler{
		snap:     snap,
		rooms:    rooms,
		regions:  regions,
		upstream: upstream,
		client: &http.Client{
			Timeout: time.Duration(upstream.TimeoutSeconds) * time.Second,
		},
	}
}
