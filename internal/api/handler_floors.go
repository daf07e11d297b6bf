package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"epiroom-backend/internal/model"
)

// floorsResponse is the dashboard's data feed: the latest derived floor
// listings plus when they were fetched.
type floorsResponse struct {
	FetchedAt time.Time            `json:"fetchedAt"`
	Floors    []model.FloorListing `json:"floors"`
}

// GetFloors handles GET /api/floors.
func (h *Handler) GetFloors(c *gin.Context) {
	listings, fetchedAt, ok := h.snap.Current()
	if !ok {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "No room data available yet"})
		return
	}
	c.JSON(http.StatusOK, floorsResponse{
		FetchedAt: fetchedAt,
		Floors:    listings,
	})
}

// GetRegistry handles GET /api/registry, serving the static room/floor
// configuration. Immutable at runtime, so cacheable.
func (h *Handler) GetRegistry(c *gin.Context) {
	c.JSON(http.StatusOK, h.rooms)
}
