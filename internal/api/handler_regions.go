package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"epiroom-backend/internal/spatial"
)

// floorRegionsResponse carries one floor's canvas extents and regions,
// everything the rendering layer needs to set up its coordinate space.
type floorRegionsResponse struct {
	Floor  int                       `json:"floor"`
	Canvas spatial.Canvas            `json:"canvas"`
	Rooms  map[string]spatial.Region `json:"rooms"`
}

// GetRegions handles GET /api/regions, serving the whole spatial
// registry.
func (h *Handler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, h.regions)
}

// GetFloorRegions handles GET /api/regions/:floor.
func (h *Handler) GetFloorRegions(c *gin.Context) {
	floor, err := strconv.Atoi(c.Param("floor"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid floor number"})
		return
	}

	canvas, ok := h.regions.CanvasFor(floor)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown floor"})
		return
	}

	c.JSON(http.StatusOK, floorRegionsResponse{
		Floor:  floor,
		Canvas: canvas,
		Rooms:  h.regions.FloorRegions(floor),
	})
}
