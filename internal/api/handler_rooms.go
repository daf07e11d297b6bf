package api

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// GetRooms handles GET /api/rooms?startDate=...&endDate=... by proxying
// the upstream planning endpoint for the requested date range. The
// upstream body is returned verbatim and never cached so the dashboard
// always sees real-time data.
func (h *Handler) GetRooms(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required"})
		return
	}

	u, err := url.Parse(h.upstream.PlanningURL)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	q := u.Query()
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range h.upstream.Headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Propagate the upstream status, not its body.
		c.AbortWithStatusJSON(resp.StatusCode, gin.H{"error": "Failed to fetch room data"})
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Header("Cache-Control", "no-store, max-age=0")
	c.Data(resp.StatusCode, "application/json", body)
}
