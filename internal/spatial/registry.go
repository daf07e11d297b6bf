// Package spatial holds the per-floor overlay mapping: room name to a
// polygon in the floor's canvas coordinate space. The data is authored
// offline with the region editor and treated as immutable configuration
// at runtime.
package spatial

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"epiroom-backend/internal/floorplan"
)

// Point is a vertex in a floor's canvas coordinate space. Coordinates
// are absolute canvas units, never normalized percentages — percentage
// placement distorts when the background image's aspect ratio doesn't
// match the viewport.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region is a room's drawable overlay: the raw polygon plus its
// axis-aligned bounding box, which is always derived from the points.
type Region struct {
	Floor  int     `json:"floor"`
	Points []Point `json:"points"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// Canvas is one floor's coordinate-space extents.
type Canvas struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Registry is the loaded spatial configuration for the whole building.
type Registry struct {
	Canvas map[string]Canvas `json:"canvas"`
	Rooms  map[string]Region `json:"rooms"`
}

// LoadRegistry reads the spatial registry from the region editor's JSON
// export format.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to decode spatial registry: %w", err)
	}
	for name, region := range reg.Rooms {
		if len(region.Points) < 3 {
			return nil, fmt.Errorf("region %q: polygon has %d points, need at least 3", name, len(region.Points))
		}
	}
	return &reg, nil
}

// RegionFor looks up a room's overlay region by exact name match. A
// missing room is not an error: it is simply drawn without an overlay.
func (r *Registry) RegionFor(roomName string) (Region, bool) {
	region, ok := r.Rooms[roomName]
	return region, ok
}

// CanvasFor returns the coordinate-space extents for a floor.
func (r *Registry) CanvasFor(floor int) (Canvas, bool) {
	c, ok := r.Canvas[strconv.Itoa(floor)]
	return c, ok
}

// FloorRegions returns the subset of regions on one floor.
func (r *Registry) FloorRegions(floor int) map[string]Region {
	out := make(map[string]Region)
	for name, region := range r.Rooms {
		if region.Floor == floor {
			out[name] = region
		}
	}
	return out
}

// Validate cross-checks the spatial table against the room registry and
// fails when a bookable room has no mapped region or a mapped floor has
// no canvas extents. Offices may stay unmapped: they are never overlaid
// with status. Run at startup so a registry drift is caught immediately
// instead of silently rendering unmapped rooms.
func (r *Registry) Validate(rooms *floorplan.Registry) error {
	var missing []string
	for _, name := range rooms.BookableRooms() {
		if _, ok := r.Rooms[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("bookable rooms with no mapped region: %s", strings.Join(missing, ", "))
	}
	for name, region := range r.Rooms {
		if _, ok := r.CanvasFor(region.Floor); !ok {
			return fmt.Errorf("region %q: no canvas extents for floor %d", name, region.Floor)
		}
	}
	return nil
}
