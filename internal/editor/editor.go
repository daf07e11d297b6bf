// Package editor implements the interaction core of the region editor,
// the offline tool that authors the spatial registry. It is the logic
// behind the canvas: placement, vertex dragging, edge splitting, and
// export. Rendering and input capture belong to the frontend driving it.
package editor

import (
	"encoding/json"

	"epiroom-backend/internal/spatial"
)

// Default rectangle dropped on placement, as half-extents around the
// click point.
const (
	placeHalfWidth  = 60
	placeHalfHeight = 40
)

// EdgeSplitThreshold is the hit distance, in canvas units, within which
// a point counts as "on" a polygon edge.
const EdgeSplitThreshold = 12

// Shape is one authored region: a polygon tied to a room on a floor.
type Shape struct {
	RoomName string          `json:"roomName"`
	Floor    int             `json:"floor"`
	Points   []spatial.Point `json:"points"`
}

// Transform maps viewport (pointer) coordinates into a floor's canvas
// coordinate space. It is derived from the mounted canvas geometry by
// the frontend; while absent, pointer events cannot be interpreted.
type Transform struct {
	OffsetX float64
	OffsetY float64
	ScaleX  float64
	ScaleY  float64
}

// ToCanvas converts a viewport position to canvas coordinates.
func (t Transform) ToCanvas(x, y float64) spatial.Point {
	return spatial.Point{
		X: (x - t.OffsetX) * t.ScaleX,
		Y: (y - t.OffsetY) * t.ScaleY,
	}
}

type dragState struct {
	shapeIdx int
	ptIdx    int
}

// Editor holds the authoring state for all floors. Single-threaded by
// contract: every operation is a synchronous pointer/keyboard event.
type Editor struct {
	shapes    []Shape
	floor     int
	placing   string
	drag      *dragState
	transform *Transform
}

// New creates an editor positioned on the given floor.
func New(floor int) *Editor {
	return &Editor{floor: floor}
}

// SetTransform installs the viewport-to-canvas transform. Passing nil
// (canvas unmounted) makes all pointer operations no-ops.
func (e *Editor) SetTransform(t *Transform) {
	e.transform = t
}

// SelectFloor switches the floor being edited and disarms any pending
// placement, matching a floor change mid-gesture.
func (e *Editor) SelectFloor(floor int) {
	e.floor = floor
	e.placing = ""
}

// Floor returns the floor currently being edited.
func (e *Editor) Floor() int { return e.floor }

// Placing returns the room armed for placement, or "" when none.
func (e *Editor) Placing() string { return e.placing }

// StartPlacement arms the next canvas click to drop a default rectangle
// for the named room.
func (e *Editor) StartPlacement(roomName string) {
	e.placing = roomName
}

// CancelPlacement clears placement mode without creating a region. This
// is the escape gesture.
func (e *Editor) CancelPlacement() {
	e.placing = ""
}

// Click handles a primary click on the canvas at viewport coordinates.
// With placement armed it creates a default rectangle centered on the
// click point, replacing any existing shape for the same room and floor
// (at most one region per room per floor; last write wins). Ignored
// without a transform or outside placement mode.
func (e *Editor) Click(viewportX, viewportY float64) {
	if e.transform == nil || e.placing == "" {
		return
	}
	p := e.transform.ToCanvas(viewportX, viewportY)
	shape := Shape{
		RoomName: e.placing,
		Floor:    e.floor,
		Points: []spatial.Point{
			{X: p.X - placeHalfWidth, Y: p.Y - placeHalfHeight},
			{X: p.X + placeHalfWidth, Y: p.Y - placeHalfHeight},
			{X: p.X + placeHalfWidth, Y: p.Y + placeHalfHeight},
			{X: p.X - placeHalfWidth, Y: p.Y + placeHalfHeight},
		},
	}

	kept := e.shapes[:0]
	for _, s := range e.shapes {
		if s.RoomName == shape.RoomName && s.Floor == shape.Floor {
			continue
		}
		kept = append(kept, s)
	}
	e.shapes = append(kept, shape)
	e.placing = ""
}

// BeginDrag starts tracking a vertex under the pointer. Only one vertex
// may be dragged at a time; an out-of-range reference is ignored.
func (e *Editor) BeginDrag(shapeIdx, ptIdx int) {
	if shapeIdx < 0 || shapeIdx >= len(e.shapes) {
		return
	}
	if ptIdx < 0 || ptIdx >= len(e.shapes[shapeIdx].Points) {
		return
	}
	e.drag = &dragState{shapeIdx: shapeIdx, ptIdx: ptIdx}
}

// PointerMove updates the dragged vertex to follow the pointer. Ignored
// without an active drag or a transform.
func (e *Editor) PointerMove(viewportX, viewportY float64) {
	if e.drag == nil || e.transform == nil {
		return
	}
	e.shapes[e.drag.shapeIdx].Points[e.drag.ptIdx] = e.transform.ToCanvas(viewportX, viewportY)
}

// EndDrag releases the dragged vertex.
func (e *Editor) EndDrag() {
	e.drag = nil
}

// Dragging reports whether a vertex drag is in progress.
func (e *Editor) Dragging() bool { return e.drag != nil }

// SplitEdge inserts a new vertex on the polygon edge nearest to the
// given viewport point, immediately after the edge's start vertex. The
// perpendicular projection onto each edge, clamped to the segment,
// decides whether the point is within EdgeSplitThreshold; the inserted
// vertex is the pointed-at position itself. Returns false when no edge
// is close enough or the event cannot be interpreted.
func (e *Editor) SplitEdge(shapeIdx int, viewportX, viewportY float64) bool {
	if e.transform == nil || shapeIdx < 0 || shapeIdx >= len(e.shapes) {
		return false
	}
	p := e.transform.ToCanvas(viewportX, viewportY)
	shape := &e.shapes[shapeIdx]
	after := edgeInsertIndex(shape.Points, p, EdgeSplitThreshold)
	if after < 0 {
		return false
	}
	pts := shape.Points
	pts = append(pts[:after+1], append([]spatial.Point{p}, pts[after+1:]...)...)
	shape.Points = pts
	return true
}

// DeleteVertex removes one vertex from a polygon. Refused when the
// polygon would drop below 3 vertices: a region must remain a valid
// simple shape.
func (e *Editor) DeleteVertex(shapeIdx, ptIdx int) {
	if shapeIdx < 0 || shapeIdx >= len(e.shapes) {
		return
	}
	shape := &e.shapes[shapeIdx]
	if len(shape.Points) <= 3 || ptIdx < 0 || ptIdx >= len(shape.Points) {
		return
	}
	shape.Points = append(shape.Points[:ptIdx], shape.Points[ptIdx+1:]...)
}

// DeleteShape removes an entire region by index.
func (e *Editor) DeleteShape(idx int) {
	if idx < 0 || idx >= len(e.shapes) {
		return
	}
	e.shapes = append(e.shapes[:idx], e.shapes[idx+1:]...)
}

// Shapes returns all authored shapes across floors.
func (e *Editor) Shapes() []Shape {
	return e.shapes
}

// FloorShapes returns the shapes on the floor currently being edited.
func (e *Editor) FloorShapes() []Shape {
	var out []Shape
	for _, s := range e.shapes {
		if s.Floor == e.floor {
			out = append(out, s)
		}
	}
	return out
}

// Export serializes all authored shapes into the spatial registry's
// room-map shape. Each region's x/y/w/h is the axis-aligned bounding
// box of its points.
func (e *Editor) Export() map[string]spatial.Region {
	out := make(map[string]spatial.Region, len(e.shapes))
	for _, s := range e.shapes {
		x, y, w, h := boundingRect(s.Points)
		out[s.RoomName] = spatial.Region{
			Floor:  s.Floor,
			Points: s.Points,
			X:      x,
			Y:      y,
			W:      w,
			H:      h,
		}
	}
	return out
}

// ExportJSON renders the export as indented JSON, the form pasted into
// the regions config file.
func (e *Editor) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e.Export(), "", "  ")
}
