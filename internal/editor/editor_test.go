package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiroom-backend/internal/spatial"
)

// identity maps viewport coordinates 1:1 onto the canvas, which keeps
// the geometry in the tests readable.
var identity = &Transform{ScaleX: 1, ScaleY: 1}

func newTestEditor() *Editor {
	e := New(0)
	e.SetTransform(identity)
	return e
}

func TestPlacement(t *testing.T) {
	e := newTestEditor()

	e.StartPlacement("Stark")
	assert.Equal(t, "Stark", e.Placing())

	e.Click(200, 150)
	require.Len(t, e.Shapes(), 1)
	shape := e.Shapes()[0]
	assert.Equal(t, "Stark", shape.RoomName)
	assert.Equal(t, 0, shape.Floor)
	// Default 120x80 rectangle centered on the click point.
	assert.Equal(t, []spatial.Point{
		{X: 140, Y: 110},
		{X: 260, Y: 110},
		{X: 260, Y: 190},
		{X: 140, Y: 190},
	}, shape.Points)

	// Placement is a one-shot: the next click is an ordinary click.
	assert.Empty(t, e.Placing())
	e.Click(500, 500)
	assert.Len(t, e.Shapes(), 1)
}

func TestPlacement_ReplacesExistingRegion(t *testing.T) {
	e := newTestEditor()

	e.StartPlacement("Stark")
	e.Click(200, 150)
	e.StartPlacement("Stark")
	e.Click(400, 300)

	require.Len(t, e.Shapes(), 1, "at most one region per room per floor")
	assert.Equal(t, spatial.Point{X: 340, Y: 260}, e.Shapes()[0].Points[0])
}

func TestPlacement_SameRoomOnOtherFloorKept(t *testing.T) {
	e := newTestEditor()

	e.StartPlacement("Stark")
	e.Click(200, 150)

	e.SelectFloor(1)
	e.StartPlacement("Stark")
	e.Click(200, 150)

	assert.Len(t, e.Shapes(), 2)
}

func TestCancelPlacement(t *testing.T) {
	e := newTestEditor()

	e.StartPlacement("Stark")
	e.CancelPlacement()
	e.Click(200, 150)

	assert.Empty(t, e.Shapes())
}

func TestSelectFloorDisarmsPlacement(t *testing.T) {
	e := newTestEditor()

	e.StartPlacement("Stark")
	e.SelectFloor(2)

	assert.Empty(t, e.Placing())
	assert.Equal(t, 2, e.Floor())
}

func TestPointerEventsIgnoredWithoutTransform(t *testing.T) {
	e := New(0)

	e.StartPlacement("Stark")
	e.Click(200, 150)
	assert.Empty(t, e.Shapes(), "click without a mounted canvas must be ignored")
	assert.Equal(t, "Stark", e.Placing(), "placement stays armed")

	e.SetTransform(identity)
	e.Click(200, 150)
	require.Len(t, e.Shapes(), 1)

	e.SetTransform(nil)
	e.BeginDrag(0, 0)
	e.PointerMove(999, 999)
	e.EndDrag()
	assert.Equal(t, spatial.Point{X: 140, Y: 110}, e.Shapes()[0].Points[0])
}

func TestVertexDrag(t *testing.T) {
	e := newTestEditor()
	e.StartPlacement("Stark")
	e.Click(200, 150)

	e.BeginDrag(0, 2)
	assert.True(t, e.Dragging())
	e.PointerMove(300, 220)
	e.PointerMove(310, 230)
	e.EndDrag()
	assert.False(t, e.Dragging())

	assert.Equal(t, spatial.Point{X: 310, Y: 230}, e.Shapes()[0].Points[2])

	// Moves after release are ignored.
	e.PointerMove(50, 50)
	assert.Equal(t, spatial.Point{X: 310, Y: 230}, e.Shapes()[0].Points[2])
}

func TestVertexDrag_UsesTransform(t *testing.T) {
	e := New(0)
	// Canvas shown at half size, offset by (10, 20) in the viewport.
	e.SetTransform(&Transform{OffsetX: 10, OffsetY: 20, ScaleX: 2, ScaleY: 2})

	e.StartPlacement("Stark")
	e.Click(110, 120)
	// (110-10)*2 = 200, (120-20)*2 = 200 in canvas space.
	assert.Equal(t, spatial.Point{X: 140, Y: 160}, e.Shapes()[0].Points[0])
}

func TestSplitEdge(t *testing.T) {
	e := newTestEditor()
	e.shapes = []Shape{{
		RoomName: "Stark",
		Floor:    0,
		Points: []spatial.Point{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
	}}

	// Near the top edge, within threshold: inserted after vertex 0.
	require.True(t, e.SplitEdge(0, 50, 2))
	assert.Equal(t, []spatial.Point{
		{X: 0, Y: 0}, {X: 50, Y: 2}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
	}, e.shapes[0].Points)

	// Far from every edge: nothing happens.
	assert.False(t, e.SplitEdge(0, 50, 50))
	assert.Len(t, e.shapes[0].Points, 5)
}

func TestSplitEdge_ClosingEdge(t *testing.T) {
	e := newTestEditor()
	e.shapes = []Shape{{
		RoomName: "Stark",
		Floor:    0,
		Points: []spatial.Point{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
	}}

	// The left edge runs from the last vertex back to the first.
	require.True(t, e.SplitEdge(0, 2, 50))
	assert.Len(t, e.shapes[0].Points, 5)
	assert.Equal(t, spatial.Point{X: 2, Y: 50}, e.shapes[0].Points[4])
}

func TestDeleteVertex(t *testing.T) {
	e := newTestEditor()
	e.shapes = []Shape{{
		RoomName: "Stark",
		Floor:    0,
		Points: []spatial.Point{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
		},
	}}

	e.DeleteVertex(0, 1)
	assert.Len(t, e.shapes[0].Points, 3)

	// A polygon never drops below 3 vertices.
	e.DeleteVertex(0, 0)
	assert.Len(t, e.shapes[0].Points, 3)
}

func TestDeleteShape(t *testing.T) {
	e := newTestEditor()
	e.StartPlacement("Stark")
	e.Click(200, 150)
	e.StartPlacement("Pandora")
	e.Click(400, 300)
	require.Len(t, e.Shapes(), 2)

	e.DeleteShape(0)
	require.Len(t, e.Shapes(), 1)
	assert.Equal(t, "Pandora", e.Shapes()[0].RoomName)

	e.DeleteShape(5)
	assert.Len(t, e.Shapes(), 1)
}

func TestFloorShapes(t *testing.T) {
	e := newTestEditor()
	e.StartPlacement("Stark")
	e.Click(200, 150)
	e.SelectFloor(1)
	e.StartPlacement("Pandora")
	e.Click(200, 150)

	shapes := e.FloorShapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, "Pandora", shapes[0].RoomName)
}

func TestExport(t *testing.T) {
	e := newTestEditor()
	e.shapes = []Shape{
		{
			RoomName: "Stark",
			Floor:    0,
			Points: []spatial.Point{
				{X: 10, Y: 5}, {X: 110, Y: 8}, {X: 100, Y: 90}, {X: 12, Y: 80},
			},
		},
		{
			RoomName: "Pandora",
			Floor:    1,
			Points: []spatial.Point{
				{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 25, Y: 40},
			},
		},
	}

	exported := e.Export()
	require.Len(t, exported, 2)

	stark := exported["Stark"]
	assert.Equal(t, 0, stark.Floor)
	assert.Equal(t, e.shapes[0].Points, stark.Points)
	assert.Equal(t, 10.0, stark.X)
	assert.Equal(t, 5.0, stark.Y)
	assert.Equal(t, 100.0, stark.W)
	assert.Equal(t, 85.0, stark.H)

	pandora := exported["Pandora"]
	assert.Equal(t, 1, pandora.Floor)
	assert.Equal(t, 0.0, pandora.X)
	assert.Equal(t, 50.0, pandora.W)
	assert.Equal(t, 40.0, pandora.H)
}

func TestExport_BoundingBoxMatchesPoints(t *testing.T) {
	e := newTestEditor()
	e.StartPlacement("Stark")
	e.Click(300, 200)
	e.SplitEdge(0, 300, 161)
	e.BeginDrag(0, 1)
	e.PointerMove(305, 120)
	e.EndDrag()

	for name, region := range e.Export() {
		minX, minY := region.Points[0].X, region.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range region.Points {
			if p.X < minX {
				minX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		assert.Equal(t, minX, region.X, "region %s", name)
		assert.Equal(t, minY, region.Y, "region %s", name)
		assert.Equal(t, maxX-minX, region.W, "region %s", name)
		assert.Equal(t, maxY-minY, region.H, "region %s", name)
	}
}

func TestExportJSON_RoundTripsIntoSpatialRegions(t *testing.T) {
	e := newTestEditor()
	e.StartPlacement("Stark")
	e.Click(200, 150)

	data, err := e.ExportJSON()
	require.NoError(t, err)

	var rooms map[string]spatial.Region
	require.NoError(t, json.Unmarshal(data, &rooms))
	assert.Equal(t, e.Export(), rooms)
}
