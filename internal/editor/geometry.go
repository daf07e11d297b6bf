package editor

import (
	"math"

	"epiroom-backend/internal/spatial"
)

// distanceToSegment returns the distance from p to segment ab, using the
// perpendicular projection of p clamped to the segment.
func distanceToSegment(p, a, b spatial.Point) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	len2 := abx*abx + aby*aby
	if len2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / len2
	t = math.Max(0, math.Min(1, t))
	projX := a.X + t*abx
	projY := a.Y + t*aby
	return math.Hypot(p.X-projX, p.Y-projY)
}

// edgeInsertIndex finds the polygon edge nearest to p within threshold
// and returns the index of the edge's start vertex, or -1. Edges are
// tested in winding order, including the closing edge back to the first
// vertex; the first hit wins.
func edgeInsertIndex(poly []spatial.Point, p spatial.Point, threshold float64) int {
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		if distanceToSegment(p, a, b) <= threshold {
			return i
		}
	}
	return -1
}

// boundingRect computes the axis-aligned bounding box of a point list.
func boundingRect(pts []spatial.Point) (x, y, w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX - minX, maxY - minY
}
