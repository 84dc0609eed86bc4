package component

import "github.com/milk9111/randpoly/geometry"

// Polygon holds a contour in body-local coordinates. Closed draws the edge
// from the last point back to the first. HullVerts is the vertex count of the
// convex collider built from Points.
type Polygon struct {
	Points      []geometry.Point
	Closed      bool
	StrokeWidth float32
	HullVerts   int
}

var PolygonComponent = NewComponent[Polygon]()
