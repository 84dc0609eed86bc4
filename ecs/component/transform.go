package component

import "github.com/milk9111/randpoly/geometry"

// Transform is the world pose of an entity. Rotation is in radians.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

func (t Transform) Position() geometry.Point {
	return geometry.Point{X: t.X, Y: t.Y}
}

// Apply maps a body-local point into world space.
func (t Transform) Apply(p geometry.Point) geometry.Point {
	return p.Rotate(t.Rotation).Add(t.Position())
}

var TransformComponent = NewComponent[Transform]()
