package geometry

import (
	"cmp"
	"math"
	"slices"
)

// Point is an (x, y) pair.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the polar angle in radians, in (-π, π].
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Rotate rotates p about the origin by angle radians.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// SignedArea is the shoelace area of the contour closed back to its first point.
// Counter-clockwise contours are positive.
func SignedArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Centroid returns the area centroid of the closed contour, falling back to the
// vertex mean for degenerate contours.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	area := SignedArea(pts)
	if math.Abs(area) < degenerateArea {
		var c Point
		for _, p := range pts {
			c = c.Add(p)
		}
		return c.Scale(1 / float64(len(pts)))
	}
	var cx, cy float64
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		f := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * f
		cy += (a.Y + b.Y) * f
	}
	return Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// Bounds returns the axis-aligned min and max corners.
func Bounds(pts []Point) (min, max Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

const (
	degenerateArea     = 1e-9
	convexityTolerance = 1e-10
)

// Degenerate reports whether the closed contour encloses no usable area.
func Degenerate(pts []Point) bool {
	return len(pts) < 3 || math.Abs(SignedArea(pts)) < degenerateArea
}

// ConvexHull returns the hull of pts in counter-clockwise order (y up),
// starting from the lowest-x point. Collinear and duplicate points are dropped,
// so the result matches the vertices a convex collider built from pts keeps.
func ConvexHull(pts []Point) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}
	sorted := append([]Point(nil), pts...)
	slices.SortFunc(sorted, func(a, b Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})

	hull := make([]Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= convexityTolerance {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= convexityTolerance {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Closed returns the contour with its first point appended, for consumers that
// draw the closing edge explicitly.
func Closed(pts []Point) []Point {
	if len(pts) < 2 {
		return append([]Point(nil), pts...)
	}
	out := make([]Point, 0, len(pts)+1)
	out = append(out, pts...)
	return append(out, pts[0])
}
