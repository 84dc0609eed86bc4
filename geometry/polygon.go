package geometry

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// ErrInvalidParameter is returned when generator parameters cannot produce a polygon.
var ErrInvalidParameter = errors.New("geometry: invalid parameter")

// NormalSource yields standard normal samples (mean 0, stddev 1).
// *rand.Rand from math/rand/v2 satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// Params controls RandPoly.
type Params struct {
	Verts      int     `yaml:"verts"`
	MeanRadius float64 `yaml:"mean_radius"`
	RadiusStd  float64 `yaml:"radius_std"`
	PhaseStd   float64 `yaml:"phase_std"`
}

// Validate reports ErrInvalidParameter for a vertex count below 2 or a
// non-positive mean radius.
func (p Params) Validate() error {
	if p.Verts < 2 {
		return fmt.Errorf("%w: verts must be >= 2, got %d", ErrInvalidParameter, p.Verts)
	}
	if !(p.MeanRadius > 0) {
		return fmt.Errorf("%w: mean radius must be > 0, got %v", ErrInvalidParameter, p.MeanRadius)
	}
	return nil
}

// Vertex is a generated point together with the phase and radius it was built from.
type Vertex struct {
	Point
	Phase  float64
	Radius float64
}

// Vertices walks a noisy circle centred on the origin and yields Verts-1
// vertices in non-decreasing phase order. The contour is left open.
//
// Each vertex draws two samples from src, phase first. Ranging over the
// returned sequence a second time draws fresh samples and keeps the phase
// floor of the previous walk.
func Vertices(src NormalSource, p Params) (iter.Seq[Vertex], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}

	lastPhase := 0.0
	return func(yield func(Vertex) bool) {
		for i := 0; i < p.Verts-1; i++ {
			// divide by Verts, leaving the closing edge its own gap
			fract := float64(i) / float64(p.Verts)
			phase := math.Max(fract+src.NormFloat64()*p.PhaseStd, lastPhase)
			lastPhase = phase

			radius := math.Max(p.MeanRadius+src.NormFloat64()*p.RadiusStd, 0)

			angle := 2 * math.Pi * phase
			v := Vertex{
				Point:  Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)},
				Phase:  phase,
				Radius: radius,
			}
			if !yield(v) {
				return
			}
		}
	}, nil
}

// RandPoly yields the open contour of a randomly perturbed circle.
func RandPoly(src NormalSource, p Params) (iter.Seq[Point], error) {
	verts, err := Vertices(src, p)
	if err != nil {
		return nil, err
	}
	return func(yield func(Point) bool) {
		for v := range verts {
			if !yield(v.Point) {
				return
			}
		}
	}, nil
}

// Generate collects RandPoly into a slice.
func Generate(src NormalSource, p Params) ([]Point, error) {
	seq, err := RandPoly(src, p)
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, p.Verts-1)
	for pt := range seq {
		out = append(out, pt)
	}
	return out, nil
}
