package entity

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/geometry"
	"golang.org/x/image/colornames"
)

var ErrDegeneratePolygon = errors.New("build entity: polygon encloses no area")

// Label colours used when PolygonOptions.LabelColor is nil.
var (
	ExplicitLabelColor color.Color = color.White
	AutoLabelColor     color.Color = colornames.Gray
)

// PolygonOptions describes a polygon entity. Points are in generator space and
// are re-centred on their centroid so the body rotates about its centre of mass.
type PolygonOptions struct {
	Points      []geometry.Point
	X           float64
	Y           float64
	Label       string
	LabelColor  color.Color
	Color       color.Color
	Closed      bool
	StrokeWidth float32
	Density     float64
	Friction    float64
	Elasticity  float64
	Spawn       *component.Spawned
}

// BuildPolygon creates a polygon entity with a dynamic body.
func BuildPolygon(w *ecs.World, opts PolygonOptions) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if geometry.Degenerate(opts.Points) {
		return 0, fmt.Errorf("%w (%d points)", ErrDegeneratePolygon, len(opts.Points))
	}
	if opts.Density <= 0 {
		opts.Density = 1
	}

	centre := geometry.Centroid(opts.Points)
	local := make([]geometry.Point, len(opts.Points))
	for i, p := range opts.Points {
		local[i] = p.Sub(centre)
	}

	e := ecs.CreateEntity(w)
	add := []func() error{
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: opts.X + centre.X, Y: opts.Y + centre.Y})
		},
		func() error {
			return ecs.Add(w, e, component.PolygonComponent.Kind(), &component.Polygon{
				Points:      local,
				Closed:      opts.Closed,
				StrokeWidth: opts.StrokeWidth,
				HullVerts:   len(geometry.ConvexHull(local)),
			})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Density:    opts.Density,
				Friction:   opts.Friction,
				Elasticity: opts.Elasticity,
			})
		},
		func() error {
			return ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{Text: opts.Label, Color: labelColor(opts)})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerPolygon})
		},
	}
	if opts.Color != nil {
		add = append(add, func() error {
			return ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Color: opts.Color})
		})
	}
	if opts.Spawn != nil {
		spawn := *opts.Spawn
		add = append(add, func() error {
			return ecs.Add(w, e, component.SpawnedComponent.Kind(), &spawn)
		})
	}

	for _, fn := range add {
		if err := fn(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: polygon: %w", err)
		}
	}
	return e, nil
}

// GroundOptions describes a static box centred on (X, Y).
type GroundOptions struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Friction float64
	Color    color.Color
}

// BuildGround creates a static ground box.
func BuildGround(w *ecs.World, opts GroundOptions) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return 0, fmt.Errorf("build entity: ground size %vx%v must be positive", opts.Width, opts.Height)
	}

	e := ecs.CreateEntity(w)
	add := []func() error{
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: opts.X, Y: opts.Y})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:    opts.Width,
				Height:   opts.Height,
				Friction: opts.Friction,
				Static:   true,
			})
		},
		func() error {
			return ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerGround})
		},
	}
	if opts.Color != nil {
		add = append(add, func() error {
			return ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Color: opts.Color})
		})
	}
	for _, fn := range add {
		if err := fn(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: ground: %w", err)
		}
	}
	return e, nil
}

func labelColor(opts PolygonOptions) color.Color {
	switch {
	case opts.LabelColor != nil:
		return opts.LabelColor
	case opts.Label == "":
		return AutoLabelColor
	default:
		return ExplicitLabelColor
	}
}

// AutoLabel is the label shown for a polygon without explicit text. It counts
// the collider's hull vertices, not the drawn outline's points.
func AutoLabel(p *component.Polygon) string {
	if p == nil {
		return ""
	}
	n := p.HullVerts
	if n == 0 {
		n = len(geometry.ConvexHull(p.Points))
	}
	return fmt.Sprintf("%d-gon", n)
}
