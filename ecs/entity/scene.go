package entity

import (
	"fmt"
	"image/color"
	"log"

	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/geometry"
	"github.com/milk9111/randpoly/prefabs"
)

// BuildScene creates the ground boxes and the placed polygons of a scene.
// Generation errors abort the build; a degenerate placed polygon is logged and
// skipped.
func BuildScene(w *ecs.World, scene *prefabs.SceneSpec, src geometry.NormalSource) error {
	if w == nil || scene == nil {
		return fmt.Errorf("build scene: nil world or scene")
	}

	for i, g := range scene.Ground {
		_, err := BuildGround(w, GroundOptions{
			X:        g.X,
			Y:        g.Y,
			Width:    g.Width,
			Height:   g.Height,
			Friction: g.Friction,
			Color:    g.Color.ColorOr(color.Gray{Y: 0x60}),
		})
		if err != nil {
			return fmt.Errorf("build scene %q: ground[%d]: %w", scene.Name, i, err)
		}
	}

	for i, placed := range scene.Polygons {
		params := scene.Generator.Params()
		if placed.Generator != nil {
			params = placed.Generator.Params()
		}
		points, err := geometry.Generate(src, params)
		if err != nil {
			return fmt.Errorf("build scene %q: polygons[%d]: %w", scene.Name, i, err)
		}

		opts := PolygonFromScene(scene, points)
		opts.X = placed.X
		opts.Y = placed.Y
		opts.Label = placed.Label
		opts.LabelColor = placed.LabelColor.ColorOr(nil)
		opts.Color = placed.Color.ColorOr(opts.Color)
		opts.Spawn = &component.Spawned{Index: i, Params: params}

		if _, err := BuildPolygon(w, opts); err != nil {
			log.Printf("build scene %q: skipping polygons[%d]: %v", scene.Name, i, err)
		}
	}
	return nil
}

// PolygonFromScene fills body and stroke settings from the scene defaults.
func PolygonFromScene(scene *prefabs.SceneSpec, points []geometry.Point) PolygonOptions {
	closed := true
	if scene.Polygon.Closed != nil {
		closed = *scene.Polygon.Closed
	}
	return PolygonOptions{
		Points:      points,
		Color:       scene.Polygon.Color.ColorOr(nil),
		Closed:      closed,
		StrokeWidth: scene.Polygon.StrokeWidth,
		Density:     scene.Polygon.Density,
		Friction:    scene.Polygon.Friction,
		Elasticity:  scene.Polygon.Elasticity,
	}
}
