package entity

import (
	"image/color"
	"testing"

	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/geometry"
	"github.com/milk9111/randpoly/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPolygonRecentres(t *testing.T) {
	w := ecs.NewWorld()
	points := []geometry.Point{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30}}

	e, err := BuildPolygon(w, PolygonOptions{Points: points, X: 100, Y: 50, Closed: true, Color: color.White})
	require.NoError(t, err)

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 120, tr.X, 1e-9)
	assert.InDelta(t, 70, tr.Y, 1e-9)

	poly, ok := ecs.Get(w, e, component.PolygonComponent.Kind())
	require.True(t, ok)
	centre := geometry.Centroid(poly.Points)
	assert.InDelta(t, 0, centre.X, 1e-9)
	assert.InDelta(t, 0, centre.Y, 1e-9)
	assert.Equal(t, geometry.Point{X: -10, Y: -10}, poly.Points[0])

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1.0, body.Density)
	assert.False(t, body.Static)

	assert.True(t, ecs.Has(w, e, component.TintComponent.Kind()))
	assert.False(t, ecs.Has(w, e, component.SpawnedComponent.Kind()))

	// caller's slice is left alone
	assert.Equal(t, geometry.Point{X: 10, Y: 10}, points[0])
}

func TestBuildPolygonRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []geometry.Point
	}{
		{"empty", nil},
		{"two points", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{"collinear", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildPolygon(w, PolygonOptions{Points: tt.points})
			require.ErrorIs(t, err, ErrDegeneratePolygon)
			assert.Equal(t, 0, w.Len())
		})
	}
}

func TestBuildGround(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildGround(w, GroundOptions{X: 5, Y: 6, Width: 100, Height: 10})
	require.NoError(t, err)

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.True(t, body.Static)
	assert.Equal(t, 100.0, body.Width)
	assert.True(t, ecs.Has(w, e, component.GroundTagComponent.Kind()))
	assert.False(t, ecs.Has(w, e, component.TintComponent.Kind()))

	_, err = BuildGround(w, GroundOptions{Width: 0, Height: 10})
	require.Error(t, err)
}

func TestAutoLabelCountsHull(t *testing.T) {
	// a square with one vertex pushed inward: five points, four on the hull
	dented := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 5}, {X: 0, Y: 10}}

	w := ecs.NewWorld()
	e, err := BuildPolygon(w, PolygonOptions{Points: dented})
	require.NoError(t, err)
	poly, ok := ecs.Get(w, e, component.PolygonComponent.Kind())
	require.True(t, ok)

	assert.Len(t, poly.Points, 5)
	assert.Equal(t, 4, poly.HullVerts)
	assert.Equal(t, "4-gon", AutoLabel(poly))
	assert.Equal(t, "4-gon", AutoLabel(&component.Polygon{Points: dented}))
	assert.Equal(t, "", AutoLabel(nil))
}

func TestLabelColors(t *testing.T) {
	tests := []struct {
		name  string
		opts  PolygonOptions
		color color.Color
	}{
		{"auto", PolygonOptions{}, AutoLabelColor},
		{"explicit", PolygonOptions{Label: "aBc"}, ExplicitLabelColor},
		{"override", PolygonOptions{Label: "aBc", LabelColor: color.Black}, color.Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			tt.opts.Points = []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
			e, err := BuildPolygon(w, tt.opts)
			require.NoError(t, err)
			label, ok := ecs.Get(w, e, component.LabelComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, tt.color, label.Color)
		})
	}
}

func TestBuildDefaultScene(t *testing.T) {
	scene, err := prefabs.LoadSceneSpec(prefabs.DefaultScene)
	require.NoError(t, err)

	w := ecs.NewWorld()
	require.NoError(t, BuildScene(w, scene, common.NewSource(scene.Seed.Value)))

	assert.Len(t, w.Query(component.GroundTagComponent.Kind()), len(scene.Ground))
	polys := w.Query(component.SpawnedComponent.Kind())
	require.Len(t, polys, len(scene.Polygons))

	labelled := 0
	for _, e := range polys {
		spawned, _ := ecs.Get(w, e, component.SpawnedComponent.Kind())
		placed := scene.Polygons[spawned.Index]
		poly, _ := ecs.Get(w, e, component.PolygonComponent.Kind())

		want := scene.Generator.Params()
		if placed.Generator != nil {
			want = placed.Generator.Params()
		}
		assert.Equal(t, want, spawned.Params)
		assert.Len(t, poly.Points, want.Verts-1)

		label, _ := ecs.Get(w, e, component.LabelComponent.Kind())
		if label.Text != "" {
			labelled++
			assert.Equal(t, placed.Label, label.Text)
		}
	}
	assert.Equal(t, 1, labelled)
}

func TestBuildSceneNil(t *testing.T) {
	require.Error(t, BuildScene(nil, &prefabs.SceneSpec{}, common.NewSource(1)))
	require.Error(t, BuildScene(ecs.NewWorld(), nil, common.NewSource(1)))
}
