package prefabs

import (
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/geometry"
)

func TestLoadEmbeddedScenes(t *testing.T) {
	for _, name := range []string{DefaultScene, "scene_scripted.yaml", "prefabs/scene.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadSceneSpec(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
			assert.NotNil(t, spec.Gravity)
			assert.NotEmpty(t, spec.Ground)
		})
	}
}

func TestDefaultSceneContents(t *testing.T) {
	spec, err := LoadSceneSpec(DefaultScene)
	require.NoError(t, err)

	assert.Equal(t, common.ParseSeed("aBc"), spec.Seed.Value)
	assert.True(t, spec.Seed.Set)
	require.Len(t, spec.Polygons, 3)
	assert.Equal(t, "aBc", spec.Polygons[0].Label)
	require.NotNil(t, spec.Polygons[0].Generator)
	assert.Equal(t, geometry.Params{Verts: 30, MeanRadius: 100, RadiusStd: 15, PhaseStd: 0.01}, spec.Polygons[0].Generator.Params())
	assert.Nil(t, spec.Polygons[1].Generator)
	assert.True(t, *spec.Polygon.Closed)
}

func TestDefaultsApplied(t *testing.T) {
	var spec SceneSpec
	require.NoError(t, yaml.Unmarshal([]byte("generator: {verts: 5, mean_radius: 3}"), &spec))
	spec.applyDefaults()

	assert.Equal(t, common.Gravity, *spec.Gravity)
	assert.Equal(t, 20, spec.Iterations)
	assert.Equal(t, 1.0, spec.Polygon.Density)
	assert.Equal(t, float32(2), spec.Polygon.StrokeWidth)
	assert.True(t, *spec.Polygon.Closed)
	assert.Equal(t, 256, spec.Spawn.MaxEntities)
	assert.NoError(t, spec.Validate())
}

func TestZeroGravityKept(t *testing.T) {
	var spec SceneSpec
	require.NoError(t, yaml.Unmarshal([]byte("gravity: 0\ngenerator: {verts: 5, mean_radius: 3}"), &spec))
	spec.applyDefaults()
	assert.Equal(t, 0.0, *spec.Gravity)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		ok   bool
	}{
		{"bad_default_generator", "generator: {verts: 1, mean_radius: 3}", false},
		{"scripted_skips_default", "spawn: {script: spawn.tengo}", true},
		{"bad_placed_generator", "generator: {verts: 5, mean_radius: 3}\npolygons: [{generator: {verts: 4, mean_radius: 0}}]", false},
		{"bad_ground", "generator: {verts: 5, mean_radius: 3}\nground: [{width: 0, height: 4}]", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec SceneSpec
			require.NoError(t, yaml.Unmarshal([]byte(c.doc), &spec))
			spec.applyDefaults()
			err := spec.Validate()
			if c.ok {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestInvalidGeneratorIsInvalidParameter(t *testing.T) {
	spec := SceneSpec{Generator: GeneratorSpec{Verts: 1, MeanRadius: 1}}
	assert.ErrorIs(t, spec.Validate(), geometry.ErrInvalidParameter)
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
		ok   bool
	}{
		{"#ff000080", color.NRGBA{R: 255, A: 128}, true},
		{"00ff00", color.NRGBA{G: 255, A: 255}, true},
		{"Purple", color.RGBA{R: 0x80, B: 0x80, A: 0xff}, true},
		{"#abc", nil, false},
		{"nocolor", nil, false},
		{"#gg0000", nil, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if !c.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestColorOr(t *testing.T) {
	var unset *YAMLColor
	assert.Equal(t, color.White, unset.ColorOr(color.White))
	set := &YAMLColor{Color: color.Black}
	assert.Equal(t, color.Black, set.ColorOr(color.White))
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"spawn.tengo", "scripts/spawn.tengo", "prefabs/scripts/spawn.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "mean_radius")
	}
}

func TestSourcePrefersDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultScene), []byte("name: override\n"), 0o644))

	src := Source{Dir: dir, FS: PrefabsFS}
	data, err := src.Read(DefaultScene)
	require.NoError(t, err)
	assert.Equal(t, "name: override\n", string(data))

	data, err = src.Read("scene_scripted.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "spawn.tengo")

	_, err = src.Read("missing.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = src.Read("../escape.yaml")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}
