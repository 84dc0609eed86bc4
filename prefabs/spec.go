package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/geometry"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// DefaultScene is the scene loaded when no -scene flag is given.
const DefaultScene = "scene.yaml"

type SceneSpec struct {
	Name       string          `yaml:"name"`
	Seed       Seed            `yaml:"seed"`
	Gravity    *float64        `yaml:"gravity"`
	Iterations int             `yaml:"iterations"`
	KillPlane  float64         `yaml:"kill_plane"`
	Background *YAMLColor      `yaml:"background"`
	Generator  GeneratorSpec   `yaml:"generator"`
	Polygon    PolygonSpec     `yaml:"polygon"`
	Spawn      SpawnSpec       `yaml:"spawn"`
	Ground     []GroundSpec    `yaml:"ground"`
	Polygons   []PlacedPolygon `yaml:"polygons"`
}

// GeneratorSpec mirrors geometry.Params with yaml names.
type GeneratorSpec struct {
	Verts      int     `yaml:"verts"`
	MeanRadius float64 `yaml:"mean_radius"`
	RadiusStd  float64 `yaml:"radius_std"`
	PhaseStd   float64 `yaml:"phase_std"`
}

func (g GeneratorSpec) Params() geometry.Params {
	return geometry.Params{Verts: g.Verts, MeanRadius: g.MeanRadius, RadiusStd: g.RadiusStd, PhaseStd: g.PhaseStd}
}

// PolygonSpec holds body and stroke settings shared by generated polygons.
type PolygonSpec struct {
	Density     float64    `yaml:"density"`
	Friction    float64    `yaml:"friction"`
	Elasticity  float64    `yaml:"elasticity"`
	Closed      *bool      `yaml:"closed"`
	StrokeWidth float32    `yaml:"stroke_width"`
	Color       *YAMLColor `yaml:"color"`
}

type SpawnSpec struct {
	IntervalFrames int    `yaml:"interval_frames"`
	MaxEntities    int    `yaml:"max_entities"`
	Script         string `yaml:"script"`
}

type GroundSpec struct {
	X        float64    `yaml:"x"`
	Y        float64    `yaml:"y"`
	Width    float64    `yaml:"width"`
	Height   float64    `yaml:"height"`
	Friction float64    `yaml:"friction"`
	Color    *YAMLColor `yaml:"color"`
}

// PlacedPolygon is a polygon created when the scene loads. A nil Generator
// uses the scene default.
type PlacedPolygon struct {
	Label      string         `yaml:"label"`
	LabelColor *YAMLColor     `yaml:"label_color"`
	X          float64        `yaml:"x"`
	Y          float64        `yaml:"y"`
	Color      *YAMLColor     `yaml:"color"`
	Generator  *GeneratorSpec `yaml:"generator"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec loads a scene, fills defaults and validates it.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *SceneSpec) applyDefaults() {
	if s.Gravity == nil {
		g := common.Gravity
		s.Gravity = &g
	}
	if s.Iterations <= 0 {
		s.Iterations = 20
	}
	if s.KillPlane == 0 {
		s.KillPlane = common.ScreenHeight * 2
	}
	if s.Polygon.Density <= 0 {
		s.Polygon.Density = 1
	}
	if s.Polygon.StrokeWidth <= 0 {
		s.Polygon.StrokeWidth = 2
	}
	if s.Polygon.Closed == nil {
		closed := true
		s.Polygon.Closed = &closed
	}
	if s.Spawn.MaxEntities <= 0 {
		s.Spawn.MaxEntities = 256
	}
}

// Validate checks generator params up front so a bad scene fails on load
// rather than on the first spawn.
func (s *SceneSpec) Validate() error {
	if s.Spawn.Script == "" {
		if err := s.Generator.Params().Validate(); err != nil {
			return fmt.Errorf("generator: %w", err)
		}
	}
	for i, p := range s.Polygons {
		params := s.Generator.Params()
		if p.Generator != nil {
			params = p.Generator.Params()
		}
		if err := params.Validate(); err != nil {
			return fmt.Errorf("polygons[%d]: %w", i, err)
		}
	}
	for i, g := range s.Ground {
		if g.Width <= 0 || g.Height <= 0 {
			return fmt.Errorf("ground[%d]: width and height must be > 0", i)
		}
	}
	return nil
}

// Seed accepts an integer or any string; strings are hashed.
type Seed struct {
	Value uint64
	Set   bool
}

func (s *Seed) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("seed must be a scalar")
	}
	s.Value = common.ParseSeed(value.Value)
	s.Set = true
	return nil
}

type YAMLColor struct {
	color.Color
}

// UnmarshalYAML accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ColorOr returns the colour, or fallback when c is unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func ParseColor(raw string) (color.Color, error) {
	v := strings.TrimSpace(raw)
	if named, ok := colornames.Map[strings.ToLower(v)]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", raw)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
