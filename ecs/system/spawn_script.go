package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/randpoly/geometry"
	"github.com/milk9111/randpoly/prefabs"
)

// spawnStyle is what one spawn needs beyond its position.
type spawnStyle struct {
	Params geometry.Params
	Color  color.Color
	Label  string
}

// spawnScript runs a Tengo script once per spawn. The script sees `index` and
// `normal()` and assigns verts, mean_radius, radius_std, phase_std and
// optionally color and label. Outputs left unassigned read as zero.
type spawnScript struct {
	path     string
	compiled *tengo.Compiled
}

func loadSpawnScript(path string, src geometry.NormalSource) (*spawnScript, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("spawn script: empty path")
	}
	data, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("spawn script %q: %w", path, err)
	}
	return compileSpawnScript(path, data, src)
}

func compileSpawnScript(path string, src []byte, normal geometry.NormalSource) (*spawnScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("index", 0)
	_ = script.Add("verts", 0)
	_ = script.Add("mean_radius", 0.0)
	_ = script.Add("radius_std", 0.0)
	_ = script.Add("phase_std", 0.0)
	_ = script.Add("color", "")
	_ = script.Add("label", "")
	_ = script.Add("normal", &tengo.UserFunction{Name: "normal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 0 {
			return nil, tengo.ErrWrongNumArguments
		}
		return &tengo.Float{Value: normal.NormFloat64()}, nil
	}})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spawn script %q: compile: %w", path, err)
	}
	return &spawnScript{path: path, compiled: compiled}, nil
}

func (s *spawnScript) style(index int) (spawnStyle, error) {
	c := s.compiled
	// Outputs are cleared every run so a value the script skips fails
	// validation instead of carrying over from the previous spawn.
	for name, v := range map[string]any{
		"index":       index,
		"verts":       0,
		"mean_radius": 0.0,
		"radius_std":  0.0,
		"phase_std":   0.0,
		"color":       "",
		"label":       "",
	} {
		if err := c.Set(name, v); err != nil {
			return spawnStyle{}, fmt.Errorf("spawn script %q: set %s: %w", s.path, name, err)
		}
	}
	if err := c.Run(); err != nil {
		return spawnStyle{}, fmt.Errorf("spawn script %q: run: %w", s.path, err)
	}

	style := spawnStyle{
		Params: geometry.Params{
			Verts:      c.Get("verts").Int(),
			MeanRadius: c.Get("mean_radius").Float(),
			RadiusStd:  c.Get("radius_std").Float(),
			PhaseStd:   c.Get("phase_std").Float(),
		},
		Label: c.Get("label").String(),
	}
	if err := style.Params.Validate(); err != nil {
		return spawnStyle{}, fmt.Errorf("spawn script %q: index %d: %w", s.path, index, err)
	}
	if name := c.Get("color").String(); name != "" {
		clr, err := prefabs.ParseColor(name)
		if err != nil {
			return spawnStyle{}, fmt.Errorf("spawn script %q: color: %w", s.path, err)
		}
		style.Color = clr
	}
	return style, nil
}
