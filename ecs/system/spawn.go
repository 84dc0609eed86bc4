package system

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/ecs/entity"
	"github.com/milk9111/randpoly/geometry"
	"github.com/milk9111/randpoly/prefabs"
)

const spawnMargin = 80

// SpawnSystem creates polygons from input, on a timer, or on request. Every
// random draw comes from the one seeded source, so a scene replays identically
// for the same seed and input.
type SpawnSystem struct {
	scene  *prefabs.SceneSpec
	src    *rand.Rand
	script *spawnScript

	spawned int
	frames  int
}

func NewSpawnSystem(scene *prefabs.SceneSpec, src *rand.Rand) (*SpawnSystem, error) {
	if scene == nil || src == nil {
		return nil, fmt.Errorf("spawn system: nil scene or source")
	}
	s := &SpawnSystem{scene: scene, src: src}
	if scene.Spawn.Script != "" {
		script, err := loadSpawnScript(scene.Spawn.Script, src)
		if err != nil {
			return nil, err
		}
		s.script = script
	}
	return s, nil
}

// Spawned returns how many polygons this system has created.
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	if in, ok := currentInput(w); ok {
		if in.SpawnCursor {
			s.trySpawn(w, in.CursorX, in.CursorY)
		}
		if in.SpawnRandom {
			x, y := s.randomTop()
			s.trySpawn(w, x, y)
		}
	}

	if n := s.scene.Spawn.IntervalFrames; n > 0 {
		s.frames++
		if s.frames >= n {
			s.frames = 0
			x, y := s.randomTop()
			s.trySpawn(w, x, y)
		}
	}
}

func (s *SpawnSystem) trySpawn(w *ecs.World, x, y float64) {
	if _, err := s.Spawn(w, x, y); err != nil {
		log.Printf("SpawnSystem: %v", err)
	}
}

func (s *SpawnSystem) randomTop() (float64, float64) {
	x := common.Lerp(spawnMargin, common.ScreenWidth-spawnMargin, s.src.Float64())
	return x, -spawnMargin
}

// Spawn generates one polygon centred near (x, y).
func (s *SpawnSystem) Spawn(w *ecs.World, x, y float64) (ecs.Entity, error) {
	if limit := s.scene.Spawn.MaxEntities; limit > 0 && len(w.Query(component.SpawnedComponent.Kind())) >= limit {
		return 0, fmt.Errorf("spawn: at limit of %d polygons", limit)
	}

	index := s.nextIndex()
	style, err := s.nextStyle(index)
	if err != nil {
		return 0, err
	}
	points, err := geometry.Generate(s.src, style.Params)
	if err != nil {
		return 0, fmt.Errorf("spawn: %w", err)
	}

	opts := entity.PolygonFromScene(s.scene, points)
	opts.X = common.Clamp(x, 0, common.ScreenWidth)
	opts.Y = y
	opts.Label = style.Label
	if style.Color != nil {
		opts.Color = style.Color
	}
	opts.Spawn = &component.Spawned{Index: index, Params: style.Params}

	e, err := entity.BuildPolygon(w, opts)
	if err != nil {
		return 0, fmt.Errorf("spawn %d: %w", index, err)
	}
	s.spawned++
	w.Events().Push(ecs.Event{Kind: ecs.EventPolygonSpawned, Entity: e})
	return e, nil
}

// nextIndex numbers runtime spawns after the scene's placed polygons, so every
// polygon of one scene load has a distinct index.
func (s *SpawnSystem) nextIndex() int {
	return len(s.scene.Polygons) + s.spawned
}

func (s *SpawnSystem) nextStyle(index int) (spawnStyle, error) {
	if s.script != nil {
		return s.script.style(index)
	}
	return spawnStyle{Params: s.scene.Generator.Params()}, nil
}
