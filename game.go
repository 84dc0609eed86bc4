package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/ecs/entity"
	"github.com/milk9111/randpoly/ecs/system"
	"github.com/milk9111/randpoly/prefabs"
)

type Game struct {
	sceneName string
	seedFlag  string
	debug     bool

	scene     *prefabs.SceneSpec
	seed      uint64
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	debugSys  *system.PhysicsDebugSystem

	clipboard system.Clipboard
	watcher   *prefabs.Watcher
	reload    bool

	paused       bool
	pauseUI      *ebitenui.UI
	resetPending bool
}

func NewGame(sceneName, seed string, debug bool) (*Game, error) {
	g := &Game{sceneName: sceneName, seedFlag: seed, debug: debug}

	cb, err := system.SystemClipboard()
	if err != nil {
		log.Printf("Game: clipboard disabled: %v", err)
	} else {
		g.clipboard = cb
	}

	if err := g.load(); err != nil {
		return nil, err
	}

	if w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts")); err != nil {
		log.Printf("Game: hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	return g, nil
}

// load reads the scene and rebuilds the world from scratch. On failure the
// current world is kept.
func (g *Game) load() error {
	scene, err := prefabs.LoadSceneSpec(g.sceneName)
	if err != nil {
		return err
	}

	seed := scene.Seed.Value
	if g.seedFlag != "" {
		seed = common.ParseSeed(g.seedFlag)
	}

	world, scheduler, physics, debugSys, err := g.build(scene, seed)
	if err != nil {
		return err
	}

	if g.debugSys != nil {
		debugSys.Enabled = g.debugSys.Enabled
	}
	if g.physics != nil {
		g.physics.Reset()
	}

	g.scene = scene
	g.seed = seed
	g.world = world
	g.scheduler = scheduler
	g.physics = physics
	g.debugSys = debugSys
	g.pauseUI = NewPauseUI(g)
	log.Printf("Game: loaded scene %q seed=%d", scene.Name, seed)
	return nil
}

func (g *Game) build(scene *prefabs.SceneSpec, seed uint64) (*ecs.World, *ecs.Scheduler, *system.PhysicsSystem, *system.PhysicsDebugSystem, error) {
	src := common.NewSource(seed)
	world := ecs.NewWorld()

	if err := entity.BuildScene(world, scene, src); err != nil {
		return nil, nil, nil, nil, err
	}

	spawn, err := system.NewSpawnSystem(scene, src)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("scene %q: %w", scene.Name, err)
	}

	physics := system.NewPhysicsSystem(system.PhysicsConfig{
		Gravity:    *scene.Gravity,
		Iterations: scene.Iterations,
		KillPlane:  scene.KillPlane,
	})
	debugSys := system.NewPhysicsDebugSystem(physics, g.debug)

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		spawn,
		physics,
		system.NewExportSystem(g.clipboard),
		system.NewHUDSystem(scene.Name, seed),
		system.NewRenderSystem(),
		debugSys,
	)
	return world, scheduler, physics, debugSys, nil
}

func (g *Game) Update() error {
	g.pollWatcher()

	if g.reload {
		g.reload = false
		if err := g.load(); err != nil {
			log.Printf("Game: reload %s: %v", g.sceneName, err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if !g.resetPending {
		g.scheduler.Update(g.world)
	}

	if g.resetPending || g.resetRequested() {
		g.resetPending = false
		if err := g.load(); err != nil {
			log.Printf("Game: reset: %v", err)
			return nil
		}
		g.world.Events().Push(ecs.Event{Kind: ecs.EventSceneReset})
	}
	return nil
}

func (g *Game) resetRequested() bool {
	e, ok := g.world.First(component.InputComponent.Kind())
	if !ok {
		return false
	}
	in, ok := ecs.Get(g.world, e, component.InputComponent.Kind())
	return ok && in.Reset
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: %d file(s) changed (scripts=%t), reloading %s", len(change.Paths), change.Scripts, g.sceneName)
			g.reload = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("Game: watcher: %v", err)
			}
			return
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.Background.ColorOr(color.Black))
	g.scheduler.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.ScreenWidth, common.ScreenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
