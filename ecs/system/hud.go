package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
)

// HUDSystem tallies spawn and cull events and prints a status line.
type HUDSystem struct {
	Scene   string
	Seed    uint64
	spawned int
	culled  int
}

func NewHUDSystem(scene string, seed uint64) *HUDSystem {
	return &HUDSystem{Scene: scene, Seed: seed}
}

func (h *HUDSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		switch evt.Kind {
		case ecs.EventPolygonSpawned:
			h.spawned++
		case ecs.EventEntityCulled:
			h.culled++
		}
	}
}

// Counts returns the spawn and cull totals seen so far.
func (h *HUDSystem) Counts() (spawned, culled int) {
	return h.spawned, h.culled
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || screen == nil {
		return
	}
	polys := len(w.Query(component.PolygonComponent.Kind()))
	msg := fmt.Sprintf("%s  seed=%d  polygons=%d  spawned=%d  culled=%d  FPS=%.1f\n[click/space] spawn  [R] reset  [F1] debug  [C] copy  [P] pause",
		h.Scene, h.Seed, polys, h.spawned, h.culled, ebiten.ActualFPS())
	ebitenutil.DebugPrint(screen, msg)
}
