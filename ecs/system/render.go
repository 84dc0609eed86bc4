package system

import (
	"bytes"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/ecs/entity"
	"github.com/milk9111/randpoly/geometry"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultStrokeWidth = 2
	labelFontSize      = 14
)

var (
	defaultStroke color.Color = color.White
	defaultGround color.Color = colornames.Dimgray
)

// RenderSystem draws ground boxes, polygon outlines and their labels.
type RenderSystem struct {
	face text.Face
}

func NewRenderSystem() *RenderSystem {
	r := &RenderSystem{}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("RenderSystem: load font: %v, labels disabled", err)
		return r
	}
	r.face = &text.GoTextFace{Source: src, Size: labelFontSize}
	return r
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent.Kind(), component.RenderLayerComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, _ := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind())
		lj, _ := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind())
		if li.Index != lj.Index {
			return li.Index < lj.Index
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if poly, ok := ecs.Get(w, e, component.PolygonComponent.Kind()); ok {
			r.drawPolygon(screen, t, poly, tintOf(w, e, defaultStroke))
			r.drawLabel(w, e, screen, t, poly)
			continue
		}
		if ecs.Has(w, e, component.GroundTagComponent.Kind()) {
			body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok {
				continue
			}
			x := t.X - body.Width/2
			y := t.Y - body.Height/2
			vector.FillRect(screen, float32(x), float32(y), float32(body.Width), float32(body.Height), tintOf(w, e, defaultGround), false)
		}
	}
}

func (r *RenderSystem) drawPolygon(screen *ebiten.Image, t *component.Transform, poly *component.Polygon, clr color.Color) {
	pts := WorldPoints(t, poly)
	if len(pts) < 2 {
		return
	}
	width := poly.StrokeWidth
	if width <= 0 {
		width = defaultStrokeWidth
	}
	if poly.Closed {
		pts = geometry.Closed(pts)
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

func (r *RenderSystem) drawLabel(w *ecs.World, e ecs.Entity, screen *ebiten.Image, t *component.Transform, poly *component.Polygon) {
	if r.face == nil {
		return
	}
	label, ok := ecs.Get(w, e, component.LabelComponent.Kind())
	if !ok {
		return
	}
	str, clr := label.Text, label.Color
	if str == "" {
		str = entity.AutoLabel(poly)
	}
	if clr == nil {
		clr = color.White
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(t.X, t.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, str, r.face, op)
}

// WorldPoints maps a polygon's local points through its transform.
func WorldPoints(t *component.Transform, poly *component.Polygon) []geometry.Point {
	if t == nil || poly == nil {
		return nil
	}
	out := make([]geometry.Point, len(poly.Points))
	for i, p := range poly.Points {
		out[i] = t.Apply(p)
	}
	return out
}

func tintOf(w *ecs.World, e ecs.Entity, fallback color.Color) color.Color {
	if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok && tint.Color != nil {
		return tint.Color
	}
	return fallback
}
