package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/randpoly/ecs"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	// debugVelocityScale turns px/s into the length of the drawn arrow.
	debugVelocityScale = 0.1
)

var (
	debugStaticColor   = cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.8}
	debugDynamicColor  = cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	debugSleepingColor = cp.FColor{R: 0.3, G: 0.4, B: 1, A: 0.8}
	debugContactColor  = cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
	debugVelocityColor = color.NRGBA{R: 0xff, G: 0xd7, A: 0xff}
)

// PhysicsDebugSystem overlays the colliders the solver actually uses (convex
// hulls, not the drawn outlines), contact points, and each dynamic body's
// centre of mass and velocity.
type PhysicsDebugSystem struct {
	physics *PhysicsSystem
	Enabled bool
}

func NewPhysicsDebugSystem(physics *PhysicsSystem, enabled bool) *PhysicsDebugSystem {
	return &PhysicsDebugSystem{physics: physics, Enabled: enabled}
}

func (d *PhysicsDebugSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	if in, ok := currentInput(w); ok && in.ToggleDebug {
		d.Enabled = !d.Enabled
	}
}

func (d *PhysicsDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil || !d.Enabled || d.physics == nil || screen == nil {
		return
	}
	space := d.physics.Space()
	if space == nil {
		return
	}

	cp.DrawSpace(space, &hullDrawer{screen: screen})
	space.EachBody(func(body *cp.Body) {
		if body.GetType() != cp.BODY_DYNAMIC {
			return
		}
		com := body.LocalToWorld(body.CenterOfGravity())
		cross(screen, com, debugDotSize, toNRGBA(debugDynamicColor))
		tip := com.Add(body.Velocity().Mult(debugVelocityScale))
		strokeSegment(screen, com, tip, debugVelocityColor)
	})
}

// hullDrawer implements cp.Drawer with ebiten's vector package.
type hullDrawer struct {
	screen *ebiten.Image
}

func (d *hullDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.ring(pos, radius, outline)
	strokeSegment(d.screen, pos, pos.Add(cp.ForAngle(angle).Mult(radius)), toNRGBA(outline))
}

func (d *hullDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	strokeSegment(d.screen, a, b, toNRGBA(fill))
}

func (d *hullDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	strokeSegment(d.screen, a, b, toNRGBA(outline))
	d.ring(a, radius, outline)
	d.ring(b, radius, outline)
}

func (d *hullDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count > len(verts) {
		count = len(verts)
	}
	clr := toNRGBA(fill)
	for i := 0; i < count; i++ {
		strokeSegment(d.screen, verts[i], verts[(i+1)%count], clr)
	}
}

func (d *hullDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	cross(d.screen, pos, size, toNRGBA(fill))
}

func (d *hullDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *hullDrawer) OutlineColor() cp.FColor {
	return debugDynamicColor
}

// ShapeColor tells static ground, sleeping and awake bodies apart.
func (d *hullDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	body := shape.Body()
	switch {
	case body == nil || body.GetType() == cp.BODY_STATIC:
		return debugStaticColor
	case body.IsSleeping():
		return debugSleepingColor
	default:
		return debugDynamicColor
	}
}

func (d *hullDrawer) ConstraintColor() cp.FColor {
	return debugContactColor
}

func (d *hullDrawer) CollisionPointColor() cp.FColor {
	return debugContactColor
}

func (d *hullDrawer) Data() interface{} {
	return nil
}

func (d *hullDrawer) ring(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	clr := toNRGBA(c)
	prev := center.Add(cp.Vector{X: radius})
	for i := 1; i <= debugCircleSegments; i++ {
		next := center.Add(cp.ForAngle(2 * math.Pi * float64(i) / debugCircleSegments).Mult(radius))
		strokeSegment(d.screen, prev, next, clr)
		prev = next
	}
}

func strokeSegment(screen *ebiten.Image, a, b cp.Vector, clr color.Color) {
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, true)
}

func cross(screen *ebiten.Image, at cp.Vector, size float64, clr color.Color) {
	h := size / 2
	strokeSegment(screen, cp.Vector{X: at.X - h, Y: at.Y}, cp.Vector{X: at.X + h, Y: at.Y}, clr)
	strokeSegment(screen, cp.Vector{X: at.X, Y: at.Y - h}, cp.Vector{X: at.X, Y: at.Y + h}, clr)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 0xff),
		G: uint8(clamp01(c.G) * 0xff),
		B: uint8(clamp01(c.B) * 0xff),
		A: uint8(clamp01(c.A) * 0xff),
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
