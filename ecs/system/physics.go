package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/geometry"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePolygon
)

// PhysicsConfig holds the space settings taken from the scene.
type PhysicsConfig struct {
	Gravity    float64
	Iterations int
	// KillPlane destroys dynamic bodies whose y passes it. Zero disables culling.
	KillPlane float64
}

// PhysicsSystem mirrors ECS bodies into a Chipmunk space and steps it.
type PhysicsSystem struct {
	space    *cp.Space
	cfg      PhysicsConfig
	dt       float64
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 20
	}
	ps := &PhysicsSystem{
		cfg:      cfg,
		dt:       1.0 / common.TPS,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = uint(ps.cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: ps.cfg.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Bodies returns the number of entities currently mirrored in the space.
func (ps *PhysicsSystem) Bodies() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
	ps.cull(w)
}

// Reset drops every body and starts over with an empty space.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = ps.newSpace()
	ps.entities = make(map[ecs.Entity]*bodyInfo)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}

		var info *bodyInfo
		if poly, ok := ecs.Get(w, e, component.PolygonComponent.Kind()); ok {
			info = ps.createPolygonBody(transform, bodyComp, poly)
		} else {
			info = ps.createBoxBody(transform, bodyComp)
		}
		if info == nil {
			log.Printf("PhysicsSystem: entity %v has no usable collider, skipping", e)
			return
		}

		ps.entities[e] = info
		bodyComp.Body = info.body
		if len(info.shapes) > 0 {
			bodyComp.Shape = info.shapes[0]
		}
	})
}

// createPolygonBody builds a dynamic body whose collider is the convex hull of
// the polygon's points. Mass comes from the polygon's own area.
func (ps *PhysicsSystem) createPolygonBody(transform *component.Transform, bodyComp *component.PhysicsBody, poly *component.Polygon) *bodyInfo {
	if geometry.Degenerate(poly.Points) {
		return nil
	}

	verts := toVectors(poly.Points)
	area := math.Abs(geometry.SignedArea(poly.Points))
	density := bodyComp.Density
	if density <= 0 {
		density = 1
	}
	mass := density * area

	moment := cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0)
	if !(moment > 0) || math.IsInf(moment, 0) {
		maxR := 0.0
		for _, p := range poly.Points {
			maxR = math.Max(maxR, p.Len())
		}
		moment = cp.MomentForCircle(mass, 0, maxR, cp.Vector{})
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)

	shape := cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypePolygon)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) createBoxBody(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	density := bodyComp.Density
	if density <= 0 {
		density = 1
	}
	mass := density * width * height
	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.body == nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

// cull destroys dynamic entities that fell past the kill plane.
func (ps *PhysicsSystem) cull(w *ecs.World) {
	if ps.cfg.KillPlane == 0 {
		return
	}
	for e, info := range ps.entities {
		if info.static || info.body == nil {
			continue
		}
		if info.body.Position().Y <= ps.cfg.KillPlane {
			continue
		}
		ps.removeEntity(e, info)
		w.DestroyEntity(e)
		w.Events().Push(ecs.Event{Kind: ecs.EventEntityCulled, Entity: e})
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeEntity(e, info)
	}
}

func (ps *PhysicsSystem) removeEntity(e ecs.Entity, info *bodyInfo) {
	for _, shape := range info.shapes {
		if shape != nil {
			ps.space.RemoveShape(shape)
		}
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}

func toVectors(points []geometry.Point) []cp.Vector {
	out := make([]cp.Vector, len(points))
	for i, p := range points {
		out[i] = cp.Vector{X: p.X, Y: p.Y}
	}
	return out
}
