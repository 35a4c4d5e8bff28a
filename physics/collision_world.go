package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/nonanimation/platypus/entity"
)

// Motion below this magnitude on the x axis is treated as accumulated float
// drift and absorbed by re-anchoring previous positions.
const jitterThreshold = 0.01

// World owns the static collision geometry and resolves collision groups
// against it. Geometry lives in a Chipmunk space; resolution is an
// axis-separated sweep of the group's aggregate shapes from their previous
// positions, producing the CollisionData the group consumes during
// relocation.
type World struct {
	space *cp.Space
}

// NewWorld creates an empty collision world.
func NewWorld() *World {
	return &World{space: cp.NewSpace()}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddStaticBox adds an immovable box. Coordinates are screen-space: top < bottom.
func (w *World) AddStaticBox(left, top, right, bottom float64) {
	if w == nil || w.space == nil {
		return
	}
	bb := cp.BB{L: left, B: top, R: right, T: bottom}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	w.space.AddShape(shape)
}

// AddStaticSegment adds an immovable segment, used for world borders.
func (w *World) AddStaticSegment(ax, ay, bx, by float64) {
	if w == nil || w.space == nil {
		return
	}
	shape := cp.NewSegment(w.space.StaticBody, cp.Vector{X: ax, Y: ay}, cp.Vector{X: bx, Y: by}, 1.0)
	shape.SetFriction(0.8)
	w.space.AddShape(shape)
}

// ResolveCollisionGroup runs one resolution cycle for a group. A group whose
// owner has no transform is a pure container (e.g. the scene owner): each
// member resolves independently, recursing into nested groups. A group whose
// owner is a rigid body resolves as one aggregate and is relocated as a
// coupled whole.
func (w *World) ResolveCollisionGroup(g entity.Group, deltaT float64) {
	if w == nil || g == nil {
		return
	}
	owner := g.Owner()
	if owner == nil {
		return
	}
	if owner.Transform == nil {
		for _, m := range g.Members() {
			if m == owner {
				continue
			}
			if m.CollisionGroup != nil {
				w.ResolveCollisionGroup(m.CollisionGroup, deltaT)
			} else {
				w.resolveSingle(m)
			}
		}
		return
	}
	w.resolveAggregate(g)
}

// resolveAggregate sweeps every shape of the group from its previous
// position, clamps the owner's motion to the tightest hit per axis, and hands
// the corrected position plus contact data back to the group.
func (w *World) resolveAggregate(g entity.Group) {
	owner := g.Owner()
	prev := owner.Transform.Previous()
	proposed := owner.Transform.Position()
	dx := proposed.X - prev.X
	dy := proposed.Y - prev.Y

	g.PrepareCollision(proposed.X, proposed.Y)

	// Sub-pixel x drift between frames is jitter, not motion: re-anchor the
	// group's previous positions at the proposed x instead of sweeping it.
	if dx != 0 && math.Abs(dx) < jitterThreshold {
		g.MovePreviousX(proposed.X)
		prev = owner.Transform.Previous()
		dx = 0
	}

	data := &entity.CollisionData{}
	shapes := g.GetPrevShapes("")

	allowedX := dx
	for _, s := range shapes {
		moved, hit := w.sweep(s.PrevBB(), dx, 0)
		if !hit {
			continue
		}
		if math.Abs(moved) < math.Abs(allowedX) {
			allowedX = moved
		}
		data.XData = append(data.XData, entity.CollisionContact{
			Shape:     s,
			Direction: sign(dx),
			Position:  prev.X + moved,
		})
	}

	allowedY := dy
	for _, s := range shapes {
		bb := offsetBB(s.PrevBB(), allowedX, 0)
		moved, hit := w.sweep(bb, 0, dy)
		if !hit {
			continue
		}
		if math.Abs(moved) < math.Abs(allowedY) {
			allowedY = moved
		}
		data.YData = append(data.YData, entity.CollisionContact{
			Shape:     s,
			Direction: sign(dy),
			Position:  prev.Y + moved,
		})
	}

	corrected := cp.Vector{X: prev.X + allowedX, Y: prev.Y + allowedY}
	g.RelocateEntity(corrected, data)

	// End of cycle: members snapshot previous positions and the group
	// rebuilds its cached boxes.
	owner.Trigger(entity.RelocateEntity{})
}

// resolveSingle resolves a solid member that carries no group of its own.
func (w *World) resolveSingle(e *entity.Entity) {
	if e == nil || e.Transform == nil || len(e.Shapes) == 0 {
		return
	}
	prev := e.Transform.Previous()
	proposed := e.Transform.Position()
	dx := proposed.X - prev.X
	dy := proposed.Y - prev.Y

	allowedX := dx
	allowedY := dy
	for _, s := range e.Shapes {
		if moved, hit := w.sweep(s.PrevBB(), dx, 0); hit && math.Abs(moved) < math.Abs(allowedX) {
			allowedX = moved
		}
	}
	for _, s := range e.Shapes {
		bb := offsetBB(s.PrevBB(), allowedX, 0)
		if moved, hit := w.sweep(bb, 0, dy); hit && math.Abs(moved) < math.Abs(allowedY) {
			allowedY = moved
		}
	}

	e.Transform.X = prev.X + allowedX
	e.Transform.Y = prev.Y + allowedY
	e.Transform.Snapshot()
}

// sweep moves bb by (dx, dy), exactly one of which is nonzero, against the
// static geometry and returns the allowed motion along that axis and whether
// anything constrained it. Shapes already overlapping the start box are
// ignored rather than resolved.
func (w *World) sweep(bb cp.BB, dx, dy float64) (float64, bool) {
	if w == nil || w.space == nil || (dx == 0 && dy == 0) {
		return 0, false
	}

	swept := bb
	if dx > 0 {
		swept.R += dx
	} else {
		swept.L += dx
	}
	if dy > 0 {
		swept.T += dy
	} else {
		swept.B += dy
	}

	allowed := dx + dy
	hit := false
	w.space.BBQuery(swept, cp.SHAPE_FILTER_ALL, func(sh *cp.Shape, _ interface{}) {
		ob := sh.BB()
		if ob.Intersects(bb) {
			return
		}
		var gap float64
		switch {
		case dx > 0:
			gap = ob.L - bb.R
		case dx < 0:
			gap = ob.R - bb.L
		case dy > 0:
			gap = ob.B - bb.T
		default:
			gap = ob.T - bb.B
		}
		if dx > 0 || dy > 0 {
			if gap >= 0 && gap < allowed {
				allowed = gap
				hit = true
			}
		} else {
			if gap <= 0 && gap > allowed {
				allowed = gap
				hit = true
			}
		}
	}, nil)

	if !hit {
		return dx + dy, false
	}
	return allowed, true
}

func offsetBB(bb cp.BB, dx, dy float64) cp.BB {
	return cp.BB{L: bb.L + dx, B: bb.B + dy, R: bb.R + dx, T: bb.T + dy}
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}
