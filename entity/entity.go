package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/nonanimation/platypus/common"
)

// CollisionRule is one configured response for a solid collision type.
type CollisionRule struct {
	Against  string
	Response string
}

// Transform holds an entity's spatial state. Entities without a transform are
// camera-independent and always receive logic updates.
type Transform struct {
	X, Y, Z   float64
	PreviousX float64
	PreviousY float64
	PreviousZ float64
	Rotation  float64
}

// Position returns the current planar position.
func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

// Previous returns the previous-frame planar position.
func (t *Transform) Previous() cp.Vector {
	return cp.Vector{X: t.PreviousX, Y: t.PreviousY}
}

// Snapshot copies the current position into the previous position.
func (t *Transform) Snapshot() {
	t.PreviousX = t.X
	t.PreviousY = t.Y
	t.PreviousZ = t.Z
}

// Entity is an addressable simulation node: a bag of components that
// communicate only through messages on the entity's bus. Entities form a
// parent/child tree mirroring the scene graph, independent of collision-group
// composition.
type Entity struct {
	Name      string
	Transform *Transform

	CollisionTypes  []string
	SolidCollisions map[string][]CollisionRule
	Immobile        bool
	Shapes          []*Shape

	// CollisionGroup is the optional aggregate capability attached by a
	// collision-group component.
	CollisionGroup Group

	Parent   *Entity
	Children []*Entity

	listeners    map[MessageType][]*Binding
	messageOrder []MessageType
}

// New creates a named entity with no transform.
func New(name string) *Entity {
	return &Entity{Name: name}
}

// NewAt creates a named entity positioned at (x, y); the previous position
// starts equal to the current one.
func NewAt(name string, x, y float64) *Entity {
	return &Entity{
		Name: name,
		Transform: &Transform{
			X: x, Y: y,
			PreviousX: x, PreviousY: y,
		},
	}
}

// AddChild attaches child to e and announces it on e's bus.
func (e *Entity) AddChild(child *Entity) {
	if child == nil || child == e {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = e
	e.Children = append(e.Children, child)
	e.Trigger(ChildEntityAdded{Child: child})
}

// RemoveChild detaches child from e and announces the removal.
func (e *Entity) RemoveChild(child *Entity) {
	if child == nil || child.Parent != e {
		return
	}
	for i, cur := range e.Children {
		if cur == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			break
		}
	}
	child.Parent = nil
	e.Trigger(ChildEntityRemoved{Child: child})
}

// AddShape attaches a collision shape to the entity.
func (e *Entity) AddShape(collisionType string, width, height, offsetX, offsetY float64) *Shape {
	s := &Shape{
		Entity:        e,
		CollisionType: collisionType,
		Width:         width,
		Height:        height,
		OffsetX:       offsetX,
		OffsetY:       offsetY,
	}
	e.Shapes = append(e.Shapes, s)
	return s
}

// HasCollisionType reports whether the entity declares the given type.
func (e *Entity) HasCollisionType(collisionType string) bool {
	for _, t := range e.CollisionTypes {
		if t == collisionType {
			return true
		}
	}
	return false
}

// AABB returns the union box over the entity's shapes matching collisionType
// at the current position. An empty collisionType matches all shapes.
func (e *Entity) AABB(collisionType string) *common.AABB {
	out := &common.AABB{}
	out.Reset()
	for _, s := range e.Shapes {
		if collisionType != "" && s.CollisionType != collisionType {
			continue
		}
		out.Include(s.AABB())
	}
	return out
}

// PreviousAABB is AABB evaluated at the previous-frame position.
func (e *Entity) PreviousAABB(collisionType string) *common.AABB {
	out := &common.AABB{}
	out.Reset()
	for _, s := range e.Shapes {
		if collisionType != "" && s.CollisionType != collisionType {
			continue
		}
		out.Include(s.PrevAABB())
	}
	return out
}

// ShapesOf returns the entity's shapes matching collisionType ("" = all).
func (e *Entity) ShapesOf(collisionType string) []*Shape {
	if collisionType == "" {
		return e.Shapes
	}
	var out []*Shape
	for _, s := range e.Shapes {
		if s.CollisionType == collisionType {
			out = append(out, s)
		}
	}
	return out
}
