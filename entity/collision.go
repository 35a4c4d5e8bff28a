package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/nonanimation/platypus/common"
)

// CollisionContact records one colliding shape of the resolved body on a
// single axis.
type CollisionContact struct {
	Shape     *Shape
	Direction int     // sign of the attempted motion on the axis
	Position  float64 // axis coordinate the body was stopped at
}

// CollisionData is the axis-separated result of one resolution pass,
// produced by the collision engine and consumed during group relocation.
type CollisionData struct {
	XData []CollisionContact
	YData []CollisionContact
}

// XCount returns the number of x-axis contacts.
func (d *CollisionData) XCount() int {
	if d == nil {
		return 0
	}
	return len(d.XData)
}

// YCount returns the number of y-axis contacts.
func (d *CollisionData) YCount() int {
	if d == nil {
		return 0
	}
	return len(d.YData)
}

// HasXContact reports whether any x-axis contact belongs to e.
func (d *CollisionData) HasXContact(e *Entity) bool {
	if d == nil {
		return false
	}
	for _, c := range d.XData {
		if c.Shape != nil && c.Shape.Entity == e {
			return true
		}
	}
	return false
}

// HasYContact reports whether any y-axis contact belongs to e.
func (d *CollisionData) HasYContact(e *Entity) bool {
	if d == nil {
		return false
	}
	for _, c := range d.YData {
		if c.Shape != nil && c.Shape.Entity == e {
			return true
		}
	}
	return false
}

// Group is the aggregate rigid-body capability a collision-group component
// attaches to its owner entity. Nested members expose their own Group, so
// every query recurses through the composition tree.
type Group interface {
	Owner() *Entity
	Members() []*Entity

	AddCollisionEntity(*Entity)
	RemoveCollisionEntity(*Entity)
	Contains(*Entity) bool

	GetCollisionTypes() []string
	GetSolidCollisions() map[string][]CollisionRule
	GetAABB(collisionType string) *common.AABB
	GetPreviousAABB(collisionType string) *common.AABB
	GetShapes(collisionType string) []*Shape
	GetPrevShapes(collisionType string) []*Shape

	PrepareCollision(x, y float64)
	RelocateEntity(position cp.Vector, data *CollisionData)
	MovePreviousX(x float64)
	UpdateAABB()
}
