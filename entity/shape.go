package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/nonanimation/platypus/common"
)

// Shape is an axis-aligned collision box carried by an entity, expressed as
// an offset from the entity position. The collision engine consumes shapes as
// cp bounding boxes; the engine-facing box type is common.AABB.
type Shape struct {
	Entity        *Entity
	CollisionType string
	OffsetX       float64
	OffsetY       float64
	Width         float64
	Height        float64
}

func (s *Shape) bbAt(x, y float64) cp.BB {
	cx := x + s.OffsetX
	cy := y + s.OffsetY
	return cp.BB{
		L: cx - s.Width/2.0,
		B: cy - s.Height/2.0,
		R: cx + s.Width/2.0,
		T: cy + s.Height/2.0,
	}
}

// BB returns the shape's bounding box at the entity's current position.
func (s *Shape) BB() cp.BB {
	if s.Entity == nil || s.Entity.Transform == nil {
		return s.bbAt(0, 0)
	}
	return s.bbAt(s.Entity.Transform.X, s.Entity.Transform.Y)
}

// PrevBB returns the shape's bounding box at the entity's previous position.
func (s *Shape) PrevBB() cp.BB {
	if s.Entity == nil || s.Entity.Transform == nil {
		return s.bbAt(0, 0)
	}
	return s.bbAt(s.Entity.Transform.PreviousX, s.Entity.Transform.PreviousY)
}

// AABB returns the current-position box as a common.AABB.
func (s *Shape) AABB() *common.AABB {
	bb := s.BB()
	a := &common.AABB{}
	a.SetBounds(bb.L, bb.B, bb.R, bb.T)
	return a
}

// PrevAABB returns the previous-position box as a common.AABB.
func (s *Shape) PrevAABB() *common.AABB {
	bb := s.PrevBB()
	a := &common.AABB{}
	a.SetBounds(bb.L, bb.B, bb.R, bb.T)
	return a
}
