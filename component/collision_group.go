package component

import (
	"log"

	"github.com/jakecoffman/cp"

	"github.com/nonanimation/platypus/common"
	"github.com/nonanimation/platypus/entity"
)

// GroupResolver is the external collision engine a group delegates to when
// its owner receives check-collision-group.
type GroupResolver interface {
	ResolveCollisionGroup(group entity.Group, deltaT float64)
}

// relocSave is the per-member scratch state of one resolution pass: the
// member's raw frame displacement and its fixed previous-frame offset from
// the group owner.
type relocSave struct {
	dx, dy float64
	ox, oy float64
}

// CollisionGroup composes its owner and zero or more solid child entities
// into one logical rigid body. Members that carry their own nested group
// (moving platforms on moving platforms) are delegated to recursively, so
// queries and relocation compose through the whole tree.
type CollisionGroup struct {
	owner    *entity.Entity
	resolver GroupResolver

	solidEntities []*entity.Entity
	aabb          common.AABB
	prevAABB      common.AABB

	saves map[*entity.Entity]*relocSave

	bindings []*entity.Binding
}

// NewCollisionGroup attaches a collision group to owner and registers it as
// the entity's group capability. The resolver may be nil for groups that are
// only ever queried through a parent group.
func NewCollisionGroup(owner *entity.Entity, resolver GroupResolver) *CollisionGroup {
	g := &CollisionGroup{
		owner:    owner,
		resolver: resolver,
		saves:    make(map[*entity.Entity]*relocSave),
	}
	g.aabb.Reset()
	g.prevAABB.Reset()
	owner.CollisionGroup = g

	// The owner is itself a member when it qualifies.
	g.AddCollisionEntity(owner)

	g.bindings = append(g.bindings,
		owner.Bind(entity.MessageChildEntityAdded, func(m entity.Message) {
			g.AddCollisionEntity(m.(entity.ChildEntityAdded).Child)
		}),
		owner.Bind(entity.MessageChildEntityRemoved, func(m entity.Message) {
			g.RemoveCollisionEntity(m.(entity.ChildEntityRemoved).Child)
		}),
		owner.Bind(entity.MessageAddCollisionEntity, func(m entity.Message) {
			g.AddCollisionEntity(m.(entity.AddCollisionEntity).Entity)
		}),
		owner.Bind(entity.MessageRemoveCollisionEntity, func(m entity.Message) {
			g.RemoveCollisionEntity(m.(entity.RemoveCollisionEntity).Entity)
		}),
		owner.Bind(entity.MessageRelocateEntity, func(entity.Message) {
			g.snapshot()
		}),
		owner.Bind(entity.MessageCheckCollisionGroup, func(m entity.Message) {
			if g.resolver != nil {
				g.resolver.ResolveCollisionGroup(g, m.(entity.CheckCollisionGroup).Step.DeltaT)
			}
		}),
	)
	return g
}

// Owner returns the group's owner entity.
func (g *CollisionGroup) Owner() *entity.Entity {
	return g.owner
}

// AddCollisionEntity admits e as a solid member: e must declare at least one
// collision type with a configured response and must not be immobile.
// Typeless or non-qualifying entities are silently ignored; duplicates are
// prevented; admission that would make an entity a transitive member of
// itself is rejected.
func (g *CollisionGroup) AddCollisionEntity(e *entity.Entity) {
	if e == nil || len(e.CollisionTypes) == 0 || e.Immobile {
		return
	}
	qualified := false
	for _, ct := range e.CollisionTypes {
		if len(e.SolidCollisions[ct]) > 0 {
			qualified = true
			break
		}
	}
	if !qualified {
		return
	}
	if g.Contains(e) {
		// already a direct member or carried by a nested group
		return
	}
	if e != g.owner && e.CollisionGroup != nil && e.CollisionGroup.Contains(g.owner) {
		log.Printf("collision-group: rejecting %q, admission would make %q a transitive member of itself", e.Name, g.owner.Name)
		return
	}
	g.solidEntities = append(g.solidEntities, e)
	g.UpdateAABB()
}

// RemoveCollisionEntity removes e and rebuilds the aggregate box from the
// remaining members.
func (g *CollisionGroup) RemoveCollisionEntity(e *entity.Entity) {
	if e == nil {
		return
	}
	for i, cur := range g.solidEntities {
		if cur == e {
			g.solidEntities = append(g.solidEntities[:i], g.solidEntities[i+1:]...)
			delete(g.saves, e)
			g.UpdateAABB()
			return
		}
	}
}

// Contains reports whether e is a direct or transitive member of the group.
func (g *CollisionGroup) Contains(e *entity.Entity) bool {
	for _, m := range g.solidEntities {
		if m == e {
			return true
		}
		if m != g.owner && m.CollisionGroup != nil && m.CollisionGroup.Contains(e) {
			return true
		}
	}
	return false
}

// Members returns the current solid member list.
func (g *CollisionGroup) Members() []*entity.Entity {
	return g.solidEntities
}

// GetCollisionTypes returns the union of member collision types, nested
// groups included, without duplicates.
func (g *CollisionGroup) GetCollisionTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range g.solidEntities {
		var types []string
		if m != g.owner && m.CollisionGroup != nil {
			types = m.CollisionGroup.GetCollisionTypes()
		} else {
			types = m.CollisionTypes
		}
		for _, t := range types {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// GetSolidCollisions merges the members' solid-collision response maps with
// duplicate suppression.
func (g *CollisionGroup) GetSolidCollisions() map[string][]entity.CollisionRule {
	out := make(map[string][]entity.CollisionRule)
	merge := func(src map[string][]entity.CollisionRule) {
		for t, rules := range src {
			for _, r := range rules {
				dup := false
				for _, have := range out[t] {
					if have == r {
						dup = true
						break
					}
				}
				if !dup {
					out[t] = append(out[t], r)
				}
			}
		}
	}
	for _, m := range g.solidEntities {
		if m != g.owner && m.CollisionGroup != nil {
			merge(m.CollisionGroup.GetSolidCollisions())
		} else {
			merge(m.SolidCollisions)
		}
	}
	return out
}

// GetAABB returns the cached aggregate box when collisionType is empty;
// otherwise it computes a fresh union over members relevant to that type,
// recursing into nested groups. The filtered query never mutates the cache.
func (g *CollisionGroup) GetAABB(collisionType string) *common.AABB {
	if collisionType == "" {
		return &g.aabb
	}
	out := &common.AABB{}
	out.Reset()
	for _, m := range g.solidEntities {
		if m != g.owner && m.CollisionGroup != nil {
			out.Include(m.CollisionGroup.GetAABB(collisionType))
		} else if m.HasCollisionType(collisionType) {
			out.Include(m.AABB(collisionType))
		}
	}
	return out
}

// GetPreviousAABB is GetAABB against the previous-frame aggregate.
func (g *CollisionGroup) GetPreviousAABB(collisionType string) *common.AABB {
	if collisionType == "" {
		return &g.prevAABB
	}
	out := &common.AABB{}
	out.Reset()
	for _, m := range g.solidEntities {
		if m != g.owner && m.CollisionGroup != nil {
			out.Include(m.CollisionGroup.GetPreviousAABB(collisionType))
		} else if m.HasCollisionType(collisionType) {
			out.Include(m.PreviousAABB(collisionType))
		}
	}
	return out
}

// GetShapes returns the union of member shapes for collisionType ("" = all),
// recursing into nested groups.
func (g *CollisionGroup) GetShapes(collisionType string) []*entity.Shape {
	var out []*entity.Shape
	seen := make(map[*entity.Shape]bool)
	for _, m := range g.solidEntities {
		var shapes []*entity.Shape
		if m != g.owner && m.CollisionGroup != nil {
			shapes = m.CollisionGroup.GetShapes(collisionType)
		} else {
			shapes = m.ShapesOf(collisionType)
		}
		for _, s := range shapes {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// GetPrevShapes mirrors GetShapes; shapes evaluate their previous-position
// box through PrevBB.
func (g *CollisionGroup) GetPrevShapes(collisionType string) []*entity.Shape {
	return g.GetShapes(collisionType)
}

// UpdateAABB rebuilds both cached aggregate boxes from the current members.
func (g *CollisionGroup) UpdateAABB() {
	g.aabb.Reset()
	g.prevAABB.Reset()
	for _, m := range g.solidEntities {
		if m != g.owner && m.CollisionGroup != nil {
			g.aabb.Include(m.CollisionGroup.GetAABB(""))
			g.prevAABB.Include(m.CollisionGroup.GetPreviousAABB(""))
		} else {
			g.aabb.Include(m.AABB(""))
			g.prevAABB.Include(m.PreviousAABB(""))
		}
	}
}

func (g *CollisionGroup) save(e *entity.Entity) *relocSave {
	s := g.saves[e]
	if s == nil {
		s = &relocSave{}
		g.saves[e] = s
	}
	return s
}

// PrepareCollision starts a resolution pass with the owner proposed at
// (x, y). Every member records its raw frame displacement and its fixed
// offset from the owner's previous position; members are then carried rigidly
// to the proposed position so the aggregate query operates in owner-relative
// space, with nested groups prepared at translated coordinates.
func (g *CollisionGroup) PrepareCollision(x, y float64) {
	o := g.owner
	for _, m := range g.solidEntities {
		if m.Transform == nil {
			continue
		}
		s := g.save(m)
		s.dx = m.Transform.X - m.Transform.PreviousX
		s.dy = m.Transform.Y - m.Transform.PreviousY
		if o.Transform != nil {
			s.ox = m.Transform.PreviousX - o.Transform.PreviousX
			s.oy = m.Transform.PreviousY - o.Transform.PreviousY
		}
		if m == o {
			continue
		}
		if m.CollisionGroup != nil {
			m.CollisionGroup.PrepareCollision(x+s.ox, y+s.oy)
		} else {
			m.Transform.X = x + s.ox
			m.Transform.Y = y + s.oy
		}
	}
}

// RelocateEntity finishes a resolution pass: position is the owner's
// collision-corrected location. The owner's carried delta is its net motion
// from the previous position, zeroed per axis when the owner itself appears
// among the colliding shapes on that axis (it was independently stopped and
// must not also receive the carried displacement). Members end at their own
// saved displacement plus the owner's carried delta.
func (g *CollisionGroup) RelocateEntity(position cp.Vector, data *entity.CollisionData) {
	o := g.owner
	os := g.save(o)
	if o.Transform != nil {
		os.dx = position.X - o.Transform.PreviousX
		os.dy = position.Y - o.Transform.PreviousY
	}
	if data.HasXContact(o) {
		os.dx = 0
	}
	if data.HasYContact(o) {
		os.dy = 0
	}
	if o.Transform != nil {
		o.Transform.X = position.X
		o.Transform.Y = position.Y
	}
	for _, m := range g.solidEntities {
		if m == o || m.Transform == nil {
			continue
		}
		s := g.save(m)
		target := cp.Vector{
			X: m.Transform.PreviousX + s.dx + os.dx,
			Y: m.Transform.PreviousY + s.dy + os.dy,
		}
		if m.CollisionGroup != nil {
			m.CollisionGroup.RelocateEntity(target, data)
		} else {
			m.Transform.X = target.X
			m.Transform.Y = target.Y
		}
	}
}

// MovePreviousX propagates a previous-position correction along the x axis
// through the same offset-translation scheme, used for jitter correction.
func (g *CollisionGroup) MovePreviousX(x float64) {
	o := g.owner
	for _, m := range g.solidEntities {
		if m.Transform == nil {
			continue
		}
		s := g.save(m)
		if m != o && m.CollisionGroup != nil {
			m.CollisionGroup.MovePreviousX(x + s.ox)
		} else {
			m.Transform.PreviousX = x + s.ox
		}
	}
}

// snapshot ends a relocation cycle: previous positions catch up to current
// ones and the cached aggregate boxes are rebuilt.
func (g *CollisionGroup) snapshot() {
	ownerSeen := false
	for _, m := range g.solidEntities {
		if m == g.owner {
			ownerSeen = true
		}
		if m != g.owner && m.CollisionGroup != nil {
			m.Trigger(entity.RelocateEntity{})
		} else if m.Transform != nil {
			m.Transform.Snapshot()
		}
	}
	if !ownerSeen && g.owner.Transform != nil {
		g.owner.Transform.Snapshot()
	}
	g.UpdateAABB()
}

// Destroy tears the group down by clearing its member list; member entities
// are not destroyed with the group.
func (g *CollisionGroup) Destroy() {
	for _, b := range g.bindings {
		g.owner.Unbind(b)
	}
	g.bindings = nil
	g.solidEntities = nil
	g.saves = make(map[*entity.Entity]*relocSave)
	g.aabb.Reset()
	g.prevAABB.Reset()
	if g.owner.CollisionGroup == entity.Group(g) {
		g.owner.CollisionGroup = nil
	}
}
