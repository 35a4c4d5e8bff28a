package entity

// Scene is the entity container driving one layer of the simulation. Its
// owner entity carries the scheduler and collision-group components; adding
// or removing entities is announced on the owner bus so those components can
// manage their registries reactively.
type Scene struct {
	owner    *Entity
	entities []*Entity
}

// NewScene creates a scene with a fresh owner entity.
func NewScene(name string) *Scene {
	return &Scene{owner: New(name)}
}

// Owner returns the scene's owner entity.
func (s *Scene) Owner() *Entity {
	return s.owner
}

// Entities returns the scene's child entities in insertion order.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

// AddEntity appends e and triggers child-entity-added on the owner.
func (s *Scene) AddEntity(e *Entity) {
	if e == nil || e == s.owner {
		return
	}
	s.entities = append(s.entities, e)
	e.Parent = s.owner
	s.owner.Children = append(s.owner.Children, e)
	s.owner.Trigger(ChildEntityAdded{Child: e})
}

// RemoveEntity detaches e and triggers child-entity-removed on the owner.
func (s *Scene) RemoveEntity(e *Entity) {
	if e == nil {
		return
	}
	for i, cur := range s.entities {
		if cur == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	for i, cur := range s.owner.Children {
		if cur == e {
			s.owner.Children = append(s.owner.Children[:i], s.owner.Children[i+1:]...)
			break
		}
	}
	e.Parent = nil
	s.owner.Trigger(ChildEntityRemoved{Child: e})
}

// Broadcast delivers msg to the owner and then to every entity, in insertion
// order, and returns the total number of handlers invoked.
func (s *Scene) Broadcast(msg Message) int {
	count := s.owner.Trigger(msg)
	for _, e := range s.entities {
		count += e.Trigger(msg)
	}
	return count
}
