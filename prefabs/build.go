package prefabs

import (
	"fmt"

	"github.com/nonanimation/platypus/component"
	"github.com/nonanimation/platypus/entity"
)

// BuildScene constructs a live scene from its spec. The scene owner carries
// the logic scheduler and a container collision group; nested entities join
// their parent's group before the scheduler ever hears about them, so the
// container never claims a member twice.
func BuildScene(spec *SceneSpec, resolver component.GroupResolver) (*entity.Scene, *component.HandlerLogic, error) {
	scene := entity.NewScene(spec.Name)
	owner := scene.Owner()

	sched := component.NewHandlerLogic(owner, scene, component.HandlerLogicConfig{
		StepLength:      spec.Scheduler.StepLength,
		MaxStepsPerTick: spec.Scheduler.MaxStepsPerTick,
		Buffer:          spec.Scheduler.Buffer,
	})
	component.NewCollisionGroup(owner, resolver)

	for i := range spec.Entities {
		e, err := buildEntity(&spec.Entities[i], resolver)
		if err != nil {
			return nil, nil, err
		}
		scene.AddEntity(e)
		announceDescendants(owner, e)
	}

	return scene, sched, nil
}

// buildEntity constructs one entity and its subtree. The collision group, if
// any, is attached before children so their additions are picked up
// reactively.
func buildEntity(spec *EntitySpec, resolver component.GroupResolver) (*entity.Entity, error) {
	var e *entity.Entity
	if spec.Transform != nil {
		e = entity.NewAt(spec.Name, spec.Transform.X, spec.Transform.Y)
		e.Transform.Z = spec.Transform.Z
		e.Transform.PreviousZ = spec.Transform.Z
	} else {
		e = entity.New(spec.Name)
	}

	e.CollisionTypes = spec.CollisionTypes
	e.Immobile = spec.Immobile
	for _, rule := range spec.Solid {
		if e.SolidCollisions == nil {
			e.SolidCollisions = make(map[string][]entity.CollisionRule)
		}
		e.SolidCollisions[rule.Type] = append(e.SolidCollisions[rule.Type], entity.CollisionRule{
			Against:  rule.Against,
			Response: rule.Response,
		})
	}
	for _, s := range spec.Shapes {
		e.AddShape(s.Type, s.Width, s.Height, s.OffsetX, s.OffsetY)
	}

	if spec.Group {
		component.NewCollisionGroup(e, resolver)
	}
	if spec.Rotation != nil {
		component.NewRotationalMovement(e, spec.Rotation.AngularVelocity)
	}
	if spec.Script != "" {
		src, err := LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("prefabs: entity %q script: %w", spec.Name, err)
		}
		if _, err := component.NewScriptLogic(e, src); err != nil {
			return nil, fmt.Errorf("prefabs: entity %q: %w", spec.Name, err)
		}
	}

	for i := range spec.Children {
		child, err := buildEntity(&spec.Children[i], resolver)
		if err != nil {
			return nil, err
		}
		e.AddChild(child)
	}

	return e, nil
}

// announceDescendants tells the scene owner about every nested entity so the
// scheduler can register the ones that take logic updates. Group membership
// is already settled, so the container group ignores these.
func announceDescendants(owner *entity.Entity, e *entity.Entity) {
	for _, child := range e.Children {
		owner.Trigger(entity.ChildEntityAdded{Child: child})
		announceDescendants(owner, child)
	}
}
