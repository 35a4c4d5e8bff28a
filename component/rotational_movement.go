package component

import (
	"math"

	"github.com/nonanimation/platypus/entity"
)

// RotationalMovement is a simple kinematic integrator and the canonical
// handle-logic consumer: each simulation step it advances the owner's
// rotation by its angular velocity and announces the change.
type RotationalMovement struct {
	owner *entity.Entity

	// AngularVelocity is in radians per millisecond.
	AngularVelocity float64

	binding *entity.Binding
}

// NewRotationalMovement attaches the integrator to owner.
func NewRotationalMovement(owner *entity.Entity, angularVelocity float64) *RotationalMovement {
	r := &RotationalMovement{owner: owner, AngularVelocity: angularVelocity}
	r.binding = owner.Bind(entity.MessageHandleLogic, func(m entity.Message) {
		r.step(m.(entity.HandleLogic).Step.DeltaT)
	})
	return r
}

func (r *RotationalMovement) step(deltaT float64) {
	if r.owner.Transform == nil || r.AngularVelocity == 0 {
		return
	}
	rot := math.Mod(r.owner.Transform.Rotation+r.AngularVelocity*deltaT, 2*math.Pi)
	r.owner.Transform.Rotation = rot
	r.owner.Trigger(entity.OrientationUpdated{Rotation: rot})
}

// Destroy detaches the integrator; the scheduler evicts the entity lazily
// once no handle-logic listener remains.
func (r *RotationalMovement) Destroy() {
	r.owner.Unbind(r.binding)
	r.binding = nil
}
