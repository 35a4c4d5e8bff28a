package component

import (
	"time"

	"github.com/nonanimation/platypus/entity"
)

const (
	defaultStepLength      = 15.0
	defaultMaxStepsPerTick = 10
)

// HandlerLogicConfig configures the logic scheduler. Zero values take the
// defaults: 15 ms steps, 10 steps per tick, culling buffer of a quarter of
// the viewport width.
type HandlerLogicConfig struct {
	StepLength      float64
	MaxStepsPerTick int
	Buffer          float64
}

// HandlerLogic converts variable wall-clock frame time into a bounded number
// of fixed-size simulation steps. Each step dispatches handle-logic to every
// registered entity inside the buffered camera window, then triggers
// check-collision-group on the owner so an attached collision group resolves
// per sub-step rather than once per rendered frame.
//
// All work is synchronous within the triggering tick dispatch; the registered
// list and camera window are only mutated from this component's own handlers
// on the single simulation goroutine.
type HandlerLogic struct {
	owner *entity.Entity
	ctx   entity.Broadcaster

	stepLength   float64
	maxSteps     int
	leftoverTime float64

	camera   *entity.CameraWindow
	entities []*entity.Entity

	// step is reused across all entities and steps; handlers must not
	// retain it past the current dispatch.
	step entity.StepMessage

	bindings []*entity.Binding
}

// NewHandlerLogic attaches a logic scheduler to owner. The broadcaster is the
// injected simulation context receiving time-elapsed telemetry; it may be nil.
func NewHandlerLogic(owner *entity.Entity, ctx entity.Broadcaster, cfg HandlerLogicConfig) *HandlerLogic {
	h := &HandlerLogic{
		owner:      owner,
		ctx:        ctx,
		stepLength: cfg.StepLength,
		maxSteps:   cfg.MaxStepsPerTick,
		camera:     entity.NewCameraWindow(cfg.Buffer),
	}
	if h.stepLength <= 0 {
		h.stepLength = defaultStepLength
	}
	if h.maxSteps <= 0 {
		h.maxSteps = defaultMaxStepsPerTick
	}
	h.step.Camera = h.camera

	h.bindings = append(h.bindings,
		owner.Bind(entity.MessageTick, func(m entity.Message) {
			h.tick(m.(entity.Tick).DeltaT)
		}),
		owner.Bind(entity.MessageLogic, func(m entity.Message) {
			h.tick(m.(entity.Logic).DeltaT)
		}),
		owner.Bind(entity.MessageCameraUpdate, func(m entity.Message) {
			cu := m.(entity.CameraUpdate)
			h.camera.Update(cu.ViewportLeft, cu.ViewportTop, cu.ViewportWidth, cu.ViewportHeight)
		}),
		owner.Bind(entity.MessageChildEntityAdded, func(m entity.Message) {
			h.addEntity(m.(entity.ChildEntityAdded).Child)
		}),
	)
	return h
}

// addEntity registers a child that accepts handle-logic.
func (h *HandlerLogic) addEntity(e *entity.Entity) {
	if e == nil || !e.Accepts(entity.MessageHandleLogic) {
		return
	}
	for _, cur := range h.entities {
		if cur == e {
			return
		}
	}
	h.entities = append(h.entities, e)
}

// tick runs one scheduling pass for deltaT milliseconds of real elapsed time.
func (h *HandlerLogic) tick(deltaT float64) {
	h.leftoverTime += deltaT

	cycles := int(h.leftoverTime / h.stepLength)
	if cycles == 0 {
		// Not enough accumulated time for a single step: carry the
		// residual to the next tick instead of discarding it.
		return
	}

	// Distribute the accumulated time evenly across the computed step count
	// before clamping; drift is smoothed rather than stepped uniformly.
	h.step.DeltaT = h.leftoverTime / float64(cycles)
	h.leftoverTime = 0

	if cycles > h.maxSteps {
		// Degrade by dropping excess simulation time rather than
		// stalling the host under load.
		cycles = h.maxSteps
	}

	for i := 0; i < cycles; i++ {
		begin := time.Now()
		// Back-to-front so in-place removal during iteration is safe.
		for j := len(h.entities) - 1; j >= 0; j-- {
			e := h.entities[j]
			if e.Transform != nil && !h.camera.Contains(e.Transform.X, e.Transform.Y) {
				// Off-camera entities are skipped, not evicted.
				continue
			}
			if e.Trigger(entity.HandleLogic{Step: &h.step}) == 0 {
				// No listeners remained; the component was destroyed.
				h.entities = append(h.entities[:j], h.entities[j+1:]...)
			}
		}
		h.broadcast(entity.TimeElapsed{Name: entity.TimeElapsedLogic, Time: time.Since(begin)})

		begin = time.Now()
		h.owner.Trigger(entity.CheckCollisionGroup{Step: &h.step})
		h.broadcast(entity.TimeElapsed{Name: entity.TimeElapsedCollision, Time: time.Since(begin)})
	}

	// Epilogue measurement, kept for instrumentation symmetry.
	begin := time.Now()
	h.broadcast(entity.TimeElapsed{Name: entity.TimeElapsedLogic, Time: time.Since(begin)})
}

func (h *HandlerLogic) broadcast(msg entity.Message) {
	if h.ctx != nil {
		h.ctx.Broadcast(msg)
	}
}

// Camera returns the scheduler's culling window.
func (h *HandlerLogic) Camera() *entity.CameraWindow {
	return h.camera
}

// Registered returns the entities currently registered for handle-logic.
func (h *HandlerLogic) Registered() []*entity.Entity {
	return h.entities
}

// Leftover returns the residual milliseconds carried to the next tick.
func (h *HandlerLogic) Leftover() float64 {
	return h.leftoverTime
}

// Destroy detaches the scheduler from its owner.
func (h *HandlerLogic) Destroy() {
	for _, b := range h.bindings {
		h.owner.Unbind(b)
	}
	h.bindings = nil
	h.entities = nil
}
