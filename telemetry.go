package main

import (
	"fmt"
	"time"

	"github.com/nonanimation/platypus/entity"
)

// telemetry accumulates the scheduler's time-elapsed measurements per rendered
// frame and keeps the previous frame's totals for display.
type telemetry struct {
	owner   *entity.Entity
	binding *entity.Binding

	logic     time.Duration
	collision time.Duration
	steps     int

	lastLogic     time.Duration
	lastCollision time.Duration
	lastSteps     int
}

func newTelemetry() *telemetry {
	return &telemetry{}
}

// attach moves the telemetry listener onto a (possibly rebuilt) scene owner.
func (t *telemetry) attach(owner *entity.Entity) {
	if t.owner != nil && t.binding != nil {
		t.owner.Unbind(t.binding)
	}
	t.owner = owner
	t.binding = owner.Bind(entity.MessageTimeElapsed, func(m entity.Message) {
		te := m.(entity.TimeElapsed)
		switch te.Name {
		case entity.TimeElapsedLogic:
			t.logic += te.Time
		case entity.TimeElapsedCollision:
			t.collision += te.Time
			t.steps++
		}
	})
}

// beginFrame rolls the running totals into the displayed ones.
func (t *telemetry) beginFrame() {
	t.lastLogic, t.lastCollision, t.lastSteps = t.logic, t.collision, t.steps
	t.logic, t.collision, t.steps = 0, 0, 0
}

func (t *telemetry) String() string {
	return fmt.Sprintf("steps: %d  logic: %.2fms  collision: %.2fms",
		t.lastSteps,
		float64(t.lastLogic)/float64(time.Millisecond),
		float64(t.lastCollision)/float64(time.Millisecond))
}
