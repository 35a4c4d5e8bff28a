package component

import (
	"testing"

	"github.com/nonanimation/platypus/entity"
)

func TestScriptLogicStatePersistsAcrossSteps(t *testing.T) {
	// Moves by an increasing amount each step; the counter lives in the
	// persistent state map because the program re-executes per step.
	src := []byte(`
update := func(engine, state, delta) {
	if is_undefined(state.step) {
		state.step = 0.0
	}
	state.step += 1.0
	engine.move(state.step, 0.0)
}
`)

	owner := entity.New("scene")
	NewHandlerLogic(owner, nil, HandlerLogicConfig{})

	e := entity.NewAt("scripted", 0, 0)
	if _, err := NewScriptLogic(e, src); err != nil {
		t.Fatalf("NewScriptLogic: %v", err)
	}
	owner.Trigger(entity.ChildEntityAdded{Child: e})

	// Three 15ms steps: moves of 1, 2 and 3.
	owner.Trigger(entity.Tick{DeltaT: 45})
	if e.Transform.X != 6 {
		t.Errorf("x = %v, want 6", e.Transform.X)
	}
}

func TestScriptLogicCompileError(t *testing.T) {
	e := entity.New("broken")
	if _, err := NewScriptLogic(e, []byte(`update := func(`)); err == nil {
		t.Fatal("expected a compile error")
	}
	if e.Accepts(entity.MessageHandleLogic) {
		t.Error("failed script must not leave a binding behind")
	}
}

func TestScriptLogicDestroyStopsSteps(t *testing.T) {
	owner := entity.New("scene")
	NewHandlerLogic(owner, nil, HandlerLogicConfig{})

	e := entity.NewAt("scripted", 0, 0)
	s, err := NewScriptLogic(e, []byte(`update := func(engine, state, delta) { engine.move(1.0, 0.0) }`))
	if err != nil {
		t.Fatalf("NewScriptLogic: %v", err)
	}
	owner.Trigger(entity.ChildEntityAdded{Child: e})

	owner.Trigger(entity.Tick{DeltaT: 15})
	if e.Transform.X != 1 {
		t.Fatalf("x = %v, want 1", e.Transform.X)
	}

	s.Destroy()
	owner.Trigger(entity.Tick{DeltaT: 15})
	if e.Transform.X != 1 {
		t.Errorf("script stepped after destroy: x = %v", e.Transform.X)
	}
}
