package component

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/nonanimation/platypus/entity"
)

const scriptLogicDispatch = `
if __phase == "update" {
	update(__engine, __state, __delta)
}
`

// ScriptLogic runs a tengo script as a handle-logic consumer. The script
// defines update(engine, state, delta) and is invoked once per simulation
// step with the adjusted step delta in milliseconds. The whole program
// re-executes on every run, so cross-step state lives in the persistent
// state map, not in script globals.
type ScriptLogic struct {
	owner    *entity.Entity
	compiled *tengo.Compiled
	engine   *tengo.ImmutableMap
	state    *tengo.Map

	binding *entity.Binding
}

// NewScriptLogic compiles src and attaches the component to owner.
func NewScriptLogic(owner *entity.Entity, src []byte) (*ScriptLogic, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+scriptLogicDispatch)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__delta", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("component: compile script for %q: %w", owner.Name, err)
	}

	s := &ScriptLogic{
		owner:    owner,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.engine = s.buildEngine()
	s.binding = owner.Bind(entity.MessageHandleLogic, func(m entity.Message) {
		s.step(m.(entity.HandleLogic).Step.DeltaT)
	})
	return s, nil
}

func (s *ScriptLogic) step(deltaT float64) {
	if err := s.compiled.Set("__phase", "update"); err != nil {
		log.Printf("script-logic: entity=%s set phase: %v", s.owner.Name, err)
		return
	}
	if err := s.compiled.Set("__engine", s.engine); err != nil {
		log.Printf("script-logic: entity=%s set engine: %v", s.owner.Name, err)
		return
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		log.Printf("script-logic: entity=%s set state: %v", s.owner.Name, err)
		return
	}
	if err := s.compiled.Set("__delta", deltaT); err != nil {
		log.Printf("script-logic: entity=%s set delta: %v", s.owner.Name, err)
		return
	}
	if err := s.compiled.Run(); err != nil {
		log.Printf("script-logic: entity=%s update error: %v", s.owner.Name, err)
	}
}

func (s *ScriptLogic) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t := s.owner.Transform
		if t == nil {
			return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: 0}, &tengo.Float{Value: 0}}}, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: t.X}, &tengo.Float{Value: t.Y}}}, nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.owner.Transform == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		s.owner.Transform.X = x
		s.owner.Transform.Y = y
		return tengo.TrueValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.owner.Transform == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		dx, okX := tengo.ToFloat64(args[0])
		dy, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		s.owner.Transform.X += dx
		s.owner.Transform.Y += dy
		return tengo.TrueValue, nil
	}}

	values["get_rotation"] = &tengo.UserFunction{Name: "get_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.owner.Transform == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: s.owner.Transform.Rotation}, nil
	}}

	values["set_rotation"] = &tengo.UserFunction{Name: "set_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.owner.Transform == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		rot, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		s.owner.Transform.Rotation = rot
		s.owner.Trigger(entity.OrientationUpdated{Rotation: rot})
		return tengo.TrueValue, nil
	}}

	values["name"] = &tengo.String{Value: s.owner.Name}

	return &tengo.ImmutableMap{Value: values}
}

// Destroy detaches the component from its owner.
func (s *ScriptLogic) Destroy() {
	s.owner.Unbind(s.binding)
	s.binding = nil
}
