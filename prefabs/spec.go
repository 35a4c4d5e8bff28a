package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SceneSpec is the declarative description of one scene: scheduler tuning,
// static world geometry, and the entity tree.
type SceneSpec struct {
	Name      string        `yaml:"name"`
	Scheduler SchedulerSpec `yaml:"scheduler"`
	Statics   []StaticSpec  `yaml:"statics"`
	Entities  []EntitySpec  `yaml:"entities"`
}

// SchedulerSpec tunes the scene's logic scheduler. Zero values take the
// component defaults.
type SchedulerSpec struct {
	StepLength      float64 `yaml:"step_length"`
	MaxStepsPerTick int     `yaml:"max_steps_per_tick"`
	Buffer          float64 `yaml:"buffer"`
}

// StaticSpec is one immovable box of world geometry, screen-space with
// top < bottom.
type StaticSpec struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

type EntitySpec struct {
	Name           string         `yaml:"name"`
	Transform      *TransformSpec `yaml:"transform"`
	CollisionTypes []string       `yaml:"collision_types"`
	Immobile       bool           `yaml:"immobile"`
	Solid          []RuleSpec     `yaml:"solid"`
	Shapes         []ShapeSpec    `yaml:"shapes"`

	// Group makes the entity the owner of its own collision group, so its
	// children ride along as one coupled body.
	Group bool `yaml:"group"`

	Rotation *RotationSpec `yaml:"rotation"`
	Script   string        `yaml:"script"`

	Children []EntitySpec `yaml:"children"`
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// RuleSpec declares one solid response: when a shape of collision type Type
// meets one of type Against, Response names the resolution behavior.
type RuleSpec struct {
	Type     string `yaml:"type"`
	Against  string `yaml:"against"`
	Response string `yaml:"response"`
}

type ShapeSpec struct {
	Type    string  `yaml:"type"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// RotationSpec attaches a rotational-movement component. Velocity is in
// radians per millisecond.
type RotationSpec struct {
	AngularVelocity float64 `yaml:"angular_velocity"`
}

// LoadSpec reads and unmarshals a yaml spec file, preferring an on-disk copy
// over the embedded one so edits are picked up by the watcher.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec loads the named scene definition.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
