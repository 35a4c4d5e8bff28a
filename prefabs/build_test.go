package prefabs

import (
	"testing"

	"github.com/nonanimation/platypus/entity"
)

func TestLoadSceneSpec(t *testing.T) {
	spec, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if spec.Name != "playground" {
		t.Errorf("name = %q, want playground", spec.Name)
	}
	if got := spec.Scheduler.StepLength; got != 15 {
		t.Errorf("step_length = %v, want 15", got)
	}
	if len(spec.Statics) != 3 {
		t.Errorf("statics = %d, want 3", len(spec.Statics))
	}
	if len(spec.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(spec.Entities))
	}
	platform := spec.Entities[0]
	if !platform.Group || platform.Script != "platform.tengo" {
		t.Errorf("platform group/script = %v/%q", platform.Group, platform.Script)
	}
	if len(platform.Children) != 1 || len(platform.Children[0].Children) != 1 {
		t.Fatalf("expected platform -> crate -> beacon nesting")
	}
}

func TestBuildSceneNestedGroups(t *testing.T) {
	spec, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	scene, sched, err := BuildScene(spec, nil)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}

	if len(scene.Entities()) != 1 {
		t.Fatalf("scene entities = %d, want 1", len(scene.Entities()))
	}
	platform := scene.Entities()[0]
	crate := platform.Children[0]
	beacon := crate.Children[0]

	root := scene.Owner().CollisionGroup
	if root == nil {
		t.Fatal("scene owner has no collision group")
	}
	if got := root.Members(); len(got) != 1 || got[0] != platform {
		t.Fatalf("root members = %v, want [platform]", names(got))
	}
	// Nested members are reachable transitively, never held twice.
	if !root.Contains(crate) || !root.Contains(beacon) {
		t.Error("root group should contain nested members transitively")
	}
	if platform.CollisionGroup == nil || !platform.CollisionGroup.Contains(crate) {
		t.Error("platform group should contain crate")
	}
	if crate.CollisionGroup == nil || !crate.CollisionGroup.Contains(beacon) {
		t.Error("crate group should contain beacon")
	}

	// Only logic consumers register with the scheduler, wherever they sit
	// in the tree.
	reg := sched.Registered()
	if !containsEntity(reg, platform) || !containsEntity(reg, beacon) {
		t.Errorf("registered = %v, want platform and beacon", names(reg))
	}
	if containsEntity(reg, crate) {
		t.Errorf("crate takes no logic updates but was registered")
	}
}

func containsEntity(list []*entity.Entity, e *entity.Entity) bool {
	for _, cur := range list {
		if cur == e {
			return true
		}
	}
	return false
}

func names(list []*entity.Entity) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name
	}
	return out
}
