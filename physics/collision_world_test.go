package physics

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/nonanimation/platypus/component"
	"github.com/nonanimation/platypus/entity"
)

func newSolid(name string, x, y, w, h float64) *entity.Entity {
	e := entity.NewAt(name, x, y)
	e.CollisionTypes = []string{name}
	e.SolidCollisions = map[string][]entity.CollisionRule{
		name: {{Against: "terrain", Response: "stop"}},
	}
	e.AddShape(name, w, h, 0, 0)
	return e
}

func TestSweepClampsToGap(t *testing.T) {
	w := NewWorld()
	// wall occupying x [100, 120], y [0, 40]
	w.AddStaticBox(100, 0, 120, 40)

	tests := []struct {
		name    string
		bb      cp.BB
		dx, dy  float64
		want    float64
		wantHit bool
	}{
		{
			name: "clamped moving right",
			bb:   cp.BB{L: 0, B: 10, R: 20, T: 30},
			dx:   200, want: 80, wantHit: true,
		},
		{
			name: "clamped moving left",
			bb:   cp.BB{L: 200, B: 10, R: 220, T: 30},
			dx:   -300, want: -80, wantHit: true,
		},
		{
			name: "free when short of the wall",
			bb:   cp.BB{L: 0, B: 10, R: 20, T: 30},
			dx:   50, want: 50, wantHit: false,
		},
		{
			name: "free when passing beside the wall",
			bb:   cp.BB{L: 0, B: 50, R: 20, T: 70},
			dx:   200, want: 200, wantHit: false,
		},
		{
			name: "clamped moving down onto the wall top",
			bb:   cp.BB{L: 105, B: -40, R: 115, T: -20},
			dy:   100, want: 20, wantHit: true,
		},
		{
			name: "overlapping shapes are ignored",
			bb:   cp.BB{L: 110, B: 10, R: 130, T: 30},
			dx:   40, want: 40, wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := w.sweep(tt.bb, tt.dx, tt.dy)
			if got != tt.want || hit != tt.wantHit {
				t.Errorf("sweep = (%v, %v), want (%v, %v)", got, hit, tt.want, tt.wantHit)
			}
		})
	}
}

func TestResolveSingleStopsAtWall(t *testing.T) {
	w := NewWorld()
	w.AddStaticBox(100, 0, 120, 40)

	e := newSolid("crate", 10, 20, 20, 20)
	e.Transform.X = 300

	w.resolveSingle(e)

	// previous right edge at 20, wall at 100
	if e.Transform.X != 90 {
		t.Errorf("x = %v, want 90", e.Transform.X)
	}
	if e.Transform.PreviousX != e.Transform.X {
		t.Errorf("previous not snapshotted: %v != %v", e.Transform.PreviousX, e.Transform.X)
	}
}

func TestResolveAggregateCarriesMembers(t *testing.T) {
	w := NewWorld()
	w.AddStaticBox(100, 0, 120, 100)

	platform := newSolid("platform", 10, 50, 20, 10)
	pg := component.NewCollisionGroup(platform, w)
	crate := newSolid("crate", 10, 35, 10, 10)
	pg.AddCollisionEntity(crate)

	// Free move well short of the wall: the crate rides along.
	platform.Transform.X = 50
	w.ResolveCollisionGroup(pg, 15)

	if platform.Transform.X != 50 {
		t.Fatalf("platform x = %v, want 50", platform.Transform.X)
	}
	if crate.Transform.X != 50 {
		t.Errorf("crate x = %v, want 50: riders move with the platform", crate.Transform.X)
	}
	if platform.Transform.PreviousX != 50 || crate.Transform.PreviousX != 50 {
		t.Errorf("previous positions not snapshotted after relocation")
	}
}

func TestResolveAggregateOwnerStop(t *testing.T) {
	w := NewWorld()
	w.AddStaticBox(100, 0, 120, 100)

	platform := newSolid("platform", 10, 50, 20, 10)
	pg := component.NewCollisionGroup(platform, w)
	crate := newSolid("crate", 10, 35, 10, 10)
	pg.AddCollisionEntity(crate)

	// The platform's right edge starts at 20, so only 80 of the 200 is
	// allowed; the owner's own shape is the blocker.
	platform.Transform.X = 210
	w.ResolveCollisionGroup(pg, 15)

	if platform.Transform.X != 90 {
		t.Fatalf("platform x = %v, want 90", platform.Transform.X)
	}
	// The owner was stopped by its own contact, so the carried delta is
	// zeroed and the crate keeps only its own motion this cycle.
	if crate.Transform.X != 10 {
		t.Errorf("crate x = %v, want 10", crate.Transform.X)
	}
	if platform.Transform.PreviousX != 90 || crate.Transform.PreviousX != 10 {
		t.Errorf("previous positions not snapshotted after relocation")
	}
}

func TestResolveAggregateAbsorbsSubPixelDrift(t *testing.T) {
	w := NewWorld()
	w.AddStaticBox(100, 0, 120, 100)

	platform := newSolid("platform", 10, 50, 20, 10)
	pg := component.NewCollisionGroup(platform, w)
	crate := newSolid("crate", 10, 35, 10, 10)
	pg.AddCollisionEntity(crate)

	// Drift far below the jitter threshold re-anchors previous positions
	// across the whole group instead of producing a sweep.
	platform.Transform.X = 10.005
	w.ResolveCollisionGroup(pg, 15)

	if platform.Transform.X != 10.005 || platform.Transform.PreviousX != 10.005 {
		t.Errorf("platform x/prev = %v/%v, want both 10.005",
			platform.Transform.X, platform.Transform.PreviousX)
	}
	if crate.Transform.X != 10.005 || crate.Transform.PreviousX != 10.005 {
		t.Errorf("crate x/prev = %v/%v, want both 10.005",
			crate.Transform.X, crate.Transform.PreviousX)
	}
	if crate.Transform.Y != 35 {
		t.Errorf("crate y = %v, want 35", crate.Transform.Y)
	}
}

func TestContainerGroupResolvesMembersIndependently(t *testing.T) {
	w := NewWorld()
	w.AddStaticBox(100, 0, 120, 100)

	scene := entity.New("scene")
	root := component.NewCollisionGroup(scene, w)

	a := newSolid("a", 10, 20, 20, 20)
	b := newSolid("b", 10, 70, 20, 20)
	root.AddCollisionEntity(a)
	root.AddCollisionEntity(b)

	a.Transform.X = 300
	b.Transform.X = 50

	w.ResolveCollisionGroup(root, 15)

	if a.Transform.X != 90 {
		t.Errorf("a x = %v, want 90", a.Transform.X)
	}
	if b.Transform.X != 50 {
		t.Errorf("b x = %v, want 50", b.Transform.X)
	}
}
