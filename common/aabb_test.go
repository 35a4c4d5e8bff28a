package common

import "testing"

func TestAABBIncludeUnion(t *testing.T) {
	cases := []struct {
		name   string
		first  [4]float64 // x, y, w, h
		second [4]float64
		want   [4]float64 // left, top, right, bottom
	}{
		{"disjoint", [4]float64{0, 0, 2, 2}, [4]float64{10, 10, 2, 2}, [4]float64{-1, -1, 11, 11}},
		{"contained", [4]float64{0, 0, 10, 10}, [4]float64{1, 1, 2, 2}, [4]float64{-5, -5, 5, 5}},
		{"overlapping", [4]float64{0, 0, 4, 4}, [4]float64{3, 0, 4, 4}, [4]float64{-2, -2, 5, 2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAABB(c.first[0], c.first[1], c.first[2], c.first[3])
			b := NewAABB(c.second[0], c.second[1], c.second[2], c.second[3])
			a.Include(b)
			if a.Left != c.want[0] || a.Top != c.want[1] || a.Right != c.want[2] || a.Bottom != c.want[3] {
				t.Fatalf("got bounds (%v, %v, %v, %v), want %v", a.Left, a.Top, a.Right, a.Bottom, c.want)
			}
		})
	}
}

func TestAABBEmptyIdentity(t *testing.T) {
	t.Run("include_into_empty_copies", func(t *testing.T) {
		var a AABB
		a.Reset()
		b := NewAABB(3, 4, 6, 8)
		a.Include(b)
		if !a.Matches(b) {
			t.Fatalf("empty box should copy the included box, got %+v", a)
		}
	})

	t.Run("include_empty_is_noop", func(t *testing.T) {
		a := NewAABB(3, 4, 6, 8)
		before := a.Copy()
		var b AABB
		b.Reset()
		a.Include(&b)
		if !a.Matches(before) {
			t.Fatalf("including an empty box changed bounds: %+v", a)
		}
	})

	t.Run("empty_never_intersects", func(t *testing.T) {
		var a AABB
		a.Reset()
		b := NewAABB(0, 0, 100, 100)
		if a.Intersects(b) || b.Intersects(&a) {
			t.Fatal("empty box should not intersect anything")
		}
	})
}

func TestAABBMove(t *testing.T) {
	a := NewAABB(0, 0, 10, 4)
	a.Move(5, 5)
	if a.Left != 0 || a.Right != 10 || a.Top != 3 || a.Bottom != 7 {
		t.Fatalf("unexpected bounds after move: (%v, %v, %v, %v)", a.Left, a.Right, a.Top, a.Bottom)
	}
	if a.Width != 10 || a.Height != 4 {
		t.Fatalf("move changed dimensions: %vx%v", a.Width, a.Height)
	}
}

func TestAABBResetAfterInclude(t *testing.T) {
	a := NewAABB(0, 0, 10, 10)
	a.Reset()
	if !a.Empty {
		t.Fatal("expected empty after reset")
	}
	b := NewAABB(1, 2, 4, 4)
	a.Include(b)
	if a.Empty || !a.Matches(b) {
		t.Fatalf("expected reset box to take included bounds, got %+v", a)
	}
}
