package common

// AABB is an axis-aligned bounding box described by its center point and
// dimensions. Reset marks the box empty, which acts as the identity for
// Include.
type AABB struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	HalfWidth  float64
	HalfHeight float64
	Left       float64
	Right      float64
	Top        float64
	Bottom     float64

	Empty bool
}

// NewAABB creates a box centered at (x, y) with the given dimensions.
func NewAABB(x, y, width, height float64) *AABB {
	a := &AABB{}
	a.SetAll(x, y, width, height)
	return a
}

// Reset empties the box so the next Include starts a fresh union.
func (a *AABB) Reset() {
	a.Empty = true
	a.X = 0
	a.Y = 0
	a.Width = 0
	a.Height = 0
	a.HalfWidth = 0
	a.HalfHeight = 0
	a.Left = 0
	a.Right = 0
	a.Top = 0
	a.Bottom = 0
}

// SetAll positions the box at center (x, y) with the given dimensions and
// recomputes the derived edges.
func (a *AABB) SetAll(x, y, width, height float64) {
	a.Empty = false
	a.X = x
	a.Y = y
	a.Width = width
	a.Height = height
	a.HalfWidth = width / 2.0
	a.HalfHeight = height / 2.0
	a.Left = x - a.HalfWidth
	a.Right = x + a.HalfWidth
	a.Top = y - a.HalfHeight
	a.Bottom = y + a.HalfHeight
}

// Set copies other into a. A nil or empty other resets a.
func (a *AABB) Set(other *AABB) {
	if other == nil || other.Empty {
		a.Reset()
		return
	}
	a.SetAll(other.X, other.Y, other.Width, other.Height)
}

// SetBounds positions the box by its edges.
func (a *AABB) SetBounds(left, top, right, bottom float64) {
	a.SetAll((left+right)/2.0, (top+bottom)/2.0, right-left, bottom-top)
}

// Move translates the box center to (x, y) keeping its dimensions.
func (a *AABB) Move(x, y float64) {
	a.X = x
	a.Y = y
	a.Left = x - a.HalfWidth
	a.Right = x + a.HalfWidth
	a.Top = y - a.HalfHeight
	a.Bottom = y + a.HalfHeight
}

// Include grows the box to the union of itself and other. Including into an
// empty box copies other; including an empty other is a no-op.
func (a *AABB) Include(other *AABB) {
	if other == nil || other.Empty {
		return
	}
	if a.Empty {
		a.Set(other)
		return
	}
	left := a.Left
	if other.Left < left {
		left = other.Left
	}
	right := a.Right
	if other.Right > right {
		right = other.Right
	}
	top := a.Top
	if other.Top < top {
		top = other.Top
	}
	bottom := a.Bottom
	if other.Bottom > bottom {
		bottom = other.Bottom
	}
	a.SetBounds(left, top, right, bottom)
}

// Contains reports whether other lies entirely within a.
func (a *AABB) Contains(other *AABB) bool {
	if a.Empty || other == nil || other.Empty {
		return false
	}
	return other.Left >= a.Left && other.Right <= a.Right &&
		other.Top >= a.Top && other.Bottom <= a.Bottom
}

// Intersects reports whether the two boxes overlap.
func (a *AABB) Intersects(other *AABB) bool {
	if a.Empty || other == nil || other.Empty {
		return false
	}
	return a.Left < other.Right && a.Right > other.Left &&
		a.Top < other.Bottom && a.Bottom > other.Top
}

// Matches reports whether both boxes have the same center and dimensions.
func (a *AABB) Matches(other *AABB) bool {
	if other == nil {
		return false
	}
	if a.Empty || other.Empty {
		return a.Empty == other.Empty
	}
	return a.X == other.X && a.Y == other.Y && a.Width == other.Width && a.Height == other.Height
}

// Copy returns an independent copy of the box.
func (a *AABB) Copy() *AABB {
	c := *a
	return &c
}
