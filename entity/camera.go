package entity

// CameraWindow is the culling rectangle the logic scheduler reads every step.
// Buffer widens the window so entities just off screen keep receiving logic
// updates. When no explicit buffer was configured, a default of one quarter of
// the viewport width is assigned on the first update and never re-defaulted.
type CameraWindow struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
	Buffer float64

	bufferSet bool
}

// NewCameraWindow creates a window with an explicit buffer. A non-positive
// buffer defers to the width/4 default applied on the first Update.
func NewCameraWindow(buffer float64) *CameraWindow {
	c := &CameraWindow{}
	if buffer > 0 {
		c.Buffer = buffer
		c.bufferSet = true
	}
	return c
}

// Update replaces the viewport rectangle. The default buffer is assigned
// exactly once.
func (c *CameraWindow) Update(left, top, width, height float64) {
	c.Left = left
	c.Top = top
	c.Width = width
	c.Height = height
	if !c.bufferSet {
		c.Buffer = width / 4.0
		c.bufferSet = true
	}
}

// Contains reports whether (x, y) lies within the buffered window.
func (c *CameraWindow) Contains(x, y float64) bool {
	return x >= c.Left-c.Buffer && x <= c.Left+c.Width+c.Buffer &&
		y >= c.Top-c.Buffer && y <= c.Top+c.Height+c.Buffer
}
