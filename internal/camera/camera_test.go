package camera

import (
	"math"
	"testing"
)

func TestGPUUniformReflectsWindow(t *testing.T) {
	c := NewCamera(10, 20, 800, 600, 800, 600)
	gpu := c.GPU()

	if gpu.ScreenPos != [2]float32{10, 20} {
		t.Errorf("ScreenPos = %v, want (10, 20)", gpu.ScreenPos)
	}
	if gpu.ScreenSize != [2]float32{800, 600} {
		t.Errorf("ScreenSize = %v, want (800, 600)", gpu.ScreenSize)
	}
}

func TestVisibleBound(t *testing.T) {
	c := NewCamera(-100, 50, 1024, 768, 1024, 768)
	b := c.VisibleBound()

	if b.Min != [2]float64{-100, 50} || b.Max != [2]float64{924, 818} {
		t.Errorf("bound = %v, want [(-100,50),(924,818)]", b)
	}
}

func TestPanMovesAgainstCursor(t *testing.T) {
	c := NewCamera(0, 0, 800, 600, 800, 600)

	// Dragging the cursor right by 100px shifts the window 100 world
	// units left (1:1 pixel-to-world at this zoom); cursor down means
	// window up.
	c.Pan(100, 50)
	if c.X != -100 {
		t.Errorf("X = %v, want -100", c.X)
	}
	if c.Y != 50 {
		t.Errorf("Y = %v, want 50", c.Y)
	}
}

func TestScreenToWorldFlipsY(t *testing.T) {
	c := NewCamera(0, 0, 800, 600, 800, 600)

	// Bottom-left pixel maps to the window's bottom-left world corner.
	x, y := c.ScreenToWorld(0, 600)
	if x != 0 || y != 0 {
		t.Errorf("bottom-left = (%v, %v), want (0, 0)", x, y)
	}
	// Top-right pixel maps to X+Width, Y+Height.
	x, y = c.ScreenToWorld(800, 0)
	if x != 800 || y != 600 {
		t.Errorf("top-right = (%v, %v), want (800, 600)", x, y)
	}
}

func TestZoomAtPointKeepsAnchor(t *testing.T) {
	c := NewCamera(0, 0, 800, 600, 800, 600)

	ax, ay := c.ScreenToWorld(200, 150)
	c.ZoomAtPoint(1, 200, 150)

	if c.Width >= 800 || c.Height >= 600 {
		t.Fatalf("zoom in did not shrink window: %v x %v", c.Width, c.Height)
	}
	bx, by := c.ScreenToWorld(200, 150)
	if math.Abs(ax-bx) > 1e-9 || math.Abs(ay-by) > 1e-9 {
		t.Errorf("anchor moved: (%v, %v) -> (%v, %v)", ax, ay, bx, by)
	}
}

func TestZoomRespectsLimits(t *testing.T) {
	c := NewCamera(0, 0, MinWorldWidth, MinWorldWidth*3/4, 800, 600)
	c.ZoomIn()
	if c.Width != MinWorldWidth {
		t.Errorf("zoom in below minimum: width = %v", c.Width)
	}

	c = NewCamera(0, 0, MaxWorldWidth, MaxWorldWidth*3/4, 800, 600)
	c.ZoomOut()
	if c.Width != MaxWorldWidth {
		t.Errorf("zoom out beyond maximum: width = %v", c.Width)
	}
}

func TestDragAccumulates(t *testing.T) {
	c := NewCamera(0, 0, 800, 600, 800, 600)

	c.StartDrag(400, 300)
	c.Drag(420, 300)
	c.Drag(440, 300)
	c.EndDrag()

	if c.X != -40 {
		t.Errorf("X = %v, want -40", c.X)
	}
	if c.IsDragging() {
		t.Error("still dragging after EndDrag")
	}

	// Drag without StartDrag is ignored.
	before := c.X
	c.Drag(500, 300)
	if c.X != before {
		t.Error("Drag moved camera outside a drag operation")
	}
}
