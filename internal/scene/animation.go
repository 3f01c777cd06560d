package scene

// Animation steps through a table of atlas from_rects at a fixed tick rate.
type Animation struct {
	// frames are atlas sub-rectangles, one per animation state.
	frames [][4]float32
	// rate is how many ticks must pass before advancing a frame.
	rate int

	frameCounter int
	frameIndex   int
}

// NewAnimation creates an animation over the given frame table. rate is the
// number of ticks per frame; a rate of 0 advances every tick.
func NewAnimation(frames [][4]float32, rate int) *Animation {
	return &Animation{frames: frames, rate: rate}
}

// Tick advances the tick counter and, once enough ticks have passed, moves
// to the next frame, wrapping to the first after the last.
func (a *Animation) Tick() {
	a.frameCounter++
	if a.frameCounter > a.rate {
		a.frameIndex++
		if a.frameIndex >= len(a.frames) {
			a.frameIndex = 0
		}
		a.frameCounter = 0
	}
}

// Stop rewinds the animation to its first frame.
func (a *Animation) Stop() {
	a.frameIndex = 0
	a.frameCounter = 0
}

// Frame returns the current frame's from_rect.
func (a *Animation) Frame() [4]float32 {
	return a.frames[a.frameIndex]
}
