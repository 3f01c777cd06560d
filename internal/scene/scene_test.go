package scene

import (
	"testing"

	"github.com/paulmach/orb"

	"spriteview/internal/shading"
)

func TestAnimationAdvancesAtRate(t *testing.T) {
	frames := [][4]float32{
		{0, 0, 0.5, 0.5},
		{0.5, 0, 0.5, 0.5},
		{0, 0.5, 0.5, 0.5},
	}
	a := NewAnimation(frames, 2)

	if a.Frame() != frames[0] {
		t.Fatalf("initial frame = %v, want %v", a.Frame(), frames[0])
	}

	// rate=2 means the frame holds for two ticks and advances on the third.
	a.Tick()
	a.Tick()
	if a.Frame() != frames[0] {
		t.Errorf("frame advanced early: %v", a.Frame())
	}
	a.Tick()
	if a.Frame() != frames[1] {
		t.Errorf("frame = %v, want %v", a.Frame(), frames[1])
	}
}

func TestAnimationWrapsToFirstFrame(t *testing.T) {
	frames := [][4]float32{{0, 0, 1, 1}, {0, 0, 0.5, 0.5}}
	a := NewAnimation(frames, 0)

	a.Tick() // -> 1
	a.Tick() // -> wraps to 0
	if a.Frame() != frames[0] {
		t.Errorf("frame = %v, want wrap to %v", a.Frame(), frames[0])
	}
}

func TestAnimationStopRewinds(t *testing.T) {
	frames := [][4]float32{{0, 0, 1, 1}, {0, 0, 0.5, 0.5}}
	a := NewAnimation(frames, 3)
	for i := 0; i < 5; i++ {
		a.Tick()
	}
	a.Stop()
	if a.Frame() != frames[0] {
		t.Errorf("frame after Stop = %v, want %v", a.Frame(), frames[0])
	}
}

func testActor(region [4]float32) *Actor {
	anim := NewAnimation([][4]float32{{0, 0, 1, 1}}, 0)
	return NewActor(region, anim, 4, 1024, 768)
}

func TestActorWalkFollowsFacing(t *testing.T) {
	a := testActor([4]float32{100, 100, 64, 64})

	a.Walk()
	if a.Region[0] != 104 {
		t.Errorf("x = %v, want 104", a.Region[0])
	}

	a.FaceLeft()
	a.Walk()
	if a.Region[0] != 164 {
		// FaceLeft moved the anchor to x+width (168), Walk subtracts speed.
		t.Errorf("x = %v, want 164", a.Region[0])
	}
}

func TestActorMirrorRoundTrips(t *testing.T) {
	original := [4]float32{100, 100, 64, 64}
	a := testActor(original)

	a.FaceLeft()
	if a.Region[2] != -64 || a.Region[0] != 164 {
		t.Fatalf("mirrored region = %v, want anchor 164 width -64", a.Region)
	}
	a.FaceRight()
	if a.Region != original {
		t.Errorf("region = %v, want %v after round trip", a.Region, original)
	}

	// Repeated FaceLeft must not shift the anchor again.
	a.FaceLeft()
	mirrored := a.Region
	a.FaceLeft()
	if a.Region != mirrored {
		t.Errorf("second FaceLeft moved the actor: %v -> %v", mirrored, a.Region)
	}
}

func TestActorFallWrapsAtBottom(t *testing.T) {
	a := testActor([4]float32{500, 3, 64, 64})

	a.Fall()
	if a.Region[1] != a.WorldHeight {
		t.Errorf("y = %v, want wrap to %v", a.Region[1], a.WorldHeight)
	}
	if a.Region[0] < 0 || a.Region[0] > a.WorldWidth {
		t.Errorf("x = %v, want within [0, %v]", a.Region[0], a.WorldWidth)
	}
}

func TestSceneCullsOutsideView(t *testing.T) {
	s := New()
	s.AddStatic(shading.Sprite{ToRect: [4]float32{10, 10, 20, 20}})    // inside
	s.AddStatic(shading.Sprite{ToRect: [4]float32{-50, -50, 10, 10}})  // outside
	s.AddStatic(shading.Sprite{ToRect: [4]float32{-10, 10, 10, 10}})   // touches left edge
	s.AddStatic(shading.Sprite{ToRect: [4]float32{110, 10, -20, 20}})  // mirrored, inside
	s.AddActor(testActor([4]float32{5000, 5000, 64, 64}))              // outside

	view := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	sprites := s.Sprites(view)

	if len(sprites) != 3 {
		t.Fatalf("culled list has %d sprites, want 3", len(sprites))
	}
	if s.Count() != 5 {
		t.Errorf("Count = %d, want 5", s.Count())
	}
}

func TestSceneTickAnimatesActors(t *testing.T) {
	s := New()
	frames := [][4]float32{{0, 0, 1, 1}, {0, 0, 0.5, 0.5}}
	a := NewActor([4]float32{0, 100, 32, 32}, NewAnimation(frames, 0), 1, 1024, 768)
	s.AddActor(a)

	s.Tick()
	if a.Anim.Frame() != frames[1] {
		t.Errorf("animation did not advance on Tick")
	}
	if a.Region[1] != 99 {
		t.Errorf("y = %v, want 99 after one fall step", a.Region[1])
	}
}
