package shading

import (
	"math"
	"testing"
)

func TestBackgroundVertexIsPureTableLookup(t *testing.T) {
	for i := 0; i < QuadVertexCount; i++ {
		clip, uv := BackgroundVertex(i)

		want := BackgroundVertices[i]
		if clip[0] != want[0] || clip[1] != want[1] || clip[2] != 0 || clip[3] != 1 {
			t.Errorf("vertex %d: clip = %v, want (%v, %v, 0, 1)", i, clip, want[0], want[1])
		}
		if uv != BackgroundTexCoords[i] {
			t.Errorf("vertex %d: uv = %v, want %v", i, uv, BackgroundTexCoords[i])
		}
	}
}

func TestBackgroundQuadCoversViewport(t *testing.T) {
	var minX, minY, maxX, maxY float32 = 1, 1, -1, -1
	for _, p := range BackgroundVertices {
		minX = min(minX, p[0])
		minY = min(minY, p[1])
		maxX = max(maxX, p[0])
		maxY = max(maxY, p[1])
	}
	if minX != -1 || minY != -1 || maxX != 1 || maxY != 1 {
		t.Fatalf("background quad spans [%v,%v]x[%v,%v], want [-1,1]x[-1,1]", minX, maxX, minY, maxY)
	}
}

func TestSpriteVertexClipTransform(t *testing.T) {
	cam := Camera{ScreenPos: [2]float32{0, 0}, ScreenSize: [2]float32{800, 600}}
	sprite := Sprite{
		ToRect:   [4]float32{100, 100, 50, 50},
		FromRect: [4]float32{0, 0, 1, 1},
	}

	clip, _ := SpriteVertex(cam, sprite, 0)
	if clip[0] != -0.75 {
		t.Errorf("clip x = %v, want -0.75", clip[0])
	}
	wantY := float32(100)/300 - 1
	if clip[1] != wantY {
		t.Errorf("clip y = %v, want %v", clip[1], wantY)
	}
	if clip[2] != 0 || clip[3] != 1 {
		t.Errorf("clip zw = (%v, %v), want (0, 1)", clip[2], clip[3])
	}
}

// The camera's ScreenPos behaves as the window's bottom-left world corner:
// a sprite at exactly ScreenPos lands on clip (-1,-1), and one at
// ScreenPos+ScreenSize lands on clip (1,1). This mapping is part of the
// wire contract and must not be "corrected" to a center-anchored one.
func TestScreenPosIsBottomLeftAnchor(t *testing.T) {
	cam := Camera{ScreenPos: [2]float32{320, 240}, ScreenSize: [2]float32{640, 480}}
	sprite := Sprite{ToRect: [4]float32{320, 240, 640, 480}}

	clip0, _ := SpriteVertex(cam, sprite, 0) // which_vtx (0,0)
	if clip0[0] != -1 || clip0[1] != -1 {
		t.Errorf("bottom-left corner clip = (%v, %v), want (-1, -1)", clip0[0], clip0[1])
	}
	clip2, _ := SpriteVertex(cam, sprite, 2) // which_vtx (1,1)
	if clip2[0] != 1 || clip2[1] != 1 {
		t.Errorf("top-right corner clip = (%v, %v), want (1, 1)", clip2[0], clip2[1])
	}
}

func TestSpriteQuadTracesWorldRectangle(t *testing.T) {
	cam := Camera{ScreenPos: [2]float32{0, 0}, ScreenSize: [2]float32{800, 600}}
	sprite := Sprite{ToRect: [4]float32{100, 100, 50, 50}}

	clip, _ := SpriteQuad(cam, sprite)

	toClip := func(x, y float32) [2]float32 {
		return [2]float32{x/400 - 1, y/300 - 1}
	}
	want := [QuadVertexCount][2]float32{
		toClip(100, 100), toClip(150, 100), toClip(150, 150),
		toClip(100, 100), toClip(150, 150), toClip(100, 150),
	}
	for i := range want {
		if clip[i][0] != want[i][0] || clip[i][1] != want[i][1] {
			t.Errorf("vertex %d: clip = (%v, %v), want %v", i, clip[i][0], clip[i][1], want[i])
		}
	}
}

func TestSpriteUVFlipsVertically(t *testing.T) {
	cam := Camera{ScreenSize: [2]float32{800, 600}}
	sprite := Sprite{FromRect: [4]float32{0.25, 0.5, 0.125, 0.0625}}

	tests := []struct {
		vertex int
		want   [2]float32
	}{
		{0, [2]float32{0.25, 0.5625}},  // which_vtx (0,0) -> uv corner (u, v+sh)
		{1, [2]float32{0.375, 0.5625}}, // (1,0) -> (u+sw, v+sh)
		{2, [2]float32{0.375, 0.5}},    // (1,1) -> (u+sw, v)
		{5, [2]float32{0.25, 0.5}},     // (0,1) -> (u, v)
	}
	for _, tc := range tests {
		_, uv := SpriteVertex(cam, sprite, tc.vertex)
		if uv != tc.want {
			t.Errorf("vertex %d: uv = %v, want %v", tc.vertex, uv, tc.want)
		}
	}
}

func TestCutoutThresholdIsStrictLessThan(t *testing.T) {
	tests := []struct {
		alpha   float32
		discard bool
	}{
		{0.2, false},
		{0.1999, true},
		{1.0, false},
		{0.0, true},
		{0.2000001, false},
	}
	for _, tc := range tests {
		if got := CutoutDiscards(tc.alpha); got != tc.discard {
			t.Errorf("CutoutDiscards(%v) = %v, want %v", tc.alpha, got, tc.discard)
		}
	}
}

func TestSpriteVertexIsPure(t *testing.T) {
	cam := Camera{ScreenPos: [2]float32{12.5, -3}, ScreenSize: [2]float32{1024, 768}}
	sprite := Sprite{
		ToRect:   [4]float32{32, 128, 64, 64},
		FromRect: [4]float32{0.5, 0.5, 0.5, 0.5},
	}
	for i := 0; i < QuadVertexCount; i++ {
		c1, u1 := SpriteVertex(cam, sprite, i)
		c2, u2 := SpriteVertex(cam, sprite, i)
		if c1 != c2 || u1 != u2 {
			t.Fatalf("vertex %d: repeated invocation differs: %v/%v vs %v/%v", i, c1, u1, c2, u2)
		}
	}
}

func TestNegativeWidthMirrorsHorizontally(t *testing.T) {
	cam := Camera{ScreenPos: [2]float32{0, 0}, ScreenSize: [2]float32{800, 600}}
	plain := Sprite{ToRect: [4]float32{100, 100, 50, 50}}
	mirrored := Sprite{ToRect: [4]float32{150, 100, -50, 50}}

	// Same world footprint, opposite horizontal traversal.
	pc, _ := SpriteVertex(cam, plain, 0)
	mc, _ := SpriteVertex(cam, mirrored, 1)
	if pc != mc {
		t.Errorf("mirrored sprite corner = %v, want %v", mc, pc)
	}
}

func TestTransformHasNoNaNForFiniteInput(t *testing.T) {
	cam := Camera{ScreenPos: [2]float32{-1e6, 1e6}, ScreenSize: [2]float32{0.001, 5e5}}
	sprite := Sprite{ToRect: [4]float32{-1e5, 1e5, 1e-3, 1e3}}
	for i := 0; i < QuadVertexCount; i++ {
		clip, _ := SpriteVertex(cam, sprite, i)
		for _, v := range clip {
			if math.IsNaN(float64(v)) {
				t.Fatalf("vertex %d: clip contains NaN: %v", i, clip)
			}
		}
	}
}
