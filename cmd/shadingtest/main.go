// shadingtest runs sample sprites through the CPU reference of the sprite
// shading program and prints the resulting clip positions, texture
// coordinates and cutout decisions, with no GPU involved.
package main

import (
	"fmt"

	"spriteview/internal/shading"
	"spriteview/pkg/atlas"
)

func main() {
	cam := shading.Camera{
		ScreenPos:  [2]float32{0, 0},
		ScreenSize: [2]float32{1024, 768},
	}
	grid := atlas.Grid{Cols: 2, Rows: 2}

	sprites := []shading.Sprite{
		{ToRect: [4]float32{32, 32, 64, 64}, FromRect: grid.Cell(0, 1)},
		{ToRect: [4]float32{32, 128, 64, 64}, FromRect: grid.Cell(1, 1)},
		{ToRect: [4]float32{128, 32, 64, 64}, FromRect: grid.Cell(0, 1)},
		{ToRect: [4]float32{128, 128, 64, 64}, FromRect: grid.Cell(1, 1)},
	}

	fmt.Printf("Camera: pos=%v size=%v (pos anchors the window's bottom-left corner)\n\n", cam.ScreenPos, cam.ScreenSize)

	fmt.Println("=== Background pass (6 vertices, 1 instance) ===")
	for i := 0; i < shading.QuadVertexCount; i++ {
		clip, uv := shading.BackgroundVertex(i)
		fmt.Printf("  v%d: clip=(%+.4f, %+.4f) uv=(%.2f, %.2f)\n", i, clip[0], clip[1], uv[0], uv[1])
	}

	fmt.Printf("\n=== Sprite pass (6 vertices, %d instances) ===\n", len(sprites))
	for i, s := range sprites {
		fmt.Printf("sprite %d: to_rect=%v from_rect=%v\n", i, s.ToRect, s.FromRect)
		clip, uv := shading.SpriteQuad(cam, s)
		for v := 0; v < shading.QuadVertexCount; v++ {
			fmt.Printf("  v%d: clip=(%+.4f, %+.4f) uv=(%.4f, %.4f)\n", v, clip[v][0], clip[v][1], uv[v][0], uv[v][1])
		}
	}

	fmt.Println("\n=== Cutout rule (discard iff alpha < 0.2) ===")
	for _, alpha := range []float32{0.0, 0.1999, 0.2, 0.5, 1.0} {
		verdict := "keep"
		if shading.CutoutDiscards(alpha) {
			verdict = "discard"
		}
		fmt.Printf("  alpha=%.4f -> %s\n", alpha, verdict)
	}
}
