// Package shading is the CPU reference for the sprite shading program: the
// quad tables, the GPU record layouts, the vertex transforms and the cutout
// rule, expressed as pure functions over plain data. The WGSL module in
// internal/renderer carries the same arithmetic; the two must stay in
// lockstep, and the tests here pin the contract.
package shading

// Camera is the per-frame view window uniform (group 0, binding 0 of the
// sprite pass). ScreenPos is the world coordinate of the window's
// bottom-left corner, not its center, despite what the name suggests: the
// clip transform maps [ScreenPos, ScreenPos+ScreenSize] onto [-1,1]. The
// name is kept for wire compatibility with the original program.
// ScreenSize components must be nonzero (used as a divisor).
type Camera struct {
	ScreenPos  [2]float32
	ScreenSize [2]float32
}

// Sprite is one instance record of the sprite storage buffer (group 0,
// binding 1). ToRect is (world x, world y, width, height); FromRect is the
// atlas sub-rectangle (u, v, width, height) in normalized texture
// coordinates. 32 bytes, std430 aligned, matching the WGSL struct exactly.
type Sprite struct {
	ToRect   [4]float32
	FromRect [4]float32
}

// QuadVertexCount is the vertex count of every draw in the program: two
// triangles covering a quad.
const QuadVertexCount = 6

// QuadVertices is the unit-square table indexed by the sprite pass's vertex
// index. Two coplanar triangles, counter-clockwise, components in {0,1}.
var QuadVertices = [QuadVertexCount][2]float32{
	{0, 0}, {1, 0}, {1, 1},
	{0, 0}, {1, 1}, {0, 1},
}

// BackgroundVertices is the background pass's position table: the same two
// triangles, already in clip space, covering the full viewport.
var BackgroundVertices = [QuadVertexCount][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

// BackgroundTexCoords pairs each background vertex with its texture
// coordinate. (0,0) is the texture's top-left, so the bottom of the
// viewport reads from v=1.
var BackgroundTexCoords = [QuadVertexCount][2]float32{
	{0, 1}, {1, 1}, {1, 0},
	{0, 1}, {1, 0}, {0, 0},
}

// CutoutAlphaThreshold is the sprite fragment discard threshold. A sampled
// alpha strictly below it contributes nothing; alpha equal to it is kept.
const CutoutAlphaThreshold = 0.2

// BackgroundVertex is the background vertex stage: a pure lookup of the
// vertexIndex-th table entries. vertexIndex must be in [0,6).
func BackgroundVertex(vertexIndex int) (clip [4]float32, uv [2]float32) {
	p := BackgroundVertices[vertexIndex]
	t := BackgroundTexCoords[vertexIndex]
	return [4]float32{p[0], p[1], 0, 1}, t
}

// SpriteVertex is the sprite vertex stage: it places the vertexIndex-th
// unit-quad corner of one sprite instance in clip space and maps it into
// the sprite's atlas sub-rectangle.
//
// The world rectangle [x,x+w]x[y,y+h] of ToRect lands on
// (p - ScreenPos)/(ScreenSize/2) - (1,1); the texture V axis is flipped
// relative to the position Y axis (texture origin is top-left).
func SpriteVertex(cam Camera, s Sprite, vertexIndex int) (clip [4]float32, uv [2]float32) {
	corner := [2]float32{s.ToRect[0], s.ToRect[1]}
	size := [2]float32{s.ToRect[2], s.ToRect[3]}
	texCorner := [2]float32{s.FromRect[0], s.FromRect[1]}
	texSize := [2]float32{s.FromRect[2], s.FromRect[3]}

	whichVtx := QuadVertices[vertexIndex]
	whichUV := [2]float32{whichVtx[0], 1 - whichVtx[1]}

	worldX := corner[0] + whichVtx[0]*size[0]
	worldY := corner[1] + whichVtx[1]*size[1]

	clip = [4]float32{
		(worldX-cam.ScreenPos[0])/(cam.ScreenSize[0]/2) - 1,
		(worldY-cam.ScreenPos[1])/(cam.ScreenSize[1]/2) - 1,
		0,
		1,
	}
	uv = [2]float32{
		texCorner[0] + whichUV[0]*texSize[0],
		texCorner[1] + whichUV[1]*texSize[1],
	}
	return clip, uv
}

// SpriteQuad runs the sprite vertex stage for all six vertices of one
// instance, in table order.
func SpriteQuad(cam Camera, s Sprite) (clip [QuadVertexCount][4]float32, uv [QuadVertexCount][2]float32) {
	for i := 0; i < QuadVertexCount; i++ {
		clip[i], uv[i] = SpriteVertex(cam, s, i)
	}
	return clip, uv
}

// CutoutDiscards is the sprite fragment stage's discard decision for a
// sampled alpha value. Strict less-than: exactly the threshold stays.
func CutoutDiscards(alpha float32) bool {
	return alpha < CutoutAlphaThreshold
}
