// Package scene assembles the per-frame sprite instance list: static
// sprites, animated actors, and view culling before upload.
package scene

import (
	"github.com/paulmach/orb"

	"spriteview/internal/shading"
)

// Scene holds everything drawn by the sprite pass of one frame.
type Scene struct {
	statics []shading.Sprite
	actors  []*Actor
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddStatic appends a fixed sprite.
func (s *Scene) AddStatic(sprite shading.Sprite) {
	s.statics = append(s.statics, sprite)
}

// AddActor appends an animated actor.
func (s *Scene) AddActor(a *Actor) {
	s.actors = append(s.actors, a)
}

// Actors returns the scene's actors.
func (s *Scene) Actors() []*Actor {
	return s.actors
}

// Tick advances one simulation step: every actor's animation and fall.
func (s *Scene) Tick() {
	for _, a := range s.actors {
		a.Anim.Tick()
		a.Fall()
	}
}

// Sprites builds the instance list for the given view window, culling
// sprites whose world rectangle does not intersect it. Rectangles touching
// the window edge are kept. The returned slice is rebuilt per call and safe
// to hand to the renderer for upload.
func (s *Scene) Sprites(view orb.Bound) []shading.Sprite {
	out := make([]shading.Sprite, 0, len(s.statics)+len(s.actors))
	for _, sprite := range s.statics {
		if spriteBound(sprite).Intersects(view) {
			out = append(out, sprite)
		}
	}
	for _, a := range s.actors {
		sprite := a.Sprite()
		if spriteBound(sprite).Intersects(view) {
			out = append(out, sprite)
		}
	}
	return out
}

// SpritesAll builds the full instance list with no culling.
func (s *Scene) SpritesAll() []shading.Sprite {
	out := make([]shading.Sprite, 0, len(s.statics)+len(s.actors))
	out = append(out, s.statics...)
	for _, a := range s.actors {
		out = append(out, a.Sprite())
	}
	return out
}

// Count returns the total number of sprites before culling.
func (s *Scene) Count() int {
	return len(s.statics) + len(s.actors)
}

// spriteBound is the world-space bound of a sprite's to_rect, normalized
// for negative (mirrored) extents.
func spriteBound(s shading.Sprite) orb.Bound {
	x0 := float64(s.ToRect[0])
	y0 := float64(s.ToRect[1])
	x1 := x0 + float64(s.ToRect[2])
	y1 := y0 + float64(s.ToRect[3])
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}}
}
