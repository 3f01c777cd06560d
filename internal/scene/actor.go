package scene

import (
	"math/rand"

	"spriteview/internal/shading"
)

// Actor is an animated sprite that moves through the world. Region is its
// world-space to_rect; a negative Region width mirrors the sprite
// horizontally, which the quad transform handles with no special casing.
type Actor struct {
	Region      [4]float32
	Anim        *Animation
	Speed       float32
	FacingRight bool

	// World extent used to wrap falling actors back to the top.
	WorldWidth  float32
	WorldHeight float32
}

// NewActor places an actor at the given world rectangle, facing right.
func NewActor(region [4]float32, anim *Animation, speed, worldWidth, worldHeight float32) *Actor {
	return &Actor{
		Region:      region,
		Anim:        anim,
		Speed:       speed,
		FacingRight: true,
		WorldWidth:  worldWidth,
		WorldHeight: worldHeight,
	}
}

// Walk moves the actor horizontally in its facing direction.
func (a *Actor) Walk() {
	if a.FacingRight {
		a.Region[0] += a.Speed
	} else {
		a.Region[0] -= a.Speed
	}
}

// FaceLeft mirrors the sprite to face left. The anchor corner shifts by the
// width so the world footprint stays put.
func (a *Actor) FaceLeft() {
	a.FacingRight = false
	if a.Region[2] > 0 {
		a.Region[0] += a.Region[2]
		a.Region[2] = -a.Region[2]
	}
}

// FaceRight restores the unmirrored orientation.
func (a *Actor) FaceRight() {
	a.FacingRight = true
	if a.Region[2] < 0 {
		a.Region[0] += a.Region[2]
		a.Region[2] = -a.Region[2]
	}
}

// Fall moves the actor down by its speed, wrapping back to the top of the
// world at a random horizontal position once it drops below the bottom.
func (a *Actor) Fall() {
	a.Region[1] -= a.Speed
	if a.Region[1] <= 0 {
		a.ResetY()
	}
}

// ResetY sends the actor back to the top of the world at a random column.
func (a *Actor) ResetY() {
	a.Region[1] = a.WorldHeight
	a.Region[0] = rand.Float32() * a.WorldWidth
}

// Sprite returns the instance record for the actor's current position and
// animation frame.
func (a *Actor) Sprite() shading.Sprite {
	return shading.Sprite{ToRect: a.Region, FromRect: a.Anim.Frame()}
}
