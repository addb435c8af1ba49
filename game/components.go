package game

import (
	"image/color"

	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/spatial"
)

const (
	KindPosition ecs.Kind = iota
	KindPreviousPosition
	KindVelocity
	KindSize
	KindCollidable
	KindCameraFollow
	KindControllable
	KindGate
	KindDrawColour
	KindInteractable
)

// Position is the top-left corner of an entity in pixels.
type Position struct {
	X, Y float64
}

func (*Position) Kind() ecs.Kind { return KindPosition }

// PreviousPosition is the position at the start of the current tick.
type PreviousPosition struct {
	X, Y float64
}

func (*PreviousPosition) Kind() ecs.Kind { return KindPreviousPosition }

// Velocity is in pixels per second.
type Velocity struct {
	X, Y float64
}

func (*Velocity) Kind() ecs.Kind { return KindVelocity }

type Size struct {
	W, H float64
}

func (*Size) Kind() ecs.Kind { return KindSize }

// Collidable marks entities that block each other.
type Collidable struct{}

func (*Collidable) Kind() ecs.Kind { return KindCollidable }

type CameraFollow struct{}

func (*CameraFollow) Kind() ecs.Kind { return KindCameraFollow }

// Controllable marks the player.
type Controllable struct{}

func (*Controllable) Kind() ecs.Kind { return KindControllable }

type Gate struct {
	Open bool
}

func (*Gate) Kind() ecs.Kind { return KindGate }

type DrawColour struct {
	Colour color.RGBA
}

func (*DrawColour) Kind() ecs.Kind { return KindDrawColour }

// Interactable is triggered once, when its key is pressed while a
// controllable entity is within Radius pixels.
type Interactable struct {
	Key        Key
	Interacted bool
	Radius     float64
}

func (*Interactable) Kind() ecs.Kind { return KindInteractable }

// RegisterComponents registers every game component with r.
func RegisterComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[PreviousPosition](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Size](r)
	ecs.RegisterComponent[Collidable](r)
	ecs.RegisterComponent[CameraFollow](r)
	ecs.RegisterComponent[Controllable](r)
	ecs.RegisterComponent[Gate](r)
	ecs.RegisterComponent[DrawColour](r)
	ecs.RegisterComponent[Interactable](r)
}

func box(pos *Position, size *Size) spatial.Box {
	return spatial.Box{X: pos.X, Y: pos.Y, W: size.W, H: size.H}
}
