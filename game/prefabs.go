package game

import (
	"image/color"

	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/level"
	"github.com/plus3/tilegate/spatial"
)

// Prefabs builds the fixed component bundles the levels are made of. Grid
// coordinates are scaled by the entity size into pixels, and every entity
// is inserted into the spatial hash at its scaled position.
type Prefabs struct {
	Storage  *ecs.Storage
	Spatial  *spatial.Hash[ecs.EntityId]
	Settings *Settings
	Palette  level.Palette
}

func (p *Prefabs) place(id ecs.EntityId, x, y int, w, h float64) {
	pos := &Position{X: float64(x) * w, Y: float64(y) * h}
	p.Storage.AddComponent(id, pos)
	p.Storage.AddComponent(id, &Size{W: w, H: h})

	cx, cy := p.Settings.cell(pos.X, pos.Y)
	p.Spatial.Insert(cx, cy, id)
}

// Tile spawns a static tile, optionally blocking movement.
func (p *Prefabs) Tile(x, y int, w, h float64, colour color.RGBA, collider bool) ecs.EntityId {
	id := p.Storage.CreateEntity()
	if collider {
		p.Storage.AddComponent(id, &Collidable{})
	}
	p.Storage.AddComponent(id, &DrawColour{Colour: colour})
	p.place(id, x, y, w, h)
	return id
}

// Button spawns an interactable the player presses with the interact key.
func (p *Prefabs) Button(x, y int, w, h float64) ecs.EntityId {
	id := p.Storage.CreateEntity()
	p.Storage.AddComponent(id, &DrawColour{Colour: p.Palette.Button.Color()})
	p.Storage.AddComponent(id, &Interactable{
		Key:    p.Settings.Controls.Interact,
		Radius: p.Settings.World.InteractionRadius,
	})
	p.place(id, x, y, w, h)
	return id
}

// Gate spawns a closed gate.
func (p *Prefabs) Gate(x, y int, w, h float64) ecs.EntityId {
	id := p.Storage.CreateEntity()
	p.Storage.AddComponent(id, &DrawColour{Colour: p.Palette.Gate.Color()})
	p.Storage.AddComponent(id, &Gate{})
	p.place(id, x, y, w, h)
	return id
}

// Player spawns the controllable entity the camera follows.
func (p *Prefabs) Player(x, y int, w, h float64) ecs.EntityId {
	id := p.Storage.CreateEntity()
	px, py := float64(x)*w, float64(y)*h
	p.Storage.AddComponent(id, &PreviousPosition{X: px, Y: py})
	p.Storage.AddComponent(id, &Velocity{})
	p.Storage.AddComponent(id, &CameraFollow{})
	p.Storage.AddComponent(id, &Controllable{})
	p.Storage.AddComponent(id, &Collidable{})
	p.Storage.AddComponent(id, &DrawColour{Colour: p.Palette.Player.Color()})
	p.place(id, x, y, w, h)
	return id
}
