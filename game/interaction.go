package game

import (
	"image/color"

	"github.com/plus3/tilegate/ecs"
	"go.uber.org/zap"
)

// InteractionSystem triggers interactables when their key is pressed next
// to a controllable entity. A triggered interactable stays triggered.
type InteractionSystem struct {
	Input    Input
	Settings *Settings
	// Pressed recolours an interactable once triggered.
	Pressed color.RGBA
	Logger  *zap.Logger
}

func (s *InteractionSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindInteractable, KindPosition)
}

func (s *InteractionSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	for _, id := range tracked.Slice() {
		c := frame.Storage.Components(id)
		it, _ := ecs.Get[Interactable](c)
		pos, _ := ecs.Get[Position](c)
		if it == nil || pos == nil || it.Interacted || !s.Input.IsKeyPressed(it.Key) {
			continue
		}

		for _, other := range neighbours(frame, s.Settings, pos.X, pos.Y, it.Radius, id) {
			if !frame.Storage.Components(other).Has(KindControllable) {
				continue
			}
			it.Interacted = true
			frame.Storage.MarkDirty(id, KindInteractable)
			if colour, ok := ecs.Get[DrawColour](c); ok {
				colour.Colour = s.Pressed
				frame.Storage.MarkDirty(id, KindDrawColour)
			}
			s.Logger.Debug("interactable triggered",
				zap.Uint64("entity", uint64(id)),
				zap.Uint64("by", uint64(other)))
			break
		}
	}
}
