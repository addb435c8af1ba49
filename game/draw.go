package game

import (
	"image/color"

	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/spatial"
)

type Rect struct {
	Entity ecs.EntityId
	Box    spatial.Box
	Colour color.RGBA
}

// DrawList is the set of rectangles to render for the current frame, in
// entity order.
type DrawList struct {
	Rects []Rect
}

// DrawColourSystem fills the draw list. The platform layer renders it, so
// the simulation stays free of graphics calls.
type DrawColourSystem struct {
	List *DrawList
}

func (s *DrawColourSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindDrawColour, KindPosition, KindSize)
}

func (s *DrawColourSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	s.List.Rects = s.List.Rects[:0]
	for _, id := range tracked.Slice() {
		c := frame.Storage.Components(id)
		colour, _ := ecs.Get[DrawColour](c)
		pos, _ := ecs.Get[Position](c)
		size, _ := ecs.Get[Size](c)
		if colour == nil || pos == nil || size == nil {
			continue
		}
		s.List.Rects = append(s.List.Rects, Rect{
			Entity: id,
			Box:    box(pos, size),
			Colour: colour.Colour,
		})
	}
}
