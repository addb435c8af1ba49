package game

import (
	"slices"

	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/spatial"
)

// neighbours returns the distinct entities the spatial hash holds around a
// pixel position, excluding self, in ascending order.
func neighbours(frame *ecs.UpdateFrame, settings *Settings, x, y, radius float64, self ecs.EntityId) []ecs.EntityId {
	cx, cy := settings.cell(x, y)
	found := frame.Spatial.InRange(cx, cy, settings.World.Padding(radius))
	slices.Sort(found)
	found = slices.Compact(found)
	return slices.DeleteFunc(found, func(id ecs.EntityId) bool { return id == self })
}

// CollidableSystem pushes moving collidable entities out of the collidable
// entities around them.
type CollidableSystem struct {
	Settings *Settings
}

func (s *CollidableSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindCollidable, KindPosition, KindPreviousPosition, KindSize, KindVelocity)
}

func (s *CollidableSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	for _, id := range tracked.Slice() {
		c := frame.Storage.Components(id)
		pos, _ := ecs.Get[Position](c)
		prev, _ := ecs.Get[PreviousPosition](c)
		size, _ := ecs.Get[Size](c)
		vel, _ := ecs.Get[Velocity](c)
		if pos == nil || prev == nil || size == nil || vel == nil {
			continue
		}
		if pos.X == prev.X && pos.Y == prev.Y {
			continue
		}

		moved := false
		for _, other := range neighbours(frame, s.Settings, pos.X, pos.Y, s.Settings.World.CollisionRadius, id) {
			oc := frame.Storage.Components(other)
			if !oc.Has(KindCollidable) {
				continue
			}
			opos, _ := ecs.Get[Position](oc)
			osize, _ := ecs.Get[Size](oc)
			if opos == nil || osize == nil {
				continue
			}
			if resolveCollision(pos, size, vel, box(opos, osize)) {
				moved = true
			}
		}

		if moved {
			frame.Storage.MarkDirty(id, KindPosition)
			frame.Storage.MarkDirty(id, KindVelocity)
		}
	}
}

// resolveCollision snaps pos flush against target when the boxes overlap
// and zeroes the velocity on the axis of the resolved side.
func resolveCollision(pos *Position, size *Size, vel *Velocity, target spatial.Box) bool {
	resolved, side := spatial.Resolve(box(pos, size), target)
	if side == spatial.SideNone {
		return false
	}
	pos.X, pos.Y = resolved.X, resolved.Y
	if side.Vertical() {
		vel.Y = 0
	} else {
		vel.X = 0
	}
	return true
}
