package game

import (
	"github.com/plus3/tilegate/ecs"
)

// ControllableSystem turns held direction keys into velocity and moves the
// player. Speeds change by a fixed step per tick.
type ControllableSystem struct {
	Input    Input
	Settings *Settings
}

func (s *ControllableSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindPosition, KindPreviousPosition, KindVelocity, KindControllable)
}

func (s *ControllableSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	for _, id := range tracked.Slice() {
		c := frame.Storage.Components(id)
		pos, _ := ecs.Get[Position](c)
		prev, _ := ecs.Get[PreviousPosition](c)
		vel, _ := ecs.Get[Velocity](c)
		if pos == nil || prev == nil || vel == nil {
			continue
		}

		prev.X, prev.Y = pos.X, pos.Y

		s.accelerate(vel)
		s.limit(vel)
		s.decelerate(vel)

		pos.X += vel.X * frame.DeltaTime
		pos.Y += vel.Y * frame.DeltaTime

		frame.Storage.MarkDirty(id, KindVelocity)
		if pos.X != prev.X || pos.Y != prev.Y {
			frame.Storage.MarkDirty(id, KindPosition)
		}
	}
}

func (s *ControllableSystem) accelerate(vel *Velocity) {
	step := s.Settings.Player.Acceleration
	controls := &s.Settings.Controls
	if anyDown(s.Input, controls.Left) {
		vel.X -= step
	}
	if anyDown(s.Input, controls.Right) {
		vel.X += step
	}
	if anyDown(s.Input, controls.Up) {
		vel.Y -= step
	}
	if anyDown(s.Input, controls.Down) {
		vel.Y += step
	}
}

func (s *ControllableSystem) limit(vel *Velocity) {
	limit := s.Settings.Player.MaxSpeed
	vel.X = max(-limit, min(limit, vel.X))
	vel.Y = max(-limit, min(limit, vel.Y))
}

// decelerate moves each axis towards zero without overshooting.
func (s *ControllableSystem) decelerate(vel *Velocity) {
	step := s.Settings.Player.Deceleration
	vel.X = towardsZero(vel.X, step)
	vel.Y = towardsZero(vel.Y, step)
}

func towardsZero(v, step float64) float64 {
	switch {
	case v > 0:
		return max(0, v-step)
	case v < 0:
		return min(0, v+step)
	}
	return v
}

// TransformSystem keeps the spatial hash in step with positions. Entities
// whose position was marked dirty are swept out of the cells around their
// previous position and inserted at the new one.
type TransformSystem struct {
	Settings *Settings
}

func (s *TransformSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindPosition, KindPreviousPosition)
}

func (s *TransformSystem) WatchesDirty() ecs.KindSet {
	return ecs.Kinds(KindPosition)
}

func (s *TransformSystem) Update(frame *ecs.UpdateFrame, _, dirty *ecs.EntitySet) {
	padding := s.Settings.World.Padding(s.Settings.World.ReindexRadius)
	for _, id := range dirty.Slice() {
		c := frame.Storage.Components(id)
		pos, _ := ecs.Get[Position](c)
		prev, _ := ecs.Get[PreviousPosition](c)
		if pos == nil || prev == nil {
			continue
		}

		px, py := s.Settings.cell(prev.X, prev.Y)
		frame.Spatial.RemoveInRange(px, py, padding, id)
		x, y := s.Settings.cell(pos.X, pos.Y)
		frame.Spatial.Insert(x, y, id)
	}
}
