package main

import (
	"math/rand"

	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/spatial"
)

const (
	kindPosition ecs.Kind = iota
	kindPrevious
	kindVelocity
	kindSize
)

type Position struct{ X, Y float64 }
type Previous struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Size struct{ W, H float64 }

func (*Position) Kind() ecs.Kind { return kindPosition }
func (*Previous) Kind() ecs.Kind { return kindPrevious }
func (*Velocity) Kind() ecs.Kind { return kindVelocity }
func (*Size) Kind() ecs.Kind     { return kindSize }

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Previous](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Size](registry)
}

// world is the square the boxes bounce around in, in pixels.
type world struct {
	size     float64
	cellSize float64
	maxSpeed float64
	rng      *rand.Rand
}

func (w *world) cell(x, y float64) (float64, float64) {
	return x / w.cellSize, y / w.cellSize
}

func (w *world) spawn(storage *ecs.Storage, hash *spatial.Hash[ecs.EntityId]) ecs.EntityId {
	id := storage.CreateEntity()
	x, y := w.rng.Float64()*w.size, w.rng.Float64()*w.size
	storage.AddComponent(id, &Position{X: x, Y: y})
	storage.AddComponent(id, &Previous{X: x, Y: y})
	storage.AddComponent(id, &Velocity{
		X: (w.rng.Float64()*2 - 1) * w.maxSpeed,
		Y: (w.rng.Float64()*2 - 1) * w.maxSpeed,
	})
	side := w.cellSize / 2 * (0.5 + w.rng.Float64())
	storage.AddComponent(id, &Size{W: side, H: side})
	hash.Insert(x/w.cellSize, y/w.cellSize, id)
	return id
}

// moveSystem integrates velocities and bounces boxes off the world edges.
type moveSystem struct {
	world *world
}

func (s *moveSystem) Requires() ecs.KindSet {
	return ecs.Kinds(kindPosition, kindPrevious, kindVelocity)
}

func (s *moveSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	for id := range tracked.All() {
		c := frame.Storage.Components(id)
		pos, _ := ecs.Get[Position](c)
		prev, _ := ecs.Get[Previous](c)
		vel, _ := ecs.Get[Velocity](c)

		prev.X, prev.Y = pos.X, pos.Y
		pos.X += vel.X * frame.DeltaTime
		pos.Y += vel.Y * frame.DeltaTime

		if pos.X < 0 || pos.X > s.world.size {
			vel.X = -vel.X
			pos.X = max(0, min(s.world.size, pos.X))
		}
		if pos.Y < 0 || pos.Y > s.world.size {
			vel.Y = -vel.Y
			pos.Y = max(0, min(s.world.size, pos.Y))
		}
		frame.Storage.MarkDirty(id, kindPosition)
	}
}

// reindexSystem moves dirty boxes between spatial hash cells.
type reindexSystem struct {
	world *world
}

func (s *reindexSystem) Requires() ecs.KindSet {
	return ecs.Kinds(kindPosition, kindPrevious)
}

func (s *reindexSystem) WatchesDirty() ecs.KindSet {
	return ecs.Kinds(kindPosition)
}

func (s *reindexSystem) Update(frame *ecs.UpdateFrame, _, dirty *ecs.EntitySet) {
	for id := range dirty.All() {
		c := frame.Storage.Components(id)
		pos, _ := ecs.Get[Position](c)
		prev, _ := ecs.Get[Previous](c)

		px, py := s.world.cell(prev.X, prev.Y)
		frame.Spatial.RemoveInRange(px, py, 1, id)
		x, y := s.world.cell(pos.X, pos.Y)
		frame.Spatial.Insert(x, y, id)
	}
}

// overlapSystem counts overlapping pairs found through the spatial hash.
type overlapSystem struct {
	world    *world
	overlaps int64
	scratch  []ecs.EntityId
}

func (s *overlapSystem) Requires() ecs.KindSet {
	return ecs.Kinds(kindPosition, kindSize)
}

func (s *overlapSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	for id := range tracked.All() {
		c := frame.Storage.Components(id)
		pos, _ := ecs.Get[Position](c)
		size, _ := ecs.Get[Size](c)
		self := spatial.Box{X: pos.X, Y: pos.Y, W: size.W, H: size.H}

		x, y := s.world.cell(pos.X, pos.Y)
		s.scratch = frame.Spatial.AppendInRange(s.scratch[:0], x, y, 1)
		for _, other := range s.scratch {
			// each pair once
			if other <= id {
				continue
			}
			oc := frame.Storage.Components(other)
			opos, ok := ecs.Get[Position](oc)
			if !ok {
				continue
			}
			osize, _ := ecs.Get[Size](oc)
			if self.Overlaps(spatial.Box{X: opos.X, Y: opos.Y, W: osize.W, H: osize.H}) {
				s.overlaps++
			}
		}
	}
}

// churnSystem destroys a share of the boxes every tick and spawns the same
// number of replacements once the destroys are applied.
type churnSystem struct {
	world *world
	rate  float64
	hash  *spatial.Hash[ecs.EntityId]
}

func (s *churnSystem) Requires() ecs.KindSet {
	return ecs.Kinds(kindPosition)
}

func (s *churnSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	n := int(float64(tracked.Len()) * s.rate)
	if n == 0 {
		return
	}

	ids := tracked.Slice()
	s.world.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	for _, id := range ids[:n] {
		pos, _ := ecs.Get[Position](frame.Storage.Components(id))
		x, y := s.world.cell(pos.X, pos.Y)
		s.hash.RemoveInRange(x, y, 1, id)
		frame.Commands.Destroy(id)
	}

	storage := frame.Storage
	frame.Commands.Defer(func() {
		for range n {
			s.world.spawn(storage, s.hash)
		}
	})
}
