package game

import (
	"errors"

	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/events"
	"github.com/plus3/tilegate/level"
	"go.uber.org/zap"
)

// Progress tracks the level being played.
type Progress struct {
	Level    int
	Finished bool
}

// LevelBuilderSystem builds the current level and then disables itself. It
// runs on demand: the state manager or a gate re-enables it.
type LevelBuilderSystem struct {
	Source   level.Source
	Legend   *level.Legend
	Prefabs  *Prefabs
	Progress *Progress
	Events   *events.Emitter
	Logger   *zap.Logger
}

func (s *LevelBuilderSystem) Requires() ecs.KindSet { return 0 }

func (s *LevelBuilderSystem) Update(frame *ecs.UpdateFrame, _, _ *ecs.EntitySet) {
	defer frame.Scheduler.SetDisabled(s, true)

	frame.Storage.ClearAllEntities()
	frame.Spatial.Clear()

	lvl, err := s.Source.Load(s.Progress.Level)
	if err != nil {
		if errors.Is(err, level.ErrNotFound) {
			s.Logger.Info("no more levels", zap.Int("level", s.Progress.Level))
		} else {
			s.Logger.Warn("level failed to load", zap.Int("level", s.Progress.Level), zap.Error(err))
		}
		s.Progress.Finished = true
		events.Emit(s.Events, StateChanged, StateCompleted)
		return
	}

	s.build(lvl)
	s.Logger.Info("level built",
		zap.Int("level", lvl.Number),
		zap.Int("entities", frame.Storage.Len()))
}

func (s *LevelBuilderSystem) build(lvl *level.Level) {
	size := s.Legend.TileSize

	for cell := range lvl.Tiles.Cells() {
		spec, ok := s.Legend.Tile(cell.Char)
		if !ok {
			continue
		}
		s.Prefabs.Tile(cell.X, cell.Y, size, size, spec.Colour.Color(), spec.Collider)
	}

	var players []level.Cell
	for cell := range lvl.Entities.Cells() {
		kind, ok := s.Legend.Entity(cell.Char)
		if !ok {
			continue
		}
		switch kind {
		case level.EntityButton:
			s.Prefabs.Button(cell.X, cell.Y, size, size)
		case level.EntityGate:
			s.Prefabs.Gate(cell.X, cell.Y, size, size)
		case level.EntityPlayer:
			players = append(players, cell)
		}
	}

	// players go last so they are drawn over everything else
	for _, cell := range players {
		s.Prefabs.Player(cell.X, cell.Y, size, size)
	}
}

// LevelStatusSystem opens every gate once no interactable is left
// untriggered, then disables itself until the next level.
type LevelStatusSystem struct {
	Logger *zap.Logger
}

func (s *LevelStatusSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindInteractable)
}

func (s *LevelStatusSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	for id := range tracked.All() {
		it, ok := ecs.Get[Interactable](frame.Storage.Components(id))
		if ok && !it.Interacted {
			return
		}
	}

	gates := frame.Storage.EntitiesWith(KindGate)
	for _, id := range gates {
		if gate, ok := ecs.Get[Gate](frame.Storage.Components(id)); ok {
			gate.Open = true
			frame.Storage.MarkDirty(id, KindGate)
		}
	}
	frame.Scheduler.SetDisabled(s, true)
	s.Logger.Info("gates opened", zap.Int("gates", len(gates)))
}

// GateSystem advances to the next level when the player reaches an open
// gate. At most one transition happens per tick.
type GateSystem struct {
	Settings *Settings
	Progress *Progress
	// Builder and Status are re-enabled to set up the next level.
	Builder ecs.System
	Status  ecs.System
	Logger  *zap.Logger
}

func (s *GateSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindGate, KindPosition)
}

func (s *GateSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	for _, id := range tracked.Slice() {
		c := frame.Storage.Components(id)
		gate, _ := ecs.Get[Gate](c)
		pos, _ := ecs.Get[Position](c)
		if gate == nil || pos == nil || !gate.Open {
			continue
		}

		for _, other := range neighbours(frame, s.Settings, pos.X, pos.Y, s.Settings.World.GateRadius, id) {
			if !frame.Storage.Components(other).Has(KindControllable) {
				continue
			}
			s.advance(frame)
			return
		}
	}
}

func (s *GateSystem) advance(frame *ecs.UpdateFrame) {
	frame.Storage.ClearAllEntities()
	s.Progress.Level++
	s.Logger.Info("gate entered", zap.Int("next_level", s.Progress.Level))

	scheduler := frame.Scheduler
	frame.Commands.Defer(func() {
		frame.Spatial.Clear()
		scheduler.SetDisabled(s.Builder, false)
		scheduler.SetDisabled(s.Status, false)
	})
}
