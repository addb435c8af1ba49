package game_test

import (
	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/game"
	"github.com/plus3/tilegate/spatial"
	"go.uber.org/zap"
)

type fakeInput struct {
	down    map[game.Key]bool
	pressed map[game.Key]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		down:    map[game.Key]bool{},
		pressed: map[game.Key]bool{},
	}
}

func (f *fakeInput) IsKeyDown(k game.Key) bool    { return f.down[k] }
func (f *fakeInput) IsKeyPressed(k game.Key) bool { return f.pressed[k] }

func (f *fakeInput) press(keys ...game.Key) {
	clear(f.pressed)
	for _, k := range keys {
		f.pressed[k] = true
	}
}

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	hash      *spatial.Hash[ecs.EntityId]
	settings  *game.Settings
}

func newWorld() *world {
	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	hash := spatial.New[ecs.EntityId]()
	settings := game.DefaultSettings()
	return &world{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage, ecs.WithSpatialIndex(hash)),
		hash:      hash,
		settings:  &settings,
	}
}

// spawn creates an entity with comps and, when it has a position, indexes
// it in the spatial hash.
func (w *world) spawn(comps ...ecs.Component) ecs.EntityId {
	id := w.storage.CreateEntity()
	for _, c := range comps {
		w.storage.AddComponent(id, c)
		if pos, ok := c.(*game.Position); ok {
			size := w.settings.World.CellSize
			w.hash.Insert(pos.X/size, pos.Y/size, id)
		}
	}
	return id
}

func (w *world) indexed(id ecs.EntityId, x, y float64) bool {
	size := w.settings.World.CellSize
	for _, e := range w.hash.InRange(x/size, y/size, 0) {
		if e == id {
			return true
		}
	}
	return false
}

var nop = zap.NewNop()
