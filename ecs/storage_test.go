package ecs_test

import (
	"testing"

	"github.com/plus3/tilegate/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntityIdsIncrease(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.CreateEntity()
	second := storage.CreateEntity()
	third := storage.CreateEntity()

	assert.Equal(t, ecs.EntityId(1), first)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Equal(t, 3, storage.Len())
}

func TestIdsAreNotReused(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.CreateEntity()
	storage.RequestDestroy(id)
	storage.Flush()

	assert.Greater(t, storage.CreateEntity(), id)
}

func TestAddGetRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.CreateEntity()

	require.True(t, storage.AddComponent(id, &Position{X: 1, Y: 2}))

	pos, ok := ecs.Get[Position](storage.Components(id))
	require.True(t, ok)
	assert.Equal(t, &Position{X: 1, Y: 2}, pos)

	assert.True(t, storage.RemoveComponent(id, KindPosition))

	pos, ok = ecs.Get[Position](storage.Components(id))
	assert.False(t, ok)
	assert.Nil(t, pos)
	assert.False(t, storage.RemoveComponent(id, KindPosition), "second removal is a no-op")
}

func TestAddComponentReplacesSameKind(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.CreateEntity()

	storage.AddComponent(id, &Position{X: 1})
	storage.AddComponent(id, &Position{X: 9})

	container := storage.Components(id)
	assert.Equal(t, 1, container.Len())
	pos, _ := ecs.Get[Position](container)
	assert.Equal(t, 9.0, pos.X)
}

func TestComponentsAreSharedPointers(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.CreateEntity()
	storage.AddComponent(id, &Velocity{DX: 1})

	vel, _ := ecs.Get[Velocity](storage.Components(id))
	vel.DX = 42

	again, _ := ecs.Get[Velocity](storage.Components(id))
	assert.Equal(t, 42.0, again.DX)
}

func TestAddComponentToMissingEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.False(t, storage.AddComponent(99, &Position{}))
	assert.Nil(t, storage.Components(99))
	assert.False(t, ecs.Has[Position](storage.Components(99)))
}

func TestAddUnregisteredComponentPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.CreateEntity()

	assert.Panics(t, func() {
		storage.AddComponent(id, &Frozen{})
	})
}

func TestContainerKeepsKindOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.CreateEntity()

	storage.AddComponent(id, &Name{Value: "crate"})
	storage.AddComponent(id, &Position{X: 3})
	storage.AddComponent(id, &Health{Current: 5})

	var kinds []ecs.Kind
	for kind := range storage.Components(id).All() {
		kinds = append(kinds, kind)
	}
	assert.Equal(t, []ecs.Kind{KindPosition, KindHealth, KindName}, kinds)

	storage.RemoveComponent(id, KindHealth)
	name, ok := ecs.Get[Name](storage.Components(id))
	require.True(t, ok)
	assert.Equal(t, "crate", name.Value)
	assert.Equal(t, ecs.Kinds(KindPosition, KindName), storage.Components(id).Kinds())
}

func TestEntitiesWith(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.CreateEntity()
	b := storage.CreateEntity()
	c := storage.CreateEntity()
	storage.AddComponent(c, &Health{})
	storage.AddComponent(a, &Health{})
	storage.AddComponent(b, &Position{})

	assert.Equal(t, []ecs.EntityId{a, c}, storage.EntitiesWith(KindHealth))
	assert.Empty(t, storage.EntitiesWith(KindName))
}

func TestDestroyIsDeferredToFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.CreateEntity()
	storage.AddComponent(id, &Position{})

	storage.RequestDestroy(id)
	assert.True(t, storage.Exists(id), "entity survives until flush")
	assert.NotNil(t, storage.Components(id))

	storage.Flush()
	assert.False(t, storage.Exists(id))
	assert.Nil(t, storage.Components(id))

	assert.NotPanics(t, func() {
		storage.RequestDestroy(id)
		storage.Flush()
	}, "destroying twice is a no-op")
}

func TestClearAllEntitiesKeepsLaterEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.CreateEntity()
	storage.CreateEntity()

	storage.ClearAllEntities()
	survivor := storage.CreateEntity()
	storage.Flush()

	assert.Equal(t, 1, storage.Len())
	assert.True(t, storage.Exists(survivor))
}

func TestDefersRunAfterDestroys(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	sys := &recordingSystem{}
	scheduler.Register(sys, ecs.MatchAll())

	a := storage.CreateEntity()
	b := storage.CreateEntity()
	assert.Equal(t, 2, scheduler.Tracked(sys).Len())

	var alive []bool
	storage.Commands().Defer(func() {
		alive = append(alive, storage.Exists(a), storage.Exists(b))
	})
	storage.RequestDestroy(a)
	storage.RequestDestroy(b)
	storage.Flush()

	assert.Equal(t, []bool{false, false}, alive)
	assert.Equal(t, 0, scheduler.Tracked(sys).Len())
}

func TestCommandsQueuedWhileFlushingAreApplied(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.CreateEntity()
	b := storage.CreateEntity()

	storage.Commands().Defer(func() {
		storage.RequestDestroy(b)
	})
	storage.RequestDestroy(a)
	storage.Flush()

	assert.Equal(t, 0, storage.Len())
	destroys, defers := storage.Commands().Pending()
	assert.Zero(t, destroys)
	assert.Zero(t, defers)
}

func TestStorageAllIsOrderedAndTolerant(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.CreateEntity()
	b := storage.CreateEntity()
	c := storage.CreateEntity()

	var seen []ecs.EntityId
	for id := range storage.All() {
		seen = append(seen, id)
		if id == a {
			storage.RequestDestroy(c)
			storage.Flush()
		}
	}
	assert.Equal(t, []ecs.EntityId{a, b}, seen)
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.EntityCount)

	a := storage.CreateEntity()
	b := storage.CreateEntity()
	storage.AddComponent(a, &Position{})
	storage.AddComponent(b, &Position{})
	storage.AddComponent(b, &Health{})
	storage.RequestDestroy(a)

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, 1, stats.PendingDestroys)

	counts := map[string]int{}
	for _, c := range stats.Components {
		counts[c.Name] = c.Count
	}
	assert.Equal(t, map[string]int{"Position": 2, "Velocity": 0, "Health": 1, "Name": 0}, counts)
}

func TestRegistry(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	kind := ecs.RegisterComponent[Position](registry)
	assert.Equal(t, KindPosition, kind)
	assert.Equal(t, "Position", registry.Name(KindPosition))
	assert.Equal(t, "Kind(3)", registry.Name(KindName))
	assert.Nil(t, registry.Type(KindName))

	assert.NotPanics(t, func() { ecs.RegisterComponent[Position](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[clashingPosition](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[outOfRange](registry) })
}

type clashingPosition struct{}

func (*clashingPosition) Kind() ecs.Kind { return KindPosition }

type outOfRange struct{}

func (*outOfRange) Kind() ecs.Kind { return ecs.MaxKinds }

func TestKindSet(t *testing.T) {
	s := ecs.Kinds(KindPosition, KindHealth)

	assert.True(t, s.Has(KindPosition))
	assert.False(t, s.Has(KindVelocity))
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.ContainsAll(ecs.Kinds(KindHealth)))
	assert.False(t, s.ContainsAll(ecs.Kinds(KindHealth, KindName)))
	assert.True(t, s.Intersects(ecs.Kinds(KindHealth, KindName)))
	assert.True(t, s.ContainsAll(0), "every set contains the empty set")

	var kinds []ecs.Kind
	for k := range s.With(KindName).Without(KindPosition).All() {
		kinds = append(kinds, k)
	}
	assert.Equal(t, []ecs.Kind{KindHealth, KindName}, kinds)
	assert.Equal(t, s, s.With(200), "out of range kinds are ignored")
}
