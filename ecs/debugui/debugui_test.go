package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/tilegate/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	kindPoint ecs.Kind = iota
	kindLabel
	kindTag
)

type point struct {
	X, Y  float64
	Steps int8
	Id    uint8
	Nudge *float64
	Shown bool
	label string
}

func (*point) Kind() ecs.Kind { return kindPoint }

type Label struct{ Text string }

func (*Label) Kind() ecs.Kind { return kindLabel }

type Tag struct{}

func (*Tag) Kind() ecs.Kind { return kindTag }

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[point](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Tag](registry)
	return ecs.NewStorage(registry)
}

func TestReflectionCacheSkipsUnexported(t *testing.T) {
	fields := NewReflectionCache().Fields(reflect.TypeOf(point{}))

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"X", "Y", "Steps", "Id", "Nudge", "Shown"}, names)
	assert.True(t, fields[4].IsPointer)
	assert.Equal(t, reflect.Float64, fields[4].Kind)
	assert.Empty(t, NewReflectionCache().Fields(reflect.TypeOf(0)))
}

func TestSetField(t *testing.T) {
	p := &point{}
	val := reflect.ValueOf(p).Elem()

	assert.True(t, setField(val.Field(0), 2.5))
	assert.True(t, setField(val.Field(2), int64(-3)))
	assert.True(t, setField(val.Field(3), uint64(200)))
	assert.True(t, setField(val.Field(5), true))
	assert.Equal(t, point{X: 2.5, Steps: -3, Id: 200, Shown: true}, *p)

	assert.False(t, setField(val.Field(2), int64(1000)), "overflows int8")
	assert.False(t, setField(val.Field(3), uint64(256)), "overflows uint8")
	assert.False(t, setField(val.Field(0), "text"), "kind mismatch")
	assert.False(t, setField(val.Field(6), "hidden"), "unexported")
	assert.False(t, setField(reflect.ValueOf(*p).Field(0), 1.0), "not addressable")
}

func TestEntityBrowserRowsAndFilter(t *testing.T) {
	storage := newStorage()
	a := storage.CreateEntity()
	storage.AddComponent(a, &point{})
	b := storage.CreateEntity()
	storage.AddComponent(b, &Label{Text: "door"})
	storage.AddComponent(b, &Tag{})

	eb := NewEntityBrowser(10)
	eb.refresh(storage)
	require.Len(t, eb.entities, 2)
	assert.Equal(t, []string{"point"}, eb.entities[0].Components)
	assert.Equal(t, []string{"Label", "Tag"}, eb.entities[1].Components)

	eb.filterText = "TAG"
	assert.Equal(t, []EntityInfo{eb.entities[1]}, eb.filtered())

	eb.filterText = ""
	eb.sortColumn, eb.sortAscending = 2, false
	eb.sort()
	assert.Equal(t, b, eb.entities[0].ID, "most components first")
}

func TestEntityBrowserDropsVanishedSelection(t *testing.T) {
	storage := newStorage()
	id := storage.CreateEntity()

	eb := NewEntityBrowser(0)
	eb.Select(id)
	eb.refresh(storage)
	assert.Equal(t, id, eb.Selected())

	storage.RequestDestroy(id)
	storage.Flush()
	eb.refresh(storage)
	assert.Equal(t, ecs.NoEntity, eb.Selected())
}

func TestMatchingEntities(t *testing.T) {
	storage := newStorage()
	a := storage.CreateEntity()
	storage.AddComponent(a, &Label{})
	storage.AddComponent(a, &Tag{})
	b := storage.CreateEntity()
	storage.AddComponent(b, &Tag{})

	assert.Equal(t, []ecs.EntityId{a, b}, matchingEntities(storage, ecs.Kinds(kindTag)))
	assert.Equal(t, []ecs.EntityId{a}, matchingEntities(storage, ecs.Kinds(kindTag, kindLabel)))
	assert.Equal(t, "Label, Tag", kindNames(storage.Registry(), storage.Components(a).Kinds()))
}

type noopSystem struct{ requires ecs.KindSet }

func (s *noopSystem) Requires() ecs.KindSet                                   { return s.requires }
func (s *noopSystem) Update(*ecs.UpdateFrame, *ecs.EntitySet, *ecs.EntitySet) {}

func TestSystemViewerPairsStats(t *testing.T) {
	storage := newStorage()
	storage.AddComponent(storage.CreateEntity(), &Tag{})
	scheduler := ecs.NewScheduler(storage)
	tags := &noopSystem{requires: ecs.Kinds(kindTag)}
	labels := &noopSystem{requires: ecs.Kinds(kindLabel)}
	scheduler.Register(tags, ecs.Named("tags"))
	scheduler.Register(labels, ecs.Named("labels"), ecs.Disabled())
	scheduler.Once(0)

	sv := NewSystemViewer()
	sv.refresh(scheduler)

	require.Len(t, sv.systems, 2)
	assert.Same(t, tags, sv.systems[0].System)
	assert.Equal(t, "tags", sv.systems[0].Stats.Name)
	assert.Equal(t, 1, sv.systems[0].Stats.Tracked)
	assert.Equal(t, int64(1), sv.systems[0].Stats.ExecutionCount)
	assert.True(t, sv.systems[1].Stats.Disabled)
	assert.Equal(t, int64(0), sv.systems[1].Stats.ExecutionCount)
}

func TestPerformanceHistoryWraps(t *testing.T) {
	ps := NewPerformanceStats(2)
	ps.record(0.010)
	ps.record(0.020)
	ps.record(0.030)

	assert.InDelta(t, 25.0, ps.average(), 1e-3)
}

func TestHiddenOverlayCapturesNothing(t *testing.T) {
	overlay := New(ecs.NewScheduler(newStorage()))
	overlay.Render(0.016)
	assert.Equal(t, InputState{}, overlay.Input())

	overlay.Toggle()
	assert.True(t, overlay.Visible)
}
