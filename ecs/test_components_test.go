package ecs_test

import "github.com/plus3/tilegate/ecs"

// Common test component types
const (
	KindPosition ecs.Kind = iota
	KindVelocity
	KindHealth
	KindName
	KindFrozen
)

type Position struct {
	X, Y float64
}

func (*Position) Kind() ecs.Kind { return KindPosition }

type Velocity struct {
	DX, DY float64
}

func (*Velocity) Kind() ecs.Kind { return KindVelocity }

type Health struct {
	Current int
	Max     int
}

func (*Health) Kind() ecs.Kind { return KindHealth }

type Name struct {
	Value string
}

func (*Name) Kind() ecs.Kind { return KindName }

// Frozen is never registered.
type Frozen struct{}

func (*Frozen) Kind() ecs.Kind { return KindFrozen }

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)
	return registry
}

// recordingSystem captures what the scheduler hands it.
type recordingSystem struct {
	requires ecs.KindSet
	watches  ecs.KindSet
	calls    int
	tracked  []ecs.EntityId
	dirty    []ecs.EntityId
	onUpdate func(frame *ecs.UpdateFrame, tracked, dirty *ecs.EntitySet)
}

func (s *recordingSystem) Requires() ecs.KindSet     { return s.requires }
func (s *recordingSystem) WatchesDirty() ecs.KindSet { return s.watches }

func (s *recordingSystem) Update(frame *ecs.UpdateFrame, tracked, dirty *ecs.EntitySet) {
	s.calls++
	s.tracked = tracked.Slice()
	s.dirty = dirty.Slice()
	if s.onUpdate != nil {
		s.onUpdate(frame, tracked, dirty)
	}
}
