package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// storageObserver is notified of every structural change. The scheduler
// uses it to keep tracked and dirty sets in step with the entities.
type storageObserver interface {
	componentsChanged(id EntityId, c *ComponentContainer)
	entityDestroyed(id EntityId)
	componentDirty(id EntityId, kind Kind)
}

// Storage owns every entity and its components.
type Storage struct {
	registry  *ComponentRegistry
	entities  *intmap.Map[EntityId, *ComponentContainer]
	lastId    EntityId
	commands  *Commands
	observers []storageObserver
}

// NewStorage creates an empty storage using the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry: registry,
		entities: intmap.New[EntityId, *ComponentContainer](256),
		commands: newCommands(),
	}
}

func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) observe(o storageObserver) {
	s.observers = append(s.observers, o)
}

// CreateEntity allocates a new entity with no components. Systems that
// require nothing start tracking it straight away.
func (s *Storage) CreateEntity() EntityId {
	s.lastId++
	container := newComponentContainer()
	s.entities.Put(s.lastId, container)

	for _, o := range s.observers {
		o.componentsChanged(s.lastId, container)
	}
	return s.lastId
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	_, ok := s.entities.Get(id)
	return ok
}

// AddComponent attaches c to the entity, replacing any component of the
// same kind, and marks it dirty once so dirty-watching systems see it on
// their next update. It returns false if the entity does not exist.
func (s *Storage) AddComponent(id EntityId, c Component) bool {
	kind := s.registry.check(c)

	container, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	container.put(kind, c)

	for _, o := range s.observers {
		o.componentsChanged(id, container)
	}
	s.MarkDirty(id, kind)
	return true
}

// RemoveComponent detaches the component of kind from the entity and
// reports whether one was attached.
func (s *Storage) RemoveComponent(id EntityId, kind Kind) bool {
	container, ok := s.entities.Get(id)
	if !ok || !container.delete(kind) {
		return false
	}
	for _, o := range s.observers {
		o.componentsChanged(id, container)
	}
	return true
}

// Components returns the container of the entity, or nil if it does not
// exist.
func (s *Storage) Components(id EntityId) *ComponentContainer {
	container, _ := s.entities.Get(id)
	return container
}

// EntitiesWith returns every entity holding a component of kind, in
// ascending id order.
func (s *Storage) EntitiesWith(kind Kind) []EntityId {
	var out []EntityId
	s.entities.ForEach(func(id EntityId, c *ComponentContainer) bool {
		if c.Has(kind) {
			out = append(out, id)
		}
		return true
	})
	slices.Sort(out)
	return out
}

// MarkDirty flags the component of kind on the entity as changed. Systems
// watching kind that track the entity will find it in their dirty set on
// their next update. Entities not holding kind are ignored.
func (s *Storage) MarkDirty(id EntityId, kind Kind) {
	container, ok := s.entities.Get(id)
	if !ok || !container.Has(kind) {
		return
	}
	for _, o := range s.observers {
		o.componentDirty(id, kind)
	}
}

// RequestDestroy queues the entity for removal at the end of the tick.
func (s *Storage) RequestDestroy(id EntityId) {
	s.commands.Destroy(id)
}

// ClearAllEntities queues every entity alive now for removal at the end of
// the tick. Entities created afterwards are not affected.
func (s *Storage) ClearAllEntities() {
	for _, id := range s.ids() {
		s.commands.Destroy(id)
	}
}

// Commands returns the buffer drained at the end of every tick.
func (s *Storage) Commands() *Commands {
	return s.commands
}

// Flush applies the queued commands. The scheduler calls it after every
// tick; callers driving the storage without a scheduler call it directly.
func (s *Storage) Flush() {
	s.commands.Flush(s)
}

func (s *Storage) destroy(id EntityId) {
	if !s.Exists(id) {
		return
	}
	s.entities.Del(id)
	for _, o := range s.observers {
		o.entityDestroyed(id)
	}
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.entities.Len()
}

func (s *Storage) ids() []EntityId {
	out := make([]EntityId, 0, s.entities.Len())
	s.entities.ForEach(func(id EntityId, _ *ComponentContainer) bool {
		out = append(out, id)
		return true
	})
	slices.Sort(out)
	return out
}

// All yields every live entity in ascending id order. Entities destroyed
// while iterating are skipped.
func (s *Storage) All() iter.Seq2[EntityId, *ComponentContainer] {
	return func(yield func(EntityId, *ComponentContainer) bool) {
		for _, id := range s.ids() {
			container, ok := s.entities.Get(id)
			if !ok {
				continue
			}
			if !yield(id, container) {
				return
			}
		}
	}
}
