package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// EntitySet is an unordered set of entity ids backed by a sparse index and
// a dense slice. A nil *EntitySet behaves as an empty set for reads.
type EntitySet struct {
	index *intmap.Map[EntityId, int]
	dense []EntityId
}

// NewEntitySet creates an empty set.
func NewEntitySet() *EntitySet {
	return &EntitySet{
		index: intmap.New[EntityId, int](16),
	}
}

// Add inserts id and reports whether it was not already present.
func (s *EntitySet) Add(id EntityId) bool {
	if _, ok := s.index.Get(id); ok {
		return false
	}
	s.index.Put(id, len(s.dense))
	s.dense = append(s.dense, id)
	return true
}

// Remove deletes id and reports whether it was present.
func (s *EntitySet) Remove(id EntityId) bool {
	if s == nil {
		return false
	}
	i, ok := s.index.Get(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[i] = moved
	s.index.Put(moved, i)
	s.dense = s.dense[:last]
	s.index.Del(id)
	return true
}

func (s *EntitySet) Has(id EntityId) bool {
	if s == nil {
		return false
	}
	_, ok := s.index.Get(id)
	return ok
}

func (s *EntitySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

func (s *EntitySet) Clear() {
	if s == nil || len(s.dense) == 0 {
		return
	}
	s.index.Clear()
	s.dense = s.dense[:0]
}

// All yields a snapshot of the set, so the set may be modified while
// iterating.
func (s *EntitySet) All() iter.Seq[EntityId] {
	var snapshot []EntityId
	if s != nil {
		snapshot = slices.Clone(s.dense)
	}
	return slices.Values(snapshot)
}

// Slice returns the members in ascending order.
func (s *EntitySet) Slice() []EntityId {
	if s == nil {
		return nil
	}
	out := slices.Clone(s.dense)
	slices.Sort(out)
	return out
}
