package ecs

import (
	"iter"
	"math/bits"
)

// ComponentContainer holds the components of one entity, at most one per
// kind. Components are kept in a slice ordered by kind and located through
// the population count of the kind mask, so lookups never hash.
//
// Containers are read-only to callers; mutations go through Storage so
// systems are notified.
type ComponentContainer struct {
	mask  KindSet
	items []Component
}

func newComponentContainer() *ComponentContainer {
	return &ComponentContainer{}
}

func (c *ComponentContainer) slot(kind Kind) int {
	return bits.OnesCount64(uint64(c.mask) & (1<<kind - 1))
}

// put stores comp, replacing any component of the same kind.
func (c *ComponentContainer) put(kind Kind, comp Component) {
	i := c.slot(kind)
	if c.mask.Has(kind) {
		c.items[i] = comp
		return
	}
	c.items = append(c.items, nil)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = comp
	c.mask = c.mask.With(kind)
}

func (c *ComponentContainer) delete(kind Kind) bool {
	if !c.mask.Has(kind) {
		return false
	}
	i := c.slot(kind)
	copy(c.items[i:], c.items[i+1:])
	c.items[len(c.items)-1] = nil
	c.items = c.items[:len(c.items)-1]
	c.mask = c.mask.Without(kind)
	return true
}

// Has reports whether the container holds a component of kind.
func (c *ComponentContainer) Has(kind Kind) bool {
	return c != nil && c.mask.Has(kind)
}

// HasAll reports whether the container holds every kind in kinds.
func (c *ComponentContainer) HasAll(kinds KindSet) bool {
	if c == nil {
		return kinds.Empty()
	}
	return c.mask.ContainsAll(kinds)
}

// Get returns the component of kind.
func (c *ComponentContainer) Get(kind Kind) (Component, bool) {
	if !c.Has(kind) {
		return nil, false
	}
	return c.items[c.slot(kind)], true
}

func (c *ComponentContainer) Kinds() KindSet {
	if c == nil {
		return 0
	}
	return c.mask
}

func (c *ComponentContainer) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// All yields the components in ascending kind order.
func (c *ComponentContainer) All() iter.Seq2[Kind, Component] {
	return func(yield func(Kind, Component) bool) {
		if c == nil {
			return
		}
		i := 0
		for kind := range c.mask.All() {
			if !yield(kind, c.items[i]) {
				return
			}
			i++
		}
	}
}

// Get returns the component of type T held by c. It is safe to call with a
// nil container.
func Get[T any, P interface {
	*T
	Component
}](c *ComponentContainer) (*T, bool) {
	comp, ok := c.Get(KindOf[T, P]())
	if !ok {
		return nil, false
	}
	p, ok := comp.(P)
	if !ok {
		return nil, false
	}
	return (*T)(p), true
}

// Has reports whether c holds a component of type T.
func Has[T any, P interface {
	*T
	Component
}](c *ComponentContainer) bool {
	_, ok := Get[T, P](c)
	return ok
}
