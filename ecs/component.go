package ecs

import (
	"fmt"
	"iter"
	"math/bits"
	"reflect"
)

// MaxKinds is the number of distinct component kinds a registry can hold.
const MaxKinds = 64

// Kind is the compile-time tag of a component type. Every component type
// declares its own kind, and a container holds at most one component of
// each kind.
type Kind uint8

// Component is implemented by every value stored in an entity. Components
// are stored by pointer, so Kind should be declared on the pointer receiver.
type Component interface {
	Kind() Kind
}

// KindSet is a bit mask of component kinds.
type KindSet uint64

// Kinds builds a KindSet from the given kinds.
func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

func (s KindSet) Has(k Kind) bool {
	return k < MaxKinds && s&(1<<k) != 0
}

func (s KindSet) With(k Kind) KindSet {
	if k >= MaxKinds {
		return s
	}
	return s | 1<<k
}

func (s KindSet) Without(k Kind) KindSet {
	if k >= MaxKinds {
		return s
	}
	return s &^ (1 << k)
}

// ContainsAll reports whether every kind in o is also in s.
func (s KindSet) ContainsAll(o KindSet) bool {
	return s&o == o
}

func (s KindSet) Intersects(o KindSet) bool {
	return s&o != 0
}

func (s KindSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

func (s KindSet) Empty() bool {
	return s == 0
}

// All yields the kinds in ascending order.
func (s KindSet) All() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		rest := uint64(s)
		for rest != 0 {
			k := bits.TrailingZeros64(rest)
			if !yield(Kind(k)) {
				return
			}
			rest &= rest - 1
		}
	}
}

// ComponentRegistry records the component types an ECS instance knows
// about. Each Storage has its own registry so independent worlds can
// coexist without interference.
type ComponentRegistry struct {
	types      [MaxKinds]reflect.Type
	registered KindSet
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{}
}

// RegisterComponent registers the component type T under the kind its
// pointer reports. It must be called for each component type before it is
// added to an entity. Registering a second type under an already used kind
// panics.
func RegisterComponent[T any, P interface {
	*T
	Component
}](r *ComponentRegistry) Kind {
	kind := KindOf[T, P]()
	if kind >= MaxKinds {
		panic(fmt.Sprintf("component kind %d of %s exceeds the limit of %d kinds",
			kind, reflect.TypeFor[T]().Name(), MaxKinds))
	}

	t := reflect.TypeFor[P]()
	if r.registered.Has(kind) {
		if r.types[kind] != t {
			panic(fmt.Sprintf("component kind %d already registered to %s, cannot register %s",
				kind, r.types[kind].Elem().Name(), t.Elem().Name()))
		}
		return kind
	}

	r.types[kind] = t
	r.registered = r.registered.With(kind)
	return kind
}

// Registered reports whether a component type was registered for kind.
func (r *ComponentRegistry) Registered(kind Kind) bool {
	return r.registered.Has(kind)
}

// Kinds returns every registered kind.
func (r *ComponentRegistry) Kinds() KindSet {
	return r.registered
}

// Type returns the struct type registered for kind, or nil.
func (r *ComponentRegistry) Type(kind Kind) reflect.Type {
	if !r.Registered(kind) {
		return nil
	}
	return r.types[kind].Elem()
}

// Name returns the type name registered for kind.
func (r *ComponentRegistry) Name(kind Kind) string {
	if t := r.Type(kind); t != nil {
		return t.Name()
	}
	return fmt.Sprintf("Kind(%d)", kind)
}

func (r *ComponentRegistry) check(c Component) Kind {
	kind := c.Kind()
	if !r.Registered(kind) {
		panic(fmt.Sprintf("component type %T not registered", c))
	}
	if t := reflect.TypeOf(c); t != r.types[kind] {
		panic(fmt.Sprintf("component type %T does not match %s registered for kind %d",
			c, r.types[kind], kind))
	}
	return kind
}

// KindOf returns the kind declared by component type T.
func KindOf[T any, P interface {
	*T
	Component
}]() Kind {
	var zero T
	return P(&zero).Kind()
}
