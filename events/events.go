// Package events is a small synchronous publish/subscribe notifier. Topics
// carry their payload type, so listeners and emitters agree on it at compile
// time.
package events

import (
	"github.com/google/uuid"
)

// Topic names a stream of payloads of type T.
type Topic[T any] struct {
	name string
}

// NewTopic declares a topic. Two topics with the same name share listeners,
// so names must be unique per payload type.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

func (t Topic[T]) Name() string { return t.name }

type listener struct {
	id uuid.UUID
	fn any
}

// Emitter dispatches payloads to listeners on the emitting goroutine. It is
// not safe for concurrent use.
type Emitter struct {
	listeners map[string][]listener
}

func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[string][]listener),
	}
}

// Subscription identifies one listener.
type Subscription struct {
	id    uuid.UUID
	topic string
	em    *Emitter
}

func (s Subscription) ID() uuid.UUID { return s.id }
func (s Subscription) Topic() string { return s.topic }

// Cancel removes the listener. Cancelling twice is a no-op.
func (s Subscription) Cancel() {
	if s.em != nil {
		s.em.Off(s)
	}
}

// Subscribe registers fn for every payload emitted on topic.
func Subscribe[T any](em *Emitter, topic Topic[T], fn func(T)) Subscription {
	id := uuid.New()
	em.listeners[topic.name] = append(em.listeners[topic.name], listener{id: id, fn: fn})
	return Subscription{id: id, topic: topic.name, em: em}
}

// Off removes the listener behind sub and reports whether it was found.
func (em *Emitter) Off(sub Subscription) bool {
	ls := em.listeners[sub.topic]
	for i, l := range ls {
		if l.id != sub.id {
			continue
		}
		// copy so an Emit in progress keeps its own view
		next := make([]listener, 0, len(ls)-1)
		next = append(next, ls[:i]...)
		next = append(next, ls[i+1:]...)
		if len(next) == 0 {
			delete(em.listeners, sub.topic)
		} else {
			em.listeners[sub.topic] = next
		}
		return true
	}
	return false
}

// Emit calls every listener of topic in subscription order and returns how
// many were called. Listeners added or removed during Emit take effect on
// the next call.
func Emit[T any](em *Emitter, topic Topic[T], payload T) int {
	ls := em.listeners[topic.name]
	called := 0
	for _, l := range ls {
		fn, ok := l.fn.(func(T))
		if !ok {
			continue
		}
		fn(payload)
		called++
	}
	return called
}

// Listeners returns the number of listeners subscribed to the named topic.
func (em *Emitter) Listeners(topic string) int {
	return len(em.listeners[topic])
}
