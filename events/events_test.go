package events_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/plus3/tilegate/events"
	"github.com/stretchr/testify/assert"
)

var (
	scoreChanged = events.NewTopic[int]("score-changed")
	levelDone    = events.NewTopic[struct{}]("level-done")
)

func TestEmitReachesListenersInOrder(t *testing.T) {
	em := events.NewEmitter()
	var got []string

	events.Subscribe(em, scoreChanged, func(v int) { got = append(got, "a") })
	events.Subscribe(em, scoreChanged, func(v int) { got = append(got, "b") })
	events.Subscribe(em, levelDone, func(struct{}) { got = append(got, "other") })

	n := events.Emit(em, scoreChanged, 3)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestEmitWithoutListeners(t *testing.T) {
	em := events.NewEmitter()
	assert.Equal(t, 0, events.Emit(em, levelDone, struct{}{}))
}

func TestCancelSubscription(t *testing.T) {
	em := events.NewEmitter()
	var total int

	sub := events.Subscribe(em, scoreChanged, func(v int) { total += v })
	assert.NotEqual(t, uuid.Nil, sub.ID())
	assert.Equal(t, "score-changed", sub.Topic())

	events.Emit(em, scoreChanged, 5)
	sub.Cancel()
	events.Emit(em, scoreChanged, 5)

	assert.Equal(t, 5, total)
	assert.Equal(t, 0, em.Listeners("score-changed"))
	assert.False(t, em.Off(sub), "second cancel finds nothing")
}

func TestListenerCancellingItselfDuringEmit(t *testing.T) {
	em := events.NewEmitter()
	var calls []string

	var sub events.Subscription
	sub = events.Subscribe(em, scoreChanged, func(int) {
		calls = append(calls, "once")
		sub.Cancel()
	})
	events.Subscribe(em, scoreChanged, func(int) { calls = append(calls, "always") })

	events.Emit(em, scoreChanged, 1)
	events.Emit(em, scoreChanged, 1)

	assert.Equal(t, []string{"once", "always", "always"}, calls)
}

func TestListenerSubscribingDuringEmit(t *testing.T) {
	em := events.NewEmitter()
	var late int

	events.Subscribe(em, scoreChanged, func(int) {
		events.Subscribe(em, scoreChanged, func(int) { late++ })
	})

	assert.Equal(t, 1, events.Emit(em, scoreChanged, 0))
	assert.Equal(t, 0, late)
}

func TestZeroSubscriptionCancel(t *testing.T) {
	assert.NotPanics(t, events.Subscription{}.Cancel)
}
