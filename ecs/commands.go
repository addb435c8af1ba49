package ecs

// Commands buffers structural changes requested during a frame. Destroys
// and deferred functions run when the buffer is flushed at the end of the
// tick, so systems never observe an entity vanishing mid-frame.
type Commands struct {
	destroys []EntityId
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Destroy queues an entity for removal.
func (c *Commands) Destroy(id EntityId) {
	c.destroys = append(c.destroys, id)
}

// Defer queues fn to run after the queued destroys.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued destroys and deferred functions.
func (c *Commands) Pending() (destroys, defers int) {
	return len(c.destroys), len(c.defers)
}

// Flush applies every queued command to storage. Destroys run in reverse
// order of request, then deferred functions in order. Commands queued while
// flushing are applied in the same call.
func (c *Commands) Flush(storage *Storage) {
	for len(c.destroys) > 0 || len(c.defers) > 0 {
		destroys, defers := c.destroys, c.defers
		c.destroys, c.defers = nil, nil

		for i := len(destroys) - 1; i >= 0; i-- {
			storage.destroy(destroys[i])
		}
		for _, fn := range defers {
			fn()
		}
	}
}
