package ecs

// EntityId identifies an entity. Ids are allocated in strictly increasing
// order starting at 1; the zero value never names a live entity.
type EntityId uint64

// NoEntity is the zero EntityId.
const NoEntity EntityId = 0
