package ecs

import "github.com/plus3/tilegate/spatial"

// UpdateFrame is handed to every system on each tick.
type UpdateFrame struct {
	DeltaTime float64
	Storage   *Storage
	Scheduler *Scheduler
	Spatial   *spatial.Hash[EntityId]
	Commands  *Commands
}

func newUpdateFrame(dt float64, s *Scheduler) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Storage:   s.storage,
		Scheduler: s,
		Spatial:   s.spatial,
		Commands:  s.storage.Commands(),
	}
}
