package ecs

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/tilegate/spatial"
	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Disabled       bool
	Tracked        int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type systemEntry struct {
	system   System
	config   SystemConfig
	requires KindSet
	watches  KindSet
	tracked  *EntitySet
	dirty    *EntitySet
	stats    systemStatsInternal
}

// Scheduler maps entities to systems by component membership and runs the
// systems in registration order.
type Scheduler struct {
	storage *Storage
	spatial *spatial.Hash[EntityId]
	logger  *zap.Logger

	systems  []*systemEntry
	bySystem map[System]*systemEntry
	watchers [MaxKinds][]*systemEntry
}

type SchedulerOption func(*Scheduler)

// WithSpatialIndex hands h to every system through UpdateFrame.Spatial.
func WithSpatialIndex(h *spatial.Hash[EntityId]) SchedulerOption {
	return func(s *Scheduler) { s.spatial = h }
}

func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = logger }
}

// NewScheduler creates a scheduler for the given storage and subscribes it
// to the storage's structural changes.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage:  storage,
		logger:   zap.NewNop(),
		bySystem: make(map[System]*systemEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spatial == nil {
		s.spatial = spatial.New[EntityId]()
	}
	storage.observe(s)
	return s
}

func (s *Scheduler) Storage() *Storage {
	return s.storage
}

func (s *Scheduler) Spatial() *spatial.Hash[EntityId] {
	return s.spatial
}

// Register appends a system and evaluates its membership against every
// existing entity. Systems must be comparable, which in practice means
// pointers. Registering the same system twice panics.
func (s *Scheduler) Register(system System, opts ...SystemOption) {
	if _, ok := s.bySystem[system]; ok {
		panic("system already registered: " + systemName(system))
	}

	entry := &systemEntry{
		system:   system,
		config:   SystemConfig{Name: systemName(system)},
		requires: system.Requires(),
		tracked:  NewEntitySet(),
		dirty:    NewEntitySet(),
		stats:    systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	for _, opt := range opts {
		opt(&entry.config)
	}
	if w, ok := system.(DirtyWatcher); ok {
		entry.watches = w.WatchesDirty()
	}

	if entry.requires.Empty() && !entry.config.MatchAll {
		s.logger.Warn("system requires no components and will track every entity",
			zap.String("system", entry.config.Name))
	}

	for id, container := range s.storage.All() {
		if container.HasAll(entry.requires) {
			entry.tracked.Add(id)
		}
	}

	s.systems = append(s.systems, entry)
	s.bySystem[system] = entry
	for kind := range entry.watches.All() {
		s.watchers[kind] = append(s.watchers[kind], entry)
	}

	s.logger.Debug("system registered",
		zap.String("system", entry.config.Name),
		zap.Int("tracked", entry.tracked.Len()),
		zap.Bool("disabled", entry.config.Disabled))
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Systems returns the registered systems in registration order.
func (s *Scheduler) Systems() []System {
	out := make([]System, len(s.systems))
	for i, e := range s.systems {
		out[i] = e.system
	}
	return out
}

// Config returns the scheduler-owned configuration of system.
func (s *Scheduler) Config(system System) (SystemConfig, bool) {
	entry, ok := s.bySystem[system]
	if !ok {
		return SystemConfig{}, false
	}
	return entry.config, true
}

// SetDisabled enables or disables a system and reports whether the system
// is registered.
func (s *Scheduler) SetDisabled(system System, disabled bool) bool {
	entry, ok := s.bySystem[system]
	if !ok {
		return false
	}
	if entry.config.Disabled == disabled {
		return true
	}
	entry.config.Disabled = disabled
	if disabled && entry.config.DropDirtyWhileDisabled {
		entry.dirty.Clear()
	}
	s.logger.Debug("system toggled",
		zap.String("system", entry.config.Name),
		zap.Bool("disabled", disabled))
	return true
}

// Disabled reports whether system is disabled. Unregistered systems
// report false.
func (s *Scheduler) Disabled(system System) bool {
	entry, ok := s.bySystem[system]
	return ok && entry.config.Disabled
}

// Tracked returns the entities system currently tracks, or nil.
func (s *Scheduler) Tracked(system System) *EntitySet {
	if entry, ok := s.bySystem[system]; ok {
		return entry.tracked
	}
	return nil
}

// Dirty returns the pending dirty set of system, or nil.
func (s *Scheduler) Dirty(system System) *EntitySet {
	if entry, ok := s.bySystem[system]; ok {
		return entry.dirty
	}
	return nil
}

func (s *Scheduler) componentsChanged(id EntityId, c *ComponentContainer) {
	for _, entry := range s.systems {
		if c.HasAll(entry.requires) {
			entry.tracked.Add(id)
			continue
		}
		if entry.tracked.Remove(id) {
			entry.dirty.Remove(id)
		}
	}
}

func (s *Scheduler) entityDestroyed(id EntityId) {
	for _, entry := range s.systems {
		entry.tracked.Remove(id)
		entry.dirty.Remove(id)
	}
}

func (s *Scheduler) componentDirty(id EntityId, kind Kind) {
	for _, entry := range s.watchers[kind] {
		if entry.config.Disabled && entry.config.DropDirtyWhileDisabled {
			continue
		}
		if entry.tracked.Has(id) {
			entry.dirty.Add(id)
		}
	}
}

// Once runs every enabled system once with the given delta time, then
// flushes the storage command buffer.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s)

	for _, entry := range s.systems {
		if entry.config.Disabled {
			continue
		}

		start := time.Now()
		entry.system.Update(frame, entry.tracked, entry.dirty)
		duration := time.Since(start)
		entry.dirty.Clear()

		stats := &entry.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.storage.Flush()
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.config.Name,
			Disabled:       entry.config.Disabled,
			Tracked:        entry.tracked.Len(),
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
