package ecs

// System is a behavior run once per tick over the entities holding every
// kind it requires.
//
// tracked holds those entities. dirty holds the tracked entities whose
// watched components were marked dirty since the system last ran; it is
// cleared right after Update returns.
type System interface {
	Requires() KindSet
	Update(frame *UpdateFrame, tracked, dirty *EntitySet)
}

// DirtyWatcher is implemented by systems that want dirty sets. Marking a
// component of a kind outside WatchesDirty never reaches the system.
type DirtyWatcher interface {
	WatchesDirty() KindSet
}

// SystemConfig is the scheduler-owned state of a registered system.
type SystemConfig struct {
	Name     string
	Disabled bool
	// MatchAll acknowledges an empty required set, which tracks every
	// entity.
	MatchAll bool
	// DropDirtyWhileDisabled discards dirty marks while the system is
	// disabled instead of delivering them on the next enabled tick.
	DropDirtyWhileDisabled bool
}

type SystemOption func(*SystemConfig)

// Disabled registers the system in the disabled state.
func Disabled() SystemOption {
	return func(c *SystemConfig) { c.Disabled = true }
}

func MatchAll() SystemOption {
	return func(c *SystemConfig) { c.MatchAll = true }
}

func DropDirtyWhileDisabled() SystemOption {
	return func(c *SystemConfig) { c.DropDirtyWhileDisabled = true }
}

// Named overrides the name reported in stats, which defaults to the type
// name of the system.
func Named(name string) SystemOption {
	return func(c *SystemConfig) { c.Name = name }
}
