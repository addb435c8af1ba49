package game

import (
	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/events"
	"github.com/plus3/tilegate/level"
	"github.com/plus3/tilegate/spatial"
	"go.uber.org/zap"
)

type Options struct {
	Settings Settings
	Source   level.Source
	// Legend defaults to level.DefaultLegend sized by the world tile size.
	Legend *level.Legend
	// Input defaults to NoInput.
	Input  Input
	Logger *zap.Logger

	ScreenWidth, ScreenHeight int
}

// Manager owns the world and switches systems on and off as the game state
// changes.
type Manager struct {
	State GameState

	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Spatial   *spatial.Hash[ecs.EntityId]
	Events    *events.Emitter
	Camera    *Camera
	DrawList  *DrawList
	Progress  *Progress
	Legend    *level.Legend

	settings *Settings
	input    Input
	logger   *zap.Logger
	systems  [slotCount]ecs.System
	sub      events.Subscription
}

// NewManager builds the world, registers every system disabled and starts
// in the main menu.
func NewManager(opts Options) *Manager {
	if opts.Legend == nil {
		opts.Legend = level.DefaultLegend()
		if opts.Settings.World.TileSize > 0 {
			opts.Legend.TileSize = opts.Settings.World.TileSize
		}
	}
	if opts.Input == nil {
		opts.Input = NoInput{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	settings := opts.Settings

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	hash := spatial.New[ecs.EntityId]()

	m := &Manager{
		State:     StateMainMenu,
		Storage:   storage,
		Spatial:   hash,
		Scheduler: ecs.NewScheduler(storage, ecs.WithSpatialIndex(hash), ecs.WithLogger(opts.Logger)),
		Events:    events.NewEmitter(),
		Camera:    NewCamera(opts.ScreenWidth, opts.ScreenHeight, opts.Legend.TileSize),
		DrawList:  &DrawList{},
		Progress:  &Progress{Level: settings.FirstLevel},
		Legend:    opts.Legend,
		settings:  &settings,
		input:     opts.Input,
		logger:    opts.Logger,
	}

	m.attachSystems(opts.Source)
	m.sub = events.Subscribe(m.Events, StateChanged, m.handleStateChange)
	return m
}

func (m *Manager) attachSystems(source level.Source) {
	logger := m.logger
	builder := &LevelBuilderSystem{
		Source: source,
		Legend: m.Legend,
		Prefabs: &Prefabs{
			Storage:  m.Storage,
			Spatial:  m.Spatial,
			Settings: m.settings,
			Palette:  m.Legend.Colours,
		},
		Progress: m.Progress,
		Events:   m.Events,
		Logger:   logger.Named("level"),
	}
	status := &LevelStatusSystem{Logger: logger.Named("level")}

	m.systems = [slotCount]ecs.System{
		slotLevelBuilder: builder,
		slotCameraFollow: &CameraFollowSystem{Camera: m.Camera},
		slotControllable: &ControllableSystem{Input: m.input, Settings: m.settings},
		slotTransform:    &TransformSystem{Settings: m.settings},
		slotCollidable:   &CollidableSystem{Settings: m.settings},
		slotDrawColour:   &DrawColourSystem{List: m.DrawList},
		slotLevelStatus:  status,
		slotInteraction: &InteractionSystem{
			Input:    m.input,
			Settings: m.settings,
			Pressed:  m.Legend.Colours.ButtonPressed.Color(),
			Logger:   logger.Named("interaction"),
		},
		slotGate: &GateSystem{
			Settings: m.settings,
			Progress: m.Progress,
			Builder:  builder,
			Status:   status,
			Logger:   logger.Named("gate"),
		},
	}

	for slot, sys := range m.systems {
		opts := []ecs.SystemOption{ecs.Disabled()}
		if systemSlot(slot) == slotLevelBuilder {
			opts = append(opts, ecs.MatchAll())
		}
		m.Scheduler.Register(sys, opts...)
	}
}

// Controls returns the key bindings the manager and its systems read.
func (m *Manager) Controls() Controls {
	return m.settings.Controls
}

// SetState publishes a state change request.
func (m *Manager) SetState(state GameState) {
	events.Emit(m.Events, StateChanged, state)
}

func (m *Manager) handleStateChange(state GameState) {
	m.logger.Info("game state changed",
		zap.Stringer("from", m.State),
		zap.Stringer("to", state))
	m.State = state

	switch state {
	case StateStartPlaying:
		*m.Progress = Progress{Level: m.settings.FirstLevel}
	case StateCompleted:
		m.DrawList.Rects = m.DrawList.Rects[:0]
	}

	disabled, ok := stateTable[state]
	if !ok {
		return
	}
	for slot, sys := range m.systems {
		m.Scheduler.SetDisabled(sys, disabled[slot])
	}
}

// Update handles the state keys and runs one tick of the simulation.
func (m *Manager) Update(dt float64) {
	controls := &m.settings.Controls
	if m.input.IsKeyPressed(controls.Start) {
		m.SetState(StateStartPlaying)
	}
	if m.input.IsKeyPressed(controls.Pause) {
		m.SetState(StatePaused)
	}
	if m.input.IsKeyPressed(controls.Resume) {
		m.SetState(StatePlaying)
	}

	m.Scheduler.Once(dt)
}

// Close unsubscribes the manager from state changes.
func (m *Manager) Close() {
	m.sub.Cancel()
}
