// Package debugui draws Dear ImGui windows for inspecting a running world:
// its entities and their components, the scheduled systems and the
// occupancy of the spatial hash.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilegate/ecs"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Game input should be ignored while it is.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay groups the debug windows for one scheduler.
type Overlay struct {
	Entities    *EntityBrowser
	Inspector   *ComponentInspector
	Systems     *SystemViewer
	Queries     *QueryDebugger
	Performance *PerformanceStats

	Visible bool

	scheduler *ecs.Scheduler
	input     InputState
}

func New(scheduler *ecs.Scheduler) *Overlay {
	return &Overlay{
		Entities:    NewEntityBrowser(100),
		Inspector:   NewComponentInspector(),
		Systems:     NewSystemViewer(),
		Queries:     NewQueryDebugger(),
		Performance: NewPerformanceStats(120),
		scheduler:   scheduler,
	}
}

func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Input reports the capture state seen by the last Render.
func (o *Overlay) Input() InputState {
	return o.input
}

// Render draws every window. It must be called between the backend's
// BeginFrame and EndFrame.
func (o *Overlay) Render(deltaTime float32) {
	if !o.Visible {
		o.input = InputState{}
		return
	}

	storage := o.scheduler.Storage()
	o.Entities.Render(storage)
	o.Inspector.Render(storage, o.Entities.Selected())
	o.Systems.Render(o.scheduler)
	o.Queries.Render(storage)
	o.Performance.Render(o.scheduler, deltaTime)

	io := imgui.CurrentIO()
	o.input = InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}
