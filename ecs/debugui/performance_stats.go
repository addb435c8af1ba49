package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilegate/ecs"
)

// PerformanceStats plots frame times and summarises the storage and the
// spatial hash.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	historyFrames = max(1, historyFrames)
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// average returns the mean frame time in milliseconds.
func (ps *PerformanceStats) average() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(scheduler *ecs.Scheduler, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(deltaTime)

	stats := scheduler.Storage().CollectStats()
	schedulerStats := scheduler.GetStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Pending: %d destroys, %d deferred", stats.PendingDestroys, stats.PendingDefers))
	imgui.Text(fmt.Sprintf("Systems: %d (%d executions)", schedulerStats.SystemCount, schedulerStats.TotalExecutions))

	avgFrameTime := ps.average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Component Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ComponentStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, c := range stats.Components {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.Kind))
				imgui.TableNextColumn()
				imgui.Text(c.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", c.Count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Spatial Hash") {
		hash := scheduler.Spatial().Stats()
		imgui.BulletText(fmt.Sprintf("Occupied cells: %d", hash.Cells))
		imgui.BulletText(fmt.Sprintf("Entries: %d", hash.Entries))
		imgui.BulletText(fmt.Sprintf("Fullest cell: %d", hash.MaxOccupancy))
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
