package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilegate/ecs"
)

type SystemInfo struct {
	System ecs.System
	Stats  ecs.SystemStats
}

// SystemViewer lists the scheduled systems in run order with their
// timings, and toggles them on and off.
type SystemViewer struct {
	systems []SystemInfo
}

func NewSystemViewer() *SystemViewer {
	return &SystemViewer{}
}

func (sv *SystemViewer) Render(scheduler *ecs.Scheduler) {
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sv.refresh(scheduler)

	maxTracked := 0
	for _, info := range sv.systems {
		maxTracked = max(maxTracked, info.Stats.Tracked)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Enabled")
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last / Avg")
		imgui.TableSetupColumn("Tracked")
		imgui.TableHeadersRow()

		for _, info := range sv.systems {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			enabled := !info.Stats.Disabled
			if imgui.Checkbox(fmt.Sprintf("##enabled-%s", info.Stats.Name), &enabled) {
				scheduler.SetDisabled(info.System, !enabled)
			}

			imgui.TableNextColumn()
			imgui.Text(info.Stats.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Stats.ExecutionCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%s / %s", info.Stats.LastDuration, info.Stats.AvgDuration))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Stats.Tracked))

			if maxTracked > 0 {
				barWidth := float32(info.Stats.Tracked) / float32(maxTracked) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

// refresh pairs every system with its stats. Both lists come back in
// registration order.
func (sv *SystemViewer) refresh(scheduler *ecs.Scheduler) {
	systems := scheduler.Systems()
	stats := scheduler.GetStats().Systems

	sv.systems = sv.systems[:0]
	for i, system := range systems {
		sv.systems = append(sv.systems, SystemInfo{System: system, Stats: stats[i]})
	}
}
