package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilegate/ecs"
)

// QueryDebugger shows which entities a system requiring the selected
// kinds would track.
type QueryDebugger struct {
	selected ecs.KindSet
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{}
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	registry := storage.Registry()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = 0
	}

	for kind := range registry.Kinds().All() {
		selected := qd.selected.Has(kind)
		if imgui.Checkbox(registry.Name(kind), &selected) {
			if selected {
				qd.selected = qd.selected.With(kind)
			} else {
				qd.selected = qd.selected.Without(kind)
			}
		}
	}

	imgui.Separator()

	if qd.selected.Empty() {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := matchingEntities(storage, qd.selected)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, id := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", id))

				imgui.TableSetColumnIndex(1)
				imgui.Text(kindNames(registry, storage.Components(id).Kinds()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// matchingEntities returns, in id order, the entities holding every kind
// in required.
func matchingEntities(storage *ecs.Storage, required ecs.KindSet) []ecs.EntityId {
	var out []ecs.EntityId
	for id, container := range storage.All() {
		if container.HasAll(required) {
			out = append(out, id)
		}
	}
	return out
}

func kindNames(registry *ecs.ComponentRegistry, kinds ecs.KindSet) string {
	names := make([]string, 0, kinds.Len())
	for kind := range kinds.All() {
		names = append(names, registry.Name(kind))
	}
	return strings.Join(names, ", ")
}
