package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilegate/ecs"
)

type EntityInfo struct {
	ID         ecs.EntityId
	Kinds      ecs.KindSet
	Components []string
}

// EntityBrowser lists every entity with its components and tracks the
// selected one.
type EntityBrowser struct {
	entities      []EntityInfo
	selected      ecs.EntityId
	filterText    string
	perPage       int
	currentPage   int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	if perPage <= 0 {
		perPage = 100
	}
	return &EntityBrowser{
		perPage:       perPage,
		sortAscending: true,
	}
}

func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := eb.filtered()
	totalPages := max(1, (len(filtered)+eb.perPage-1)/eb.perPage)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sort()
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.perPage
		end := min(start+eb.perPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Components)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.perPage {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// refresh rebuilds the rows from storage. Levels are small enough to do
// this every frame.
func (eb *EntityBrowser) refresh(storage *ecs.Storage) {
	registry := storage.Registry()
	eb.entities = eb.entities[:0]

	for id, container := range storage.All() {
		info := EntityInfo{ID: id, Kinds: container.Kinds()}
		for kind := range info.Kinds.All() {
			info.Components = append(info.Components, registry.Name(kind))
		}
		eb.entities = append(eb.entities, info)
	}

	if !storage.Exists(eb.selected) {
		eb.selected = ecs.NoEntity
	}
	eb.sort()
}

func (eb *EntityBrowser) sort() {
	less := func(a, b EntityInfo) bool {
		switch eb.sortColumn {
		case 1:
			return strings.Join(a.Components, ",") < strings.Join(b.Components, ",")
		case 2:
			return len(a.Components) < len(b.Components)
		default:
			return a.ID < b.ID
		}
	}

	sort.SliceStable(eb.entities, func(i, j int) bool {
		if eb.sortAscending {
			return less(eb.entities[i], eb.entities[j])
		}
		return less(eb.entities[j], eb.entities[i])
	})
}

// filtered returns the rows whose id or component names contain the
// filter text, ignoring case.
func (eb *EntityBrowser) filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	out := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		componentsStr := strings.ToLower(strings.Join(entity.Components, " "))
		if strings.Contains(idStr, filterLower) || strings.Contains(componentsStr, filterLower) {
			out = append(out, entity)
		}
	}
	return out
}
