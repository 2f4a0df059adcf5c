package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/downbeat/ecs"
)

// NewEntityBrowserComponent creates an entity browser paging through at
// most maxEntitiesPerPage rows at a time.
func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// Render draws the browser window listing every registered entity with its
// id, component names and tracking system count.
func (eb *EntityBrowserComponent) Render(registry *ecs.Registry) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := eb.filteredEntities(registry)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Systems")
		imgui.TableHeadersRow()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		if startIdx > len(filtered) {
			startIdx = len(filtered)
			eb.currentPage = 0
		}
		endIdx := startIdx + eb.maxEntitiesPerPage
		if endIdx > len(filtered) {
			endIdx = len(filtered)
		}

		for _, entity := range filtered[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityID == entity.ID()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityID = entity.ID()
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentNames(), ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount()))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Systems())))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
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

func (eb *EntityBrowserComponent) filteredEntities(registry *ecs.Registry) []*ecs.Entity {
	entities := registry.Entities()
	if eb.filterText == "" {
		return entities
	}

	filterLower := strings.ToLower(eb.filterText)
	filtered := make([]*ecs.Entity, 0, len(entities))
	for _, entity := range entities {
		idStr := fmt.Sprintf("%d", entity.ID())
		namesStr := strings.ToLower(strings.Join(entity.ComponentNames(), " "))

		if strings.Contains(idStr, filterLower) || strings.Contains(namesStr, filterLower) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

// GetSelectedEntity returns the id of the selected row, or 0 when nothing
// has been selected yet.
func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityID {
	return eb.selectedEntityID
}
