//go:build cgo

package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mawside/cellar/ecs"
)

type EntityInfo struct {
	Handle         ecs.Entity
	Generation     uint32
	ArchetypeKey   uint64
	ComponentTypes []string
	ComponentCount int
}

type entityBrowserCache struct {
	entities           []EntityInfo
	lastArchetypeCount int
	lastEntityCount    int
	sortColumn         int
	sortAscending      bool
}

func NewEntityBrowserPanel(pageSize int) *EntityBrowserPanel {
	return &EntityBrowserPanel{
		cache: &entityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		pageSize: pageSize,
	}
}

func (eb *EntityBrowserPanel) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterKey = nil
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Gen")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := eb.filteredEntities()

		startIdx := eb.page * eb.pageSize
		endIdx := startIdx + eb.pageSize
		if startIdx > len(filtered) {
			startIdx = 0
			eb.page = 0
		}
		if endIdx > len(filtered) {
			endIdx = len(filtered)
		}

		for i := startIdx; i < endIdx; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected == entity.Handle
			label := fmt.Sprintf("%d", entity.Handle.Index())
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.Handle
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.Generation))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeKey))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filtered := eb.filteredEntities()

	if len(filtered) > eb.pageSize {
		totalPages := (len(filtered) + eb.pageSize - 1) / eb.pageSize
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < totalPages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowserPanel) rebuildCacheIfNeeded(world *ecs.World) {
	archetypeCount := len(world.Archetypes())
	entityCount := world.Len()
	if eb.cache.lastArchetypeCount != archetypeCount || eb.cache.lastEntityCount != entityCount {
		eb.cache.entities = nil
		eb.cache.lastArchetypeCount = archetypeCount
		eb.cache.lastEntityCount = entityCount
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(world)
	}
}

func (eb *EntityBrowserPanel) rebuildCache(world *ecs.World) {
	eb.cache.entities = make([]EntityInfo, 0, 1024)

	for _, archetype := range world.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for _, handle := range archetype.Entities() {
			eb.cache.entities = append(eb.cache.entities, EntityInfo{
				Handle:         handle,
				Generation:     handle.Generation(),
				ArchetypeKey:   archetype.Key(),
				ComponentTypes: componentTypes,
				ComponentCount: len(componentTypes),
			})
		}
	}

	eb.sortEntities()
}

func (eb *EntityBrowserPanel) sortEntities() {
	sort.Slice(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 0:
			less = a.Handle.Index() < b.Handle.Index()
		case 1:
			less = a.Generation < b.Generation
		case 2:
			less = a.ArchetypeKey < b.ArchetypeKey
		case 3:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 4:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.Handle.Index() < b.Handle.Index()
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserPanel) filteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterKey == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterKey != nil && entity.ArchetypeKey != *eb.filterKey {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.Handle.Index())
			keyStr := fmt.Sprintf("0x%x", entity.ArchetypeKey)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(keyStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// FilterByArchetype restricts the listing to one archetype, as picked in the
// archetype viewer.
func (eb *EntityBrowserPanel) FilterByArchetype(key uint64) {
	eb.filterKey = &key
	eb.page = 0
}

// Selected returns the currently selected entity handle, or ecs.NoEntity.
func (eb *EntityBrowserPanel) Selected() ecs.Entity {
	return eb.selected
}
