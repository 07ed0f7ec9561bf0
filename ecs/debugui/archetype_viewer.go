//go:build cgo

package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mawside/cellar/ecs"
)

type ArchetypeInfo struct {
	Key            uint64
	ComponentTypes []string
	EntityCount    int
	ComponentCount int
}

type archetypeViewerCache struct {
	archetypes         []ArchetypeInfo
	lastArchetypeCount int
	sortColumn         int
	sortAscending      bool
}

func NewArchetypeViewerPanel() *ArchetypeViewerPanel {
	return &ArchetypeViewerPanel{
		cache: &archetypeViewerCache{
			sortColumn:    3,
			sortAscending: false,
		},
	}
}

// Render draws the archetype table and returns the key of an archetype
// clicked this frame, or nil.
func (av *ArchetypeViewerPanel) Render(world *ecs.World) *uint64 {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	av.rebuildCacheIfNeeded(world)

	maxEntityCount := 0
	for _, arch := range av.cache.archetypes {
		if arch.EntityCount > maxEntityCount {
			maxEntityCount = arch.EntityCount
		}
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.cache.sortColumn = int(spec.ColumnIndex())
			av.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			av.sortArchetypes()
			sortSpecs.SetSpecsDirty(false)
		}

		var clickedKey *uint64

		for _, arch := range av.cache.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selectedKey != nil && *av.selectedKey == arch.Key
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.Key), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				keyCopy := arch.Key
				clickedKey = &keyCopy
				av.selectedKey = &keyCopy
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.ComponentCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()

		imgui.End()
		return clickedKey
	}

	imgui.End()
	return nil
}

func (av *ArchetypeViewerPanel) rebuildCacheIfNeeded(world *ecs.World) {
	archetypes := world.Archetypes()
	if av.cache.lastArchetypeCount != len(archetypes) {
		av.cache.archetypes = nil
		av.cache.lastArchetypeCount = len(archetypes)
	}

	if av.cache.archetypes == nil {
		av.rebuildCache(archetypes)
	} else {
		av.updateEntityCounts(archetypes)
	}
}

func (av *ArchetypeViewerPanel) rebuildCache(archetypes []*ecs.Archetype) {
	av.cache.archetypes = make([]ArchetypeInfo, 0, len(archetypes))

	for _, archetype := range archetypes {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		av.cache.archetypes = append(av.cache.archetypes, ArchetypeInfo{
			Key:            archetype.Key(),
			ComponentTypes: componentTypes,
			EntityCount:    archetype.Len(),
			ComponentCount: len(componentTypes),
		})
	}

	av.sortArchetypes()
}

func (av *ArchetypeViewerPanel) updateEntityCounts(archetypes []*ecs.Archetype) {
	counts := make(map[uint64]int, len(archetypes))
	for _, archetype := range archetypes {
		counts[archetype.Key()] = archetype.Len()
	}

	for i := range av.cache.archetypes {
		if count, ok := counts[av.cache.archetypes[i].Key]; ok {
			av.cache.archetypes[i].EntityCount = count
		}
	}

	if av.cache.sortColumn == 3 {
		av.sortArchetypes()
	}
}

func (av *ArchetypeViewerPanel) sortArchetypes() {
	sort.Slice(av.cache.archetypes, func(i, j int) bool {
		a, b := av.cache.archetypes[i], av.cache.archetypes[j]
		var less bool

		switch av.cache.sortColumn {
		case 0:
			less = a.Key < b.Key
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = a.ComponentCount < b.ComponentCount
		case 3:
			less = a.EntityCount < b.EntityCount
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !av.cache.sortAscending {
			return !less
		}
		return less
	})
}
