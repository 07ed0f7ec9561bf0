//go:build cgo

package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mawside/cellar/ecs"
)

type queryDebuggerCache struct {
	componentTypes     []string
	lastArchetypeCount int
}

func NewQueryDebuggerPanel() *QueryDebuggerPanel {
	return &QueryDebuggerPanel{
		selectedTypes: make(map[string]bool),
		cache: &queryDebuggerCache{
			lastArchetypeCount: -1,
		},
	}
}

// Render lets the user tick component types and shows which archetypes and
// how many entities a query over that combination would match.
func (qd *QueryDebuggerPanel) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(world)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		selected := qd.selectedTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			if selected {
				qd.selectedTypes[compType] = true
			} else {
				delete(qd.selectedTypes, compType)
			}
		}
	}

	imgui.Separator()

	typeMap := make(map[string]reflect.Type)
	for _, archetype := range world.Archetypes() {
		for _, t := range archetype.Types() {
			typeMap[t.String()] = t
		}
	}

	selectedTypes := make([]reflect.Type, 0, len(qd.selectedTypes))
	for typeName := range qd.selectedTypes {
		if t, ok := typeMap[typeName]; ok {
			selectedTypes = append(selectedTypes, t)
		}
	}

	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := qd.findMatchingArchetypes(world, selectedTypes)
	totalEntities := 0
	for _, arch := range matching {
		totalEntities += arch.Len()
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", totalEntities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%X", arch.Key()))

				imgui.TableSetColumnIndex(1)
				componentNames := make([]string, len(arch.Types()))
				for i, t := range arch.Types() {
					componentNames[i] = t.String()
				}
				imgui.Text(strings.Join(componentNames, ", "))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.Len()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerPanel) rebuildCacheIfNeeded(world *ecs.World) {
	archetypeCount := len(world.Archetypes())
	if qd.cache.lastArchetypeCount != archetypeCount {
		qd.cache.componentTypes = nil
		qd.cache.lastArchetypeCount = archetypeCount
	}

	if qd.cache.componentTypes == nil {
		qd.rebuildCache(world)
	}
}

func (qd *QueryDebuggerPanel) rebuildCache(world *ecs.World) {
	typeSet := make(map[string]bool)

	for _, archetype := range world.Archetypes() {
		for _, t := range archetype.Types() {
			typeSet[t.String()] = true
		}
	}

	qd.cache.componentTypes = make([]string, 0, len(typeSet))
	for typeName := range typeSet {
		qd.cache.componentTypes = append(qd.cache.componentTypes, typeName)
	}

	sort.Strings(qd.cache.componentTypes)
}

func (qd *QueryDebuggerPanel) findMatchingArchetypes(world *ecs.World, requiredTypes []reflect.Type) []*ecs.Archetype {
	matching := make([]*ecs.Archetype, 0)

	for _, archetype := range world.Archetypes() {
		if archetypeHasAllTypes(archetype, requiredTypes) {
			matching = append(matching, archetype)
		}
	}

	return matching
}

func archetypeHasAllTypes(archetype *ecs.Archetype, requiredTypes []reflect.Type) bool {
	typeSet := make(map[reflect.Type]bool)
	for _, t := range archetype.Types() {
		typeSet[t] = true
	}

	for _, required := range requiredTypes {
		if !typeSet[required] {
			return false
		}
	}

	return true
}
