//go:build cgo

package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mawside/cellar/ecs"
)

func NewComponentInspectorPanel() *ComponentInspectorPanel {
	return &ComponentInspectorPanel{}
}

// Render shows the selected entity's components with editable fields. The
// world hands out components boxed as pointers into column storage, so edits
// write straight through. Pointers are only valid within the frame; the panel
// re-resolves them on every render.
func (ci *ComponentInspectorPanel) Render(world *ecs.World, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selected = selected

	if ci.selected == ecs.NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !world.Alive(ci.selected) {
		imgui.Text(fmt.Sprintf("Entity %d is gone (stale handle, gen %d)", ci.selected.Index(), ci.selected.Generation()))
		imgui.End()
		return
	}

	archetype := world.ArchetypeOf(ci.selected)
	imgui.Text(fmt.Sprintf("Entity: %d (gen %d)", ci.selected.Index(), ci.selected.Generation()))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.Key()))
	imgui.SameLine()
	if imgui.Button("Despawn") {
		world.Despawn(ci.selected)
		imgui.End()
		return
	}
	imgui.Separator()

	for _, compType := range world.ComponentTypes(ci.selected) {
		component := world.Component(ci.selected, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderComponent(component, compType)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorPanel) renderComponent(component any, compType reflect.Type) {
	val := reflect.ValueOf(component).Elem()

	for _, field := range globalReflectionCache.fields(compType) {
		ci.renderField(field.Name, val.Field(field.Index))
	}
}

func (ci *ComponentInspectorPanel) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nested := range globalReflectionCache.fields(val.Type()) {
				ci.renderField(nested.Name, val.Field(nested.Index))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
