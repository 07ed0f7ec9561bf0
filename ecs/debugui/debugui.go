//go:build cgo

// Package debugui provides immediate-mode inspection panels for a running
// world using Dear ImGui: an entity browser, a component inspector with
// editable fields, an archetype viewer, scheduler timing stats, and an
// ad-hoc query debugger.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mawside/cellar/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a world resource tracking Dear ImGui's input capture
// state. Game input handling should back off while either flag is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render
// functions to the end of the tick. It also refreshes the ImguiInputState
// resource with the current capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Resource[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions.
func (s *ImguiSystem) Execute(tick *ecs.Tick) {
	state := s.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range s.Items.Iter() {
		tick.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the debug UI component types with the
// registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.Register[ImguiItem](registry)
}
