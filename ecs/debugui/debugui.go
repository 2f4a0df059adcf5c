// Package debugui provides immediate-mode GUI integration for ECS
// applications using Dear ImGui. Debug windows are ordinary entities
// carrying a render-callback component; a RenderSystem dispatched by the
// registry invokes them every tick.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/downbeat/ecs"
)

// RenderComponent is the component name the RenderSystem requires. Attach
// a RenderFunc under this name to entities that should draw ImGui widgets.
const RenderComponent = "debugui.render"

// RenderFunc is the payload stored under RenderComponent.
type RenderFunc func()

// InputState mirrors Dear ImGui's input capture state. Game input handling
// should back off while ImGui wants the mouse or keyboard.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// RenderSystem invokes the RenderFunc of every tracked entity each tick
// and refreshes the input capture state.
type RenderSystem struct {
	ecs.SystemBase
	Input InputState
}

// NewRenderSystem returns a RenderSystem updating every tick.
func NewRenderSystem() *RenderSystem {
	return &RenderSystem{SystemBase: ecs.NewSystemBase(1, RenderComponent)}
}

// Update refreshes the input state and runs the entity's render callback.
func (s *RenderSystem) Update(e *ecs.Entity, _ float64) {
	io := imgui.CurrentIO()
	s.Input.WantCaptureMouse = io.WantCaptureMouse()
	s.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	data, ok := e.Get(RenderComponent)
	if !ok {
		return
	}
	if render, ok := data.(RenderFunc); ok && render != nil {
		render()
	}
}
