package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/downbeat/ecs"
	"github.com/plus3/downbeat/ecs/debugui"
	debugui_ebiten "github.com/plus3/downbeat/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and drives the registry with ImGui rendering.
type Game struct {
	registry *ecs.Registry
	backend  *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Begin ImGui frame before ticking the registry
	g.backend.BeginFrame()

	// One registry tick runs every due system, including the RenderSystem
	g.registry.Update()

	// End ImGui frame after systems complete
	g.backend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	registry := ecs.NewRegistry()

	// The debug windows are plain entities with render callbacks
	browser := debugui.NewEntityBrowserComponent(50)
	inspector := debugui.NewSystemInspectorComponent()

	window := registry.NewEntity()
	window.Set(debugui.RenderComponent, debugui.RenderFunc(func() {
		browser.Render(registry)
		inspector.Render(registry)
	}))
	if err := registry.AddEntity(window); err != nil {
		panic(err)
	}

	if err := registry.AddSystem(debugui.NewRenderSystem()); err != nil {
		panic(err)
	}

	game := &Game{
		registry: registry,
		backend:  backend,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
