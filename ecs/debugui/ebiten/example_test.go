package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/ecs/debugui"
	debugui_ebiten "github.com/plus3/tilegate/ecs/debugui/ebiten"
)

type Marker struct {
	Label string
}

func (*Marker) Kind() ecs.Kind { return 0 }

// Game implements ebiten.Game and draws the debug overlay over the world.
type Game struct {
	scheduler *ecs.Scheduler
	overlay   *debugui.Overlay
	backend   *debugui_ebiten.ImguiBackend
	timer     *debugui.FrameTimer
}

func (g *Game) Update() error {
	g.backend.BeginFrame()

	g.scheduler.Once(1.0 / 60.0)
	g.overlay.Render(g.timer.GetDeltaTime())
	imgui.Begin("Debug Window")
	imgui.Text("Hello from the world!")
	imgui.End()

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
	backend := debugui_ebiten.NewImguiBackend("Debug Overlay Example", 1280, 720)

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Marker](registry)
	storage := ecs.NewStorage(registry)

	id := storage.CreateEntity()
	storage.AddComponent(id, &Marker{Label: "inspect me"})

	scheduler := ecs.NewScheduler(storage)
	overlay := debugui.New(scheduler)
	overlay.Visible = true
	overlay.Entities.Select(id)

	game := &Game{
		scheduler: scheduler,
		overlay:   overlay,
		backend:   backend,
		timer:     debugui.NewFrameTimer(),
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
