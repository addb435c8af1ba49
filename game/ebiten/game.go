package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tilegate/ecs/debugui"
	debugui_ebiten "github.com/plus3/tilegate/ecs/debugui/ebiten"
	"github.com/plus3/tilegate/game"
)

// Game implements ebiten.Game around a game.Manager. The simulation runs at
// a fixed step of one tick per Update.
type Game struct {
	manager    *game.Manager
	width      int
	height     int
	dt         float64
	background color.RGBA

	overlay  *debugui.Overlay
	backend  *debugui_ebiten.ImguiBackend
	timer    *debugui.FrameTimer
	debugKey ebiten.Key
	hasDebug bool
}

type Options struct {
	Width, Height int
	TPS           int
	Background    color.RGBA
	// DebugKey toggles the overlay. Empty disables the toggle.
	DebugKey game.Key
}

func New(manager *game.Manager, opts Options) (*Game, error) {
	g := &Game{
		manager:    manager,
		width:      opts.Width,
		height:     opts.Height,
		dt:         1.0 / float64(max(1, opts.TPS)),
		background: opts.Background,
	}
	if opts.DebugKey != "" {
		k, err := ParseKey(string(opts.DebugKey))
		if err != nil {
			return nil, fmt.Errorf("debug key: %w", err)
		}
		g.debugKey, g.hasDebug = k, true
	}
	return g, nil
}

// AttachOverlay draws the debug windows through backend. While the overlay
// owns the keyboard, input reports no keys.
func (g *Game) AttachOverlay(backend *debugui_ebiten.ImguiBackend, input *Input) *debugui.Overlay {
	g.backend = backend
	g.overlay = debugui.New(g.manager.Scheduler)
	g.timer = debugui.NewFrameTimer()
	input.Captured = func() bool {
		return g.overlay.Input().WantCaptureKeyboard
	}
	return g.overlay
}

func (g *Game) Update() error {
	if g.backend != nil {
		g.backend.BeginFrame()
		defer g.backend.EndFrame()
	}

	if g.overlay != nil && g.hasDebug && inpututil.IsKeyJustPressed(g.debugKey) {
		g.overlay.Toggle()
	}

	g.manager.Update(g.dt)

	if g.overlay != nil {
		g.overlay.Render(g.timer.GetDeltaTime())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	camera := g.manager.Camera
	for _, r := range g.manager.DrawList.Rects {
		x, y := camera.ToScreen(r.Box.X, r.Box.Y)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.Box.W), float32(r.Box.H), r.Colour, false)
	}

	ebitenutil.DebugPrint(screen, g.status())

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) status() string {
	m := g.manager
	controls := m.Controls()
	switch m.State {
	case game.StateMainMenu:
		return fmt.Sprintf("Press %s to start", controls.Start)
	case game.StatePaused:
		return fmt.Sprintf("Level %d paused, press %s to resume", m.Progress.Level, controls.Resume)
	case game.StateCompleted:
		return fmt.Sprintf("All levels complete! Press %s to play again", controls.Start)
	default:
		return fmt.Sprintf("Level %d", m.Progress.Level)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
