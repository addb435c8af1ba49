package ebiten

import (
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilegate/game"
	"github.com/plus3/tilegate/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	for name, want := range map[string]ebiten.Key{
		"A":         ebiten.KeyA,
		"ArrowLeft": ebiten.KeyArrowLeft,
		"space":     ebiten.KeySpace,
		"F1":        ebiten.KeyF1,
	} {
		got, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKey("Hyper")
	assert.ErrorContains(t, err, `unknown key "Hyper"`)
}

func TestNewInputResolvesControls(t *testing.T) {
	controls := game.DefaultSettings().Controls

	in, err := NewInput(controls, "F1")
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyE, in.keys["E"])
	assert.Equal(t, ebiten.KeyF1, in.keys["F1"])
	assert.Equal(t, ebiten.KeyArrowDown, in.keys["ArrowDown"])

	controls.Interact = "Nope"
	_, err = NewInput(controls)
	assert.Error(t, err)
}

func TestCapturedInputReportsNothing(t *testing.T) {
	in, err := NewInput(game.DefaultSettings().Controls)
	require.NoError(t, err)
	in.Captured = func() bool { return true }

	_, ok := in.lookup("E")
	assert.False(t, ok)

	in.Captured = nil
	_, ok = in.lookup("E")
	assert.True(t, ok)
	_, ok = in.lookup("Unbound")
	assert.False(t, ok)
}

func TestStatusFollowsState(t *testing.T) {
	manager := game.NewManager(game.Options{
		Settings: game.DefaultSettings(),
		Source:   level.NewDirSource(fstest.MapFS{}),
	})
	defer manager.Close()

	g, err := New(manager, Options{Width: 800, Height: 450, TPS: 60, DebugKey: "F1"})
	require.NoError(t, err)
	assert.Equal(t, "Press P to start", g.status())
	assert.InDelta(t, 1.0/60, g.dt, 1e-12)

	manager.SetState(game.StateCompleted)
	assert.Equal(t, "All levels complete! Press P to play again", g.status())

	_, err = New(manager, Options{DebugKey: "Hyper"})
	assert.Error(t, err)
}
