// Package ebiten runs the game in an Ebiten window: it adapts the keyboard
// to game.Input and draws the draw list through the camera.
package ebiten

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tilegate/game"
)

var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// ParseKey resolves a key name such as "A", "ArrowLeft" or "space".
func ParseKey(name string) (ebiten.Key, error) {
	k, ok := keysByName[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

// Input reads the keyboard through ebiten. Unknown key names never report
// as pressed.
type Input struct {
	// Captured reports whether another consumer, such as a debug overlay,
	// owns the keyboard this frame.
	Captured func() bool

	keys map[game.Key]ebiten.Key
}

// NewInput resolves every key the controls name.
func NewInput(controls game.Controls, extra ...game.Key) (*Input, error) {
	in := &Input{keys: make(map[game.Key]ebiten.Key)}

	names := []game.Key{controls.Interact, controls.Start, controls.Pause, controls.Resume}
	for _, group := range [][]game.Key{controls.Left, controls.Right, controls.Up, controls.Down, extra} {
		names = append(names, group...)
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		k, err := ParseKey(string(name))
		if err != nil {
			return nil, err
		}
		in.keys[name] = k
	}
	return in, nil
}

func (in *Input) lookup(name game.Key) (ebiten.Key, bool) {
	if in.Captured != nil && in.Captured() {
		return 0, false
	}
	k, ok := in.keys[name]
	return k, ok
}

func (in *Input) IsKeyDown(name game.Key) bool {
	k, ok := in.lookup(name)
	return ok && ebiten.IsKeyPressed(k)
}

func (in *Input) IsKeyPressed(name game.Key) bool {
	k, ok := in.lookup(name)
	return ok && inpututil.IsKeyJustPressed(k)
}
