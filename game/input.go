package game

// Key names a keyboard key the way ebiten spells it, e.g. "A", "ArrowLeft"
// or "Space".
type Key string

// Input is polled by systems once per tick.
type Input interface {
	// IsKeyDown reports whether key is held.
	IsKeyDown(key Key) bool
	// IsKeyPressed reports whether key went down this tick.
	IsKeyPressed(key Key) bool
}

func anyDown(in Input, keys []Key) bool {
	for _, k := range keys {
		if in.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// NoInput never reports a key.
type NoInput struct{}

func (NoInput) IsKeyDown(Key) bool    { return false }
func (NoInput) IsKeyPressed(Key) bool { return false }
