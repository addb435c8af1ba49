package game

import (
	"github.com/plus3/tilegate/config"
)

type Controls struct {
	Left, Right, Up, Down []Key
	Interact              Key
	Start, Pause, Resume  Key
}

// Settings is the slice of the configuration the systems read.
type Settings struct {
	World    config.WorldConfig
	Player   config.PlayerConfig
	Controls Controls
	// FirstLevel is loaded when play starts.
	FirstLevel int
}

func keys(names []string) []Key {
	out := make([]Key, len(names))
	for i, n := range names {
		out[i] = Key(n)
	}
	return out
}

// NewSettings extracts the game settings from cfg.
func NewSettings(cfg *config.Config) Settings {
	c := cfg.Controls
	return Settings{
		World:  cfg.World,
		Player: cfg.Player,
		Controls: Controls{
			Left:     keys(c.Left),
			Right:    keys(c.Right),
			Up:       keys(c.Up),
			Down:     keys(c.Down),
			Interact: Key(c.Interact),
			Start:    Key(c.Start),
			Pause:    Key(c.Pause),
			Resume:   Key(c.Resume),
		},
		FirstLevel: cfg.Levels.First,
	}
}

// DefaultSettings is NewSettings applied to config.Defaults.
func DefaultSettings() Settings {
	return NewSettings(config.Defaults())
}

// cell converts a pixel coordinate into spatial hash space.
func (s *Settings) cell(x, y float64) (float64, float64) {
	size := s.World.CellSize
	if size <= 0 {
		return x, y
	}
	return x / size, y / size
}
