// Package config loads the game configuration from a TOML file layered over
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	World    WorldConfig    `toml:"world"`
	Player   PlayerConfig   `toml:"player"`
	Controls ControlsConfig `toml:"controls"`
	Levels   LevelsConfig   `toml:"levels"`
	Logging  LoggingConfig  `toml:"logging"`
	Debug    DebugConfig    `toml:"debug"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"` // fixed simulation ticks per second
}

// WorldConfig holds distances in pixels. CellSize is the edge of one spatial
// hash cell; positions are divided by it before touching the hash.
type WorldConfig struct {
	TileSize          float64 `toml:"tile_size"`
	CellSize          float64 `toml:"cell_size"`
	CollisionRadius   float64 `toml:"collision_radius"`
	InteractionRadius float64 `toml:"interaction_radius"`
	GateRadius        float64 `toml:"gate_radius"`
	ReindexRadius     float64 `toml:"reindex_radius"`
}

// Padding converts a pixel radius into a spatial hash padding in cells.
func (w WorldConfig) Padding(radius float64) int {
	if w.CellSize <= 0 {
		return int(math.Ceil(radius))
	}
	return int(math.Ceil(radius / w.CellSize))
}

type PlayerConfig struct {
	Acceleration float64 `toml:"acceleration"` // added per tick while a key is held
	MaxSpeed     float64 `toml:"max_speed"`
	Deceleration float64 `toml:"deceleration"` // removed per tick towards zero
}

// ControlsConfig names keys as ebiten spells them ("A", "ArrowLeft",
// "Space", "F1").
type ControlsConfig struct {
	Left     []string `toml:"left"`
	Right    []string `toml:"right"`
	Up       []string `toml:"up"`
	Down     []string `toml:"down"`
	Interact string   `toml:"interact"`
	Start    string   `toml:"start"`
	Pause    string   `toml:"pause"`
	Resume   string   `toml:"resume"`
	Debug    string   `toml:"debug"`
}

type LevelsConfig struct {
	Dir    string `toml:"dir"`
	Legend string `toml:"legend"`
	First  int    `toml:"first"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"`
}

// Load reads path and overlays it on Defaults. Keys the file sets that no
// field knows about are reported as an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over Defaults and validates the result.
func Parse(text string) (*Config, error) {
	cfg := Defaults()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps %d must be positive", c.Window.TPS))
	}
	if c.World.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("world.tile_size %g must be positive", c.World.TileSize))
	}
	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("world.cell_size %g must be positive", c.World.CellSize))
	}
	if c.Player.MaxSpeed < 0 || c.Player.Acceleration < 0 || c.Player.Deceleration < 0 {
		errs = append(errs, errors.New("player speeds must not be negative"))
	}
	if c.Levels.First < 1 {
		errs = append(errs, fmt.Errorf("levels.first %d must be at least 1", c.Levels.First))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Defaults returns the configuration the game ships with.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 450,
			Title:  "tilegate",
			TPS:    60,
		},
		World: WorldConfig{
			TileSize:          32,
			CellSize:          32,
			CollisionRadius:   32,
			InteractionRadius: 32,
			GateRadius:        32,
			ReindexRadius:     64,
		},
		Player: PlayerConfig{
			Acceleration: 30,
			MaxSpeed:     300,
			Deceleration: 10,
		},
		Controls: ControlsConfig{
			Left:     []string{"A", "ArrowLeft"},
			Right:    []string{"D", "ArrowRight"},
			Up:       []string{"W", "ArrowUp"},
			Down:     []string{"S", "ArrowDown"},
			Interact: "E",
			Start:    "P",
			Pause:    "Space",
			Resume:   "L",
			Debug:    "F1",
		},
		Levels: LevelsConfig{
			Dir:    "assets/levels",
			Legend: "assets/levels/legend.yaml",
			First:  1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
