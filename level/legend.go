package level

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Colour is an RGBA colour written in YAML as "#rrggbb" or "#rrggbbaa".
type Colour color.RGBA

func (c Colour) Color() color.RGBA { return color.RGBA(c) }

func (c *Colour) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColour(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// ParseColour parses "#rrggbb" or "#rrggbbaa".
func ParseColour(s string) (Colour, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Colour{}, fmt.Errorf("colour %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Colour{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return Colour{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// EntityKind is the prefab an entity character spawns.
type EntityKind string

const (
	EntityButton EntityKind = "button"
	EntityPlayer EntityKind = "player"
	EntityGate   EntityKind = "gate"
)

type TileSpec struct {
	Colour   Colour `yaml:"colour"`
	Collider bool   `yaml:"collider"`
}

type Palette struct {
	Background    Colour `yaml:"background"`
	Player        Colour `yaml:"player"`
	Button        Colour `yaml:"button"`
	ButtonPressed Colour `yaml:"button_pressed"`
	Gate          Colour `yaml:"gate"`
}

// Legend maps grid characters to tiles and entities.
type Legend struct {
	TileSize float64
	Colours  Palette
	tiles    map[rune]TileSpec
	entities map[rune]EntityKind
}

type legendFile struct {
	TileSize float64               `yaml:"tile_size"`
	Tiles    map[string]TileSpec   `yaml:"tiles"`
	Entities map[string]EntityKind `yaml:"entities"`
	Colours  *Palette              `yaml:"colours"`
}

var (
	darkGray = Colour{R: 80, G: 80, B: 80, A: 255}
	blue     = Colour{R: 0, G: 121, B: 241, A: 255}
	green    = Colour{R: 0, G: 228, B: 48, A: 255}
	white    = Colour{R: 255, G: 255, B: 255, A: 255}
	black    = Colour{A: 255}
)

// DefaultLegend is the legend used when no legend file is configured.
func DefaultLegend() *Legend {
	return &Legend{
		TileSize: 32,
		Colours: Palette{
			Background:    black,
			Player:        white,
			Button:        blue,
			ButtonPressed: green,
			Gate:          green,
		},
		tiles: map[rune]TileSpec{
			'X': {Colour: darkGray, Collider: true},
		},
		entities: map[rune]EntityKind{
			'X': EntityButton,
			'P': EntityPlayer,
			'G': EntityGate,
		},
	}
}

// LoadLegend decodes a YAML legend. Sections the file leaves out keep the
// values of DefaultLegend; colours are merged key by key, while a tiles or
// entities section replaces the default mapping.
func LoadLegend(r io.Reader) (*Legend, error) {
	l := DefaultLegend()
	f := legendFile{Colours: &l.Colours}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode legend: %w", err)
	}

	if f.TileSize < 0 {
		return nil, fmt.Errorf("legend: tile_size %g must be positive", f.TileSize)
	}
	if f.TileSize > 0 {
		l.TileSize = f.TileSize
	}
	if f.Tiles != nil {
		tiles, err := runeKeys(f.Tiles)
		if err != nil {
			return nil, fmt.Errorf("legend tiles: %w", err)
		}
		l.tiles = tiles
	}
	if f.Entities != nil {
		entities, err := runeKeys(f.Entities)
		if err != nil {
			return nil, fmt.Errorf("legend entities: %w", err)
		}
		for ch, kind := range entities {
			switch kind {
			case EntityButton, EntityPlayer, EntityGate:
			default:
				return nil, fmt.Errorf("legend entities: %q maps to unknown kind %q", ch, kind)
			}
		}
		l.entities = entities
	}
	return l, nil
}

func runeKeys[V any](m map[string]V) (map[rune]V, error) {
	out := make(map[rune]V, len(m))
	for k, v := range m {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("key %q must be a single character", k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		if r == '.' {
			return nil, fmt.Errorf("key %q is reserved for empty cells", k)
		}
		out[r] = v
	}
	return out, nil
}

// Tile returns the tile spec for ch. Unknown characters are not tiles.
func (l *Legend) Tile(ch rune) (TileSpec, bool) {
	spec, ok := l.tiles[ch]
	return spec, ok
}

// Entity returns the entity kind for ch.
func (l *Legend) Entity(ch rune) (EntityKind, bool) {
	kind, ok := l.entities[ch]
	return kind, ok
}
