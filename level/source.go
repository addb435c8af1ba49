// Package level reads level layouts: a tile grid and an entity grid per
// level, plus a YAML legend mapping their characters to game objects.
package level

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
)

// ErrNotFound reports that a level does not exist, which the game treats as
// the end of the level sequence.
var ErrNotFound = fmt.Errorf("level not found: %w", fs.ErrNotExist)

const (
	TilesFile    = "tiles.txt"
	EntitiesFile = "entities.txt"
)

type Level struct {
	Number   int
	Tiles    Grid
	Entities Grid
}

// Source loads levels by number.
type Source interface {
	Load(n int) (*Level, error)
}

// DirSource reads level n from <n>/tiles.txt and <n>/entities.txt.
type DirSource struct {
	fsys fs.FS
}

func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

func (s *DirSource) Load(n int) (*Level, error) {
	dir := strconv.Itoa(n)

	tiles, err := s.readGrid(n, path.Join(dir, TilesFile))
	if err != nil {
		return nil, err
	}
	entities, err := s.readGrid(n, path.Join(dir, EntitiesFile))
	if err != nil {
		return nil, err
	}
	return &Level{Number: n, Tiles: tiles, Entities: entities}, nil
}

func (s *DirSource) readGrid(n int, name string) (Grid, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Grid{}, fmt.Errorf("level %d: %w", n, ErrNotFound)
	}
	if err != nil {
		return Grid{}, fmt.Errorf("level %d: read %s: %w", n, name, err)
	}
	return ParseGrid(string(data)), nil
}
