// Package spatial provides a uniform-grid spatial hash for broad-phase
// proximity queries and the axis-aligned box tests used to resolve
// collisions between the candidates it returns.
package spatial

import (
	"math"

	"github.com/kamstrup/intmap"
)

// Hash buckets values by the integer-floored coordinate they were inserted
// at. The hash knows nothing about world units: callers scale coordinates
// into cell space before inserting or querying.
//
// Cell coordinates are limited to [MinCell, MaxCell] on each axis.
// Coordinates beyond that are clamped into the edge cells, and query windows
// stop at the edge instead of wrapping around.
//
// A value may be present in several cells at once. The hash does not track
// where a value was inserted, so a value that moves has to be swept out of
// its old neighbourhood with RemoveInRange and inserted again.
type Hash[T intmap.IntKey] struct {
	cells *intmap.Map[uint64, *intmap.Map[T, struct{}]]
}

// Stats describes the occupancy of a Hash.
type Stats struct {
	Cells        int
	Entries      int
	MaxOccupancy int
}

// New creates an empty spatial hash.
func New[T intmap.IntKey]() *Hash[T] {
	return &Hash[T]{
		cells: intmap.New[uint64, *intmap.Map[T, struct{}]](256),
	}
}

const (
	MinCell = math.MinInt32
	MaxCell = math.MaxInt32
)

// CellOf returns the cell coordinate containing (x, y), clamped to
// [MinCell, MaxCell]. NaN maps to MinCell.
func CellOf(x, y float64) (int, int) {
	return clampCell(x), clampCell(y)
}

func clampCell(f float64) int {
	f = math.Floor(f)
	switch {
	case !(f >= MinCell):
		return MinCell
	case f > MaxCell:
		return MaxCell
	}
	return int(f)
}

// span returns the inclusive cell range [c-padding, c+padding] cut to the
// valid cell range.
func span(c, padding int) (lo, hi int) {
	lo, hi = MinCell, MaxCell
	if int64(c)-MinCell > int64(padding) {
		lo = c - padding
	}
	if MaxCell-int64(c) > int64(padding) {
		hi = c + padding
	}
	return lo, hi
}

func cellKey(cx, cy int) uint64 {
	return uint64(uint32(int32(cx)))<<32 | uint64(uint32(int32(cy)))
}

// Insert adds v to the cell containing (x, y). Inserting the same value into
// the same cell twice is a no-op.
func (h *Hash[T]) Insert(x, y float64, v T) {
	cx, cy := CellOf(x, y)
	key := cellKey(cx, cy)

	cell, ok := h.cells.Get(key)
	if !ok {
		cell = intmap.New[T, struct{}](4)
		h.cells.Put(key, cell)
	}
	cell.Put(v, struct{}{})
}

// Remove deletes v from the single cell containing (x, y) and reports
// whether it was there.
func (h *Hash[T]) Remove(x, y float64, v T) bool {
	cx, cy := CellOf(x, y)
	return h.removeFromCell(cellKey(cx, cy), v)
}

func (h *Hash[T]) removeFromCell(key uint64, v T) bool {
	cell, ok := h.cells.Get(key)
	if !ok {
		return false
	}
	if _, found := cell.Get(v); !found {
		return false
	}
	cell.Del(v)
	if cell.Len() == 0 {
		h.cells.Del(key)
	}
	return true
}

// RemoveInRange deletes v from every cell in the window of half-width
// padding around the cell containing (x, y).
func (h *Hash[T]) RemoveInRange(x, y float64, padding int, v T) {
	h.window(x, y, padding, func(key uint64) {
		h.removeFromCell(key, v)
	})
}

// InRange returns every value found in the window of half-width padding
// around the cell containing (x, y). A value stored in several cells of
// the window is returned once per cell.
func (h *Hash[T]) InRange(x, y float64, padding int) []T {
	return h.AppendInRange(nil, x, y, padding)
}

// AppendInRange is InRange appending into dst, so hot loops can reuse a
// buffer between queries.
func (h *Hash[T]) AppendInRange(dst []T, x, y float64, padding int) []T {
	h.window(x, y, padding, func(key uint64) {
		cell, ok := h.cells.Get(key)
		if !ok {
			return
		}
		cell.ForEach(func(v T, _ struct{}) bool {
			dst = append(dst, v)
			return true
		})
	})
	return dst
}

// window visits the cells from floor(c)-padding inclusive to
// floor(c)+padding+1 exclusive on each axis.
func (h *Hash[T]) window(x, y float64, padding int, visit func(key uint64)) {
	if padding < 0 {
		padding = 0
	}
	cx, cy := CellOf(x, y)
	x0, x1 := span(cx, padding)
	y0, y1 := span(cy, padding)
	for sx := int64(x0); sx <= int64(x1); sx++ {
		for sy := int64(y0); sy <= int64(y1); sy++ {
			visit(cellKey(int(sx), int(sy)))
		}
	}
}

// Clear drops every cell.
func (h *Hash[T]) Clear() {
	h.cells.Clear()
}

// Len returns the number of occupied cells.
func (h *Hash[T]) Len() int {
	return h.cells.Len()
}

// Stats walks every cell and reports how full the hash is.
func (h *Hash[T]) Stats() Stats {
	var stats Stats
	h.cells.ForEach(func(_ uint64, cell *intmap.Map[T, struct{}]) bool {
		n := cell.Len()
		stats.Cells++
		stats.Entries += n
		if n > stats.MaxOccupancy {
			stats.MaxOccupancy = n
		}
		return true
	})
	return stats
}
