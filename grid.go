package gale

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Pair is a candidate body pair produced by the broad phase. Order is not
// significant to the narrow phase, which re-derives it from shape types.
type Pair struct {
	A, B BodyHandle
}

type cellKey struct {
	I, J, K int32
}

// forwardStencil holds 13 of the 26 neighbor offsets around a cell — the
// "forward half" of the full 3x3x3 stencil. Combined with intra-cell
// pairing, visiting only the forward half guarantees every unordered
// neighbor pair is emitted exactly once.
var forwardStencil = func() []cellKey {
	var offsets []cellKey
	for dz := int32(-1); dz <= 1; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				forward := dz > 0 || (dz == 0 && dy > 0) || (dz == 0 && dy == 0 && dx > 0)
				if forward {
					offsets = append(offsets, cellKey{I: dx, J: dy, K: dz})
				}
			}
		}
	}
	return offsets
}()

// UniformGrid is the broad-phase hash grid: bodies are bucketed by the
// cell their center lies in, rebuilt from scratch every substep.
type UniformGrid struct {
	cellSize float32
	cells    map[cellKey][]BodyHandle
}

// NewUniformGrid creates a grid with the given (positive) cell size.
func NewUniformGrid(cellSize float32) *UniformGrid {
	return &UniformGrid{cellSize: cellSize, cells: make(map[cellKey][]BodyHandle)}
}

// CellSize returns the grid's configured cell size.
func (g *UniformGrid) CellSize() float32 { return g.cellSize }

// Clear empties the grid, keeping the allocated buckets for reuse.
func (g *UniformGrid) Clear() {
	for k := range g.cells {
		delete(g.cells, k)
	}
}

// Insert adds a body to the cell containing its position.
func (g *UniformGrid) Insert(handle BodyHandle, position mgl32.Vec3) {
	key := g.cellOf(position)
	g.cells[key] = append(g.cells[key], handle)
}

// occupiedCells returns every non-empty cell's coordinates, sorted by
// K then J then I so callers (Pairs, debug-draw) get a deterministic
// order independent of Go's randomized map iteration.
func (g *UniformGrid) occupiedCells() []cellKey {
	keys := make([]cellKey, 0, len(g.cells))
	for k := range g.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].K != keys[j].K {
			return keys[i].K < keys[j].K
		}
		if keys[i].J != keys[j].J {
			return keys[i].J < keys[j].J
		}
		return keys[i].I < keys[j].I
	})
	return keys
}

func (g *UniformGrid) cellOf(position mgl32.Vec3) cellKey {
	return cellKey{
		I: int32(math.Floor(float64(position.X() / g.cellSize))),
		J: int32(math.Floor(float64(position.Y() / g.cellSize))),
		K: int32(math.Floor(float64(position.Z() / g.cellSize))),
	}
}

// Pairs enumerates candidate body pairs: every unordered intra-cell pair,
// plus the cross product of each occupied cell with its occupied
// forward-stencil neighbors. Occupied cells are visited in sorted
// coordinate order so that results are deterministic across runs.
func (g *UniformGrid) Pairs() []Pair {
	keys := g.occupiedCells()

	var pairs []Pair
	for _, key := range keys {
		members := g.cells[key]
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				pairs = append(pairs, Pair{A: members[i], B: members[j]})
			}
		}

		for _, offset := range forwardStencil {
			neighborKey := cellKey{I: key.I + offset.I, J: key.J + offset.J, K: key.K + offset.K}
			neighbors, ok := g.cells[neighborKey]
			if !ok {
				continue
			}
			for _, a := range members {
				for _, b := range neighbors {
					pairs = append(pairs, Pair{A: a, B: b})
				}
			}
		}
	}
	return pairs
}
