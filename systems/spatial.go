package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Neighbor holds a nearby creature with its precomputed squared distance.
type Neighbor struct {
	ID     uint32
	Pos    r3.Vec
	DistSq float64
}

type gridEntry struct {
	id  uint32
	pos r3.Vec
}

// SpatialGrid buckets points on the stage floor into square cells.
// The stage is bounded, so positions outside it land in the edge cells.
type SpatialGrid struct {
	cellSize float64
	minX     float64
	minZ     float64
	cols     int
	rows     int
	cells    [][]gridEntry
}

// NewSpatialGrid creates a grid covering the XZ extent of stage.
func NewSpatialGrid(stage r3.Box, cellSize float64) *SpatialGrid {
	size := stage.Size()
	cols := int(size.X/cellSize) + 1
	rows := int(size.Z/cellSize) + 1

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		minX:     stage.Min.X,
		minZ:     stage.Min.Z,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear empties every cell, keeping capacity.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds id at pos.
func (g *SpatialGrid) Insert(id uint32, pos r3.Vec) {
	col, row := g.cellCoords(pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], gridEntry{id: id, pos: pos})
}

// QueryRadiusInto appends every entry within radius of pos to dst.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, pos r3.Vec, radius float64) []Neighbor {
	c0, r0 := g.cellCoords(r3.Vec{X: pos.X - radius, Z: pos.Z - radius})
	c1, r1 := g.cellCoords(r3.Vec{X: pos.X + radius, Z: pos.Z + radius})
	radiusSq := radius * radius

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, en := range g.cells[row*g.cols+col] {
				d := distSq(en.pos, pos)
				if d <= radiusSq {
					dst = append(dst, Neighbor{ID: en.id, Pos: en.pos, DistSq: d})
				}
			}
		}
	}
	return dst
}

// Nearest returns the closest entry within radius of pos.
// Ties go to the lower id so the answer does not depend on cell order.
func (g *SpatialGrid) Nearest(pos r3.Vec, radius float64) (uint32, bool) {
	var (
		bestID uint32
		found  bool
	)
	best := math.Inf(1)
	for _, n := range g.QueryRadiusInto(nil, pos, radius) {
		if n.DistSq < best || (n.DistSq == best && n.ID < bestID) {
			best = n.DistSq
			bestID = n.ID
			found = true
		}
	}
	return bestID, found
}

// cellCoords returns the clamped cell column and row for pos.
func (g *SpatialGrid) cellCoords(pos r3.Vec) (col, row int) {
	col = int(math.Floor((pos.X - g.minX) / g.cellSize))
	row = int(math.Floor((pos.Z - g.minZ) / g.cellSize))
	return clampCell(col, g.cols), clampCell(row, g.rows)
}

func clampCell(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
