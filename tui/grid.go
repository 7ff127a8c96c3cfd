package tui

// hudRows is the number of terminal rows reserved below the stage.
const hudRows = 2

// Grid maps the square stage onto terminal cells. Each cell is two columns
// wide so emoji glyphs line up.
type Grid struct {
	Cols, Rows int
	StageSize  float64
}

// NewGrid fits the stage into a terminal of w by h columns and rows.
func NewGrid(w, h int, stageSize float64) Grid {
	return Grid{
		Cols:      max(w/2, 1),
		Rows:      max(h-hudRows, 1),
		StageSize: stageSize,
	}
}

// WorldToCell returns the cell containing ground-plane point (x, z).
func (g Grid) WorldToCell(x, z float64) (cx, cy int) {
	cx = clampIndex(int(x/g.StageSize*float64(g.Cols)), g.Cols)
	cy = clampIndex(int(z/g.StageSize*float64(g.Rows)), g.Rows)
	return cx, cy
}

// CellToWorld returns the ground-plane center of a cell.
func (g Grid) CellToWorld(cx, cy int) (x, z float64) {
	x = (float64(cx) + 0.5) * g.StageSize / float64(g.Cols)
	z = (float64(cy) + 0.5) * g.StageSize / float64(g.Rows)
	return x, z
}

// ScreenToCell converts a terminal position to a cell.
// ok is false outside the stage area.
func (g Grid) ScreenToCell(sx, sy int) (cx, cy int, ok bool) {
	cx, cy = sx/2, sy
	ok = sx >= 0 && cx < g.Cols && sy >= 0 && cy < g.Rows
	return cx, cy, ok
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
