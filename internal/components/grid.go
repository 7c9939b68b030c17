package components

import "fmt"

// BinaryGrid is a rectangular foreground/background grid stored row-major.
//
// A BinaryGrid is the labeler's only input. Dimensions are validated once at
// construction; afterwards every accessor assumes in-bounds coordinates.
type BinaryGrid struct {
	rows, cols int
	cells      []bool
}

// NewBinaryGrid builds a grid from a slice of equally long rows. The input is
// copied, so later changes to values do not affect the grid.
//
// Returns ErrInvalidGrid if values has no rows, the first row has no cells,
// or any row length differs from the first.
func NewBinaryGrid(values [][]bool) (*BinaryGrid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and one column", ErrInvalidGrid)
	}
	rows, cols := len(values), len(values[0])
	cells := make([]bool, 0, rows*cols)
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), cols)
		}
		cells = append(cells, row...)
	}
	return &BinaryGrid{rows: rows, cols: cols, cells: cells}, nil
}

// NewEmptyBinaryGrid returns an all-background grid of rows×cols cells.
func NewEmptyBinaryGrid(rows, cols int) (*BinaryGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidGrid, rows, cols)
	}
	return &BinaryGrid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}, nil
}

// Rows returns the size of the first axis.
func (g *BinaryGrid) Rows() int { return g.rows }

// Cols returns the size of the second axis.
func (g *BinaryGrid) Cols() int { return g.cols }

// At reports whether the cell at c is foreground.
// c must be in bounds.
func (g *BinaryGrid) At(c Coord) bool {
	return g.cells[g.index(c)]
}

// Set marks the cell at c as foreground (true) or background (false).
// c must be in bounds.
func (g *BinaryGrid) Set(c Coord, fg bool) {
	g.cells[g.index(c)] = fg
}

// Foreground counts the foreground cells.
func (g *BinaryGrid) Foreground() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

func (g *BinaryGrid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// LabelGrid holds the per-cell outcome of a labeling pass.
//
// A zero value means the cell is background and was never visited. A positive
// value is the identifier of the component the cell belongs to.
type LabelGrid struct {
	rows, cols int
	labels     []int
}

func newLabelGrid(rows, cols int) *LabelGrid {
	return &LabelGrid{rows: rows, cols: cols, labels: make([]int, rows*cols)}
}

// Rows returns the size of the first axis.
func (g *LabelGrid) Rows() int { return g.rows }

// Cols returns the size of the second axis.
func (g *LabelGrid) Cols() int { return g.cols }

// At returns the component identifier stored at c, or 0 for background.
// c must be in bounds.
func (g *LabelGrid) At(c Coord) int {
	return g.labels[c.Row*g.cols+c.Col]
}

// Visited reports whether the labeler claimed the cell at c.
func (g *LabelGrid) Visited(c Coord) bool {
	return g.At(c) != 0
}

func (g *LabelGrid) mark(c Coord, id int) {
	g.labels[c.Row*g.cols+c.Col] = id
}
