package components

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewBinaryGrid(t *testing.T) {
	values := [][]bool{
		{true, false, false},
		{false, true, true},
	}
	g, err := NewBinaryGrid(values)
	if err != nil {
		t.Fatalf("NewBinaryGrid failed: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", g.Rows(), g.Cols())
	}
	if !g.At(Coord{Row: 0, Col: 0}) || g.At(Coord{Row: 0, Col: 1}) || !g.At(Coord{Row: 1, Col: 2}) {
		t.Error("cells not copied in row-major order")
	}
	if g.Foreground() != 3 {
		t.Errorf("Foreground() = %d, want 3", g.Foreground())
	}

	// Input is copied.
	values[0][1] = true
	if g.At(Coord{Row: 0, Col: 1}) {
		t.Error("grid changed after mutating the input slice")
	}
}

func TestNewBinaryGrid_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values [][]bool
	}{
		{"nil", nil},
		{"no rows", [][]bool{}},
		{"empty first row", [][]bool{{}}},
		{"ragged", [][]bool{{true, false}, {true}}},
		{"ragged longer", [][]bool{{true}, {true, false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBinaryGrid(tt.values)
			if !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("got %v, want ErrInvalidGrid", err)
			}
		})
	}
}

func TestNewEmptyBinaryGrid(t *testing.T) {
	g, err := NewEmptyBinaryGrid(2, 3)
	if err != nil {
		t.Fatalf("NewEmptyBinaryGrid failed: %v", err)
	}
	if g.Foreground() != 0 {
		t.Errorf("new grid has %d foreground cells", g.Foreground())
	}
	g.Set(Coord{Row: 1, Col: 2}, true)
	if !g.At(Coord{Row: 1, Col: 2}) {
		t.Error("Set did not mark the cell")
	}

	g.Set(Coord{Row: 1, Col: 2}, false)
	if g.Foreground() != 0 {
		t.Error("Set(false) did not clear the cell")
	}

	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		if _, err := NewEmptyBinaryGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("NewEmptyBinaryGrid(%d,%d): got %v, want ErrInvalidGrid", dims[0], dims[1], err)
		}
	}
}

func TestLabelGrid_Mark(t *testing.T) {
	lg := newLabelGrid(2, 2)
	lg.mark(Coord{Row: 0, Col: 1}, 3)

	if lg.At(Coord{Row: 0, Col: 1}) != 3 {
		t.Errorf("At(0,1) = %d, want 3", lg.At(Coord{Row: 0, Col: 1}))
	}
	if !lg.Visited(Coord{Row: 0, Col: 1}) || lg.Visited(Coord{Row: 0, Col: 0}) {
		t.Error("Visited does not reflect marks")
	}
	if got := labelRows(lg); !reflect.DeepEqual(got, [][]int{{0, 3}, {0, 0}}) {
		t.Errorf("labels = %v, want [[0 3] [0 0]]", got)
	}
}
