package components

// Coord addresses a single grid cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// neighborOffsets lists the eight relative positions in a fixed order:
// row offset -1..1 outer, column offset -1..1 inner, (0,0) skipped.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the 8-connected neighbors of c that lie inside a grid of
// rows×cols cells. The input cell itself is never included. The order is
// fixed (see neighborOffsets), so repeated calls yield identical slices.
//
// Complexity: O(1).
func Neighbors(c Coord, rows, cols int) []Coord {
	return appendNeighbors(make([]Coord, 0, len(neighborOffsets)), c, rows, cols)
}

// appendNeighbors is the allocation-free form of Neighbors used by the
// labeler's inner loop.
func appendNeighbors(dst []Coord, c Coord, rows, cols int) []Coord {
	for _, d := range neighborOffsets {
		r, col := c.Row+d[0], c.Col+d[1]
		if r < 0 || col < 0 || r >= rows || col >= cols {
			continue
		}
		dst = append(dst, Coord{Row: r, Col: col})
	}
	return dst
}
