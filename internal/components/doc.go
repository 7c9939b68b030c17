// Package components labels 8-connected foreground regions in a binary grid.
//
// The labeler scans the grid in row-major order. Every foreground cell that
// has not been visited yet seeds a new component, which is grown breadth-first
// with a FIFO work queue until no unvisited foreground neighbor remains. Each
// finished component is recorded with a 1-based identifier (discovery order)
// and its pixel count.
//
// # Coordinate System
//
// Grids are addressed by Coord{Row, Col}, both 0-based:
//   - Row: first axis, 0 <= Row < Rows()
//   - Col: second axis, 0 <= Col < Cols()
//
// When a grid is built from an image, Row is the image Y coordinate and Col
// is the image X coordinate.
//
// # Connectivity
//
// Only 8-connectivity is supported: two cells are adjacent when they differ by
// at most one in both Row and Col, so diagonal contact joins regions.
//
// # Label Grid
//
// The label grid returned with every Result has the same dimensions as the
// input. A value of 0 marks background (never visited); any positive value is
// the identifier of the component that claimed the cell. Callers that only
// need the visited flag can test Visited.
//
// # Report
//
// Report renders the textual summary consumed by downstream tools:
//
//	Connected Component 1, number of pixels = 4
//	Total number of connected components = 1
//
// # Errors
//
//   - ErrInvalidGrid: empty, ragged, or mis-sized input grids
//   - ErrEmptyQueue: Dequeue on an empty work queue (programming error)
//
// # Complexity
//
// A labeling pass is O(Rows×Cols) time and memory for the label grid, plus
// O(frontier) queue space. It is single-threaded and synchronous.
package components
