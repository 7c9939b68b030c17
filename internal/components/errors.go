package components

import "errors"

var (
	// ErrInvalidGrid indicates an empty grid, rows of differing lengths, or
	// a cell slice whose length does not match the declared dimensions.
	ErrInvalidGrid = errors.New("components: invalid grid")
	// ErrEmptyQueue indicates Dequeue was called on an empty work queue.
	ErrEmptyQueue = errors.New("components: dequeue from empty queue")
)
