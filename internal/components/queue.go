package components

// Queue is a FIFO of pending coordinates for one breadth-first expansion.
//
// Items are appended to a slice and consumed through a head index. Once the
// queue drains the backing array is rewound, so a Queue reused across
// components keeps its capacity. Queue is not safe for concurrent use.
type Queue struct {
	items []Coord
	head  int
}

// Enqueue appends c to the back of the queue.
func (q *Queue) Enqueue(c Coord) {
	q.items = append(q.items, c)
}

// Dequeue removes and returns the coordinate at the front of the queue.
// It returns ErrEmptyQueue when there is nothing to remove.
func (q *Queue) Dequeue() (Coord, error) {
	if q.head >= len(q.items) {
		return Coord{}, ErrEmptyQueue
	}
	c := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return c, nil
}

// Len reports the number of pending coordinates.
func (q *Queue) Len() int {
	return len(q.items) - q.head
}

// Empty reports whether the queue holds no pending coordinates.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}
