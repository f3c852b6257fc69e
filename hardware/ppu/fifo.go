package ppu

// fifo is the queue of pixels between the fetcher and the screen. Entries are
// two-bit colour indices into the background palette. The fetcher only ever
// pushes a whole tile row and only when the queue is empty, so the backing
// array never needs to be larger than one row
type fifo struct {
	entries [8]uint8
	head    int
	count   int
}

func (q *fifo) empty() bool {
	return q.count == 0
}

func (q *fifo) clear() {
	q.head = 0
	q.count = 0
}

// pushRow adds all eight pixels of a tile row in one go. The caller must have
// checked that the queue is empty
func (q *fifo) pushRow(row [8]uint8) {
	q.entries = row
	q.head = 0
	q.count = len(row)
}

func (q *fifo) pop() (uint8, bool) {
	if q.count == 0 {
		return 0, false
	}
	v := q.entries[q.head]
	q.head++
	q.count--
	return v, true
}
