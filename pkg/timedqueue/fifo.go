package timedqueue

const minFIFOCapacity = 16

// Int64Queue is a growable ring-buffer FIFO of int64 values. It backs the
// coordinator's frame-timestamp queue and the dispatcher's pooled-image
// timestamp bookkeeping without per-element allocation.
type Int64Queue struct {
	data []int64
	head int
	size int
}

// Add appends a value at the tail.
func (q *Int64Queue) Add(v int64) {
	if q.size == len(q.data) {
		q.grow()
	}
	q.data[(q.head+q.size)%len(q.data)] = v
	q.size++
}

// Peek returns the head value without removing it. Calling Peek on an empty
// queue is a programming error.
func (q *Int64Queue) Peek() int64 {
	if q.size == 0 {
		panic("timedqueue: peek on empty queue")
	}
	return q.data[q.head]
}

// Remove removes and returns the head value. Calling Remove on an empty queue
// is a programming error.
func (q *Int64Queue) Remove() int64 {
	if q.size == 0 {
		panic("timedqueue: remove on empty queue")
	}
	v := q.data[q.head]
	q.head = (q.head + 1) % len(q.data)
	q.size--
	return v
}

// Clear discards all values. The backing array is kept for reuse.
func (q *Int64Queue) Clear() {
	q.head = 0
	q.size = 0
}

// Len returns the number of queued values.
func (q *Int64Queue) Len() int {
	return q.size
}

func (q *Int64Queue) grow() {
	capacity := len(q.data) * 2
	if capacity < minFIFOCapacity {
		capacity = minFIFOCapacity
	}
	data := make([]int64, capacity)
	for i := 0; i < q.size; i++ {
		data[i] = q.data[(q.head+i)%len(q.data)]
	}
	q.data = data
	q.head = 0
}
