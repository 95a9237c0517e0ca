// Package timedqueue provides the timestamp-indexed containers used by the
// presentation coordinator: a floor-matched (timestamp, value) queue for
// control entries that activate at a point in the stream, and a ring-buffer
// FIFO for frame timestamps.
package timedqueue

type entry[T any] struct {
	timestampUs int64
	value       T
}

// TimedValues is an ordered queue of (activation timestamp, value) pairs.
// Timestamps must be added in non-decreasing order; adding an earlier
// timestamp discards all buffered entries, since the stream has restarted
// from an earlier position.
type TimedValues[T any] struct {
	entries []entry[T]
}

// Add appends a value activating at timestampUs.
func (q *TimedValues[T]) Add(timestampUs int64, value T) {
	if n := len(q.entries); n > 0 && timestampUs < q.entries[n-1].timestampUs {
		q.entries = q.entries[:0]
	}
	q.entries = append(q.entries, entry[T]{timestampUs: timestampUs, value: value})
}

// PollFloor consumes every entry with an activation timestamp <= timestampUs
// and returns the value of the latest one. The second return is false when no
// entry had activated yet.
func (q *TimedValues[T]) PollFloor(timestampUs int64) (T, bool) {
	var (
		value T
		found bool
	)
	for len(q.entries) > 0 && q.entries[0].timestampUs <= timestampUs {
		value = q.entries[0].value
		q.entries = q.entries[1:]
		found = true
	}
	return value, found
}

// Clear discards all entries.
func (q *TimedValues[T]) Clear() {
	q.entries = q.entries[:0]
}

// Len returns the number of buffered entries.
func (q *TimedValues[T]) Len() int {
	return len(q.entries)
}
