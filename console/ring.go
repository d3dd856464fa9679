package console

// DefaultCapacity is the number of console lines kept and drawn.
const DefaultCapacity = 10

// Ring is a fixed-capacity FIFO buffer. When full, Push overwrites the oldest
// entry. Not safe for concurrent use.
type Ring[T any] struct {
	entries  []T
	capacity int
	head     int
	total    uint64
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring[T]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
	}
}

func (r *Ring[T]) Push(entry T) {
	if len(r.entries) < r.capacity {
		r.entries = append(r.entries, entry)
	} else {
		r.entries[r.head] = entry
	}
	r.head = (r.head + 1) % r.capacity
	r.total++
}

func (r *Ring[T]) Len() int      { return len(r.entries) }
func (r *Ring[T]) Cap() int      { return r.capacity }
func (r *Ring[T]) Total() uint64 { return r.total }

// All returns the entries oldest first.
func (r *Ring[T]) All() []T {
	if len(r.entries) == 0 {
		return nil
	}
	out := make([]T, 0, len(r.entries))
	if len(r.entries) < r.capacity {
		return append(out, r.entries...)
	}
	out = append(out, r.entries[r.head:]...)
	return append(out, r.entries[:r.head]...)
}

// Latest returns up to n entries, oldest first, ending with the most recent.
func (r *Ring[T]) Latest(n int) []T {
	all := r.All()
	if n < len(all) {
		return all[len(all)-n:]
	}
	return all
}

// Oldest returns the oldest entry, or false when the ring is empty.
func (r *Ring[T]) Oldest() (T, bool) {
	var zero T
	if len(r.entries) == 0 {
		return zero, false
	}
	if len(r.entries) < r.capacity {
		return r.entries[0], true
	}
	return r.entries[r.head], true
}

func (r *Ring[T]) Clear() {
	clear(r.entries)
	r.entries = r.entries[:0]
	r.head = 0
}
