package performance

type sample interface {
	~int64 | ~uint64 | ~float64
}

// ring keeps the most recent samples up to a fixed size, overwriting the oldest
type ring[T sample] struct {
	buf  []T
	next int
	full bool
}

func newRing[T sample](size int) *ring[T] {
	if size < 1 {
		size = 1
	}
	return &ring[T]{buf: make([]T, size)}
}

func (r *ring[T]) push(v T) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring[T]) len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// values returns the held samples, oldest first
func (r *ring[T]) values() []T {
	if !r.full {
		out := make([]T, r.next)
		copy(out, r.buf[:r.next])
		return out
	}
	out := make([]T, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	out = append(out, r.buf[:r.next]...)
	return out
}

// mean is 0 for an empty ring
func (r *ring[T]) mean() float64 {
	n := r.len()
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range r.buf[:n] {
		sum += float64(v)
	}
	return sum / float64(n)
}

// all reports whether the ring holds at least min samples and every one satisfies pred
func (r *ring[T]) all(min int, pred func(T) bool) bool {
	n := r.len()
	if n < min || n == 0 {
		return false
	}
	for _, v := range r.buf[:n] {
		if !pred(v) {
			return false
		}
	}
	return true
}

func (r *ring[T]) reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.next = 0
	r.full = false
}
