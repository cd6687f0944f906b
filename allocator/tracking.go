package allocator

import "fmt"

// Tracking wraps an allocator and records how it is used. FailAfter, when
// positive, makes every request after that many successful ones fail with
// ErrOutOfMemory, which is how callers exercise their out-of-memory paths.
type Tracking struct {
	Next      Allocator
	FailAfter int

	Allocations   int
	Reallocations int
	Deallocations int
	LastSize      int
	Outstanding   int
}

// NewTracking wraps next, or the default allocator when next is nil.
func NewTracking(next Allocator) *Tracking {
	return &Tracking{Next: OrDefault(next)}
}

func (t *Tracking) exhausted() bool {
	return t.FailAfter > 0 && t.Allocations+t.Reallocations >= t.FailAfter
}

func (t *Tracking) Allocate(size int) ([]byte, error) {
	t.LastSize = size
	if t.exhausted() {
		return nil, fmt.Errorf("%w: tracking limit of %d requests reached", ErrOutOfMemory, t.FailAfter)
	}
	block, err := t.Next.Allocate(size)
	if err != nil {
		return nil, err
	}
	t.Allocations++
	t.Outstanding++
	return block, nil
}

func (t *Tracking) Reallocate(block []byte, size int) ([]byte, error) {
	t.LastSize = size
	if t.exhausted() {
		return nil, fmt.Errorf("%w: tracking limit of %d requests reached", ErrOutOfMemory, t.FailAfter)
	}
	grown, err := t.Next.Reallocate(block, size)
	if err != nil {
		return nil, err
	}
	t.Reallocations++
	return grown, nil
}

func (t *Tracking) Deallocate(block []byte) {
	t.Deallocations++
	t.Outstanding--
	t.Next.Deallocate(block)
}
