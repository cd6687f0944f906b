package allocator

// Heap allocates from the Go heap and keeps no bookkeeping. Deallocate is a
// no-op; the garbage collector reclaims blocks once nothing references them.
type Heap struct{}

func (Heap) Allocate(size int) ([]byte, error) {
	checkSize(size)
	return make([]byte, size), nil
}

func (Heap) Reallocate(block []byte, size int) ([]byte, error) {
	checkSize(size)
	if size <= cap(block) {
		grown := block[:size]
		if size > len(block) {
			clear(grown[len(block):])
		}
		return grown, nil
	}
	grown := make([]byte, size, growCap(cap(block), size))[:size]
	copy(grown, block)
	return grown, nil
}

func (Heap) Deallocate([]byte) {}

// growCap leaves headroom so repeated appends through Reallocate stay
// amortised constant.
func growCap(old, need int) int {
	c := old * 2
	if c < need {
		c = need
	}
	return c
}
