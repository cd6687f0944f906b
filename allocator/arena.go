package allocator

import (
	"encoding/binary"
	"fmt"
)

// headerSize is the bookkeeping stored in front of every arena block: the
// block's start offset and its reserved size.
const headerSize = 16

// Arena is a bump allocator over one contiguous pool. Blocks are never
// reclaimed individually; Reset rewinds the whole pool at once.
//
// The most recently allocated block can grow in place as long as the pool
// has room behind it, which keeps append-heavy workloads such as string
// building and slot-list growth copy-free.
type Arena struct {
	pool []byte
	head int
}

// NewArena returns an arena with a pool of size bytes.
func NewArena(size int) *Arena {
	checkSize(size)
	return &Arena{pool: make([]byte, size)}
}

// Used is the number of pool bytes consumed, headers included.
func (a *Arena) Used() int { return a.head }

// Cap is the pool size.
func (a *Arena) Cap() int { return len(a.pool) }

// Available is the number of pool bytes still free.
func (a *Arena) Available() int { return len(a.pool) - a.head }

func (a *Arena) Allocate(size int) ([]byte, error) {
	checkSize(size)
	if headerSize+size > a.Available() {
		return nil, fmt.Errorf("%w: arena needs %d bytes, %d available", ErrOutOfMemory, headerSize+size, a.Available())
	}
	start := a.head + headerSize
	binary.LittleEndian.PutUint64(a.pool[a.head:], uint64(start))
	binary.LittleEndian.PutUint64(a.pool[a.head+8:], uint64(size))
	a.head = start + size
	block := a.pool[start : start+size]
	clear(block)
	return block, nil
}

func (a *Arena) Reallocate(block []byte, size int) ([]byte, error) {
	checkSize(size)
	start, reserved := a.locate(block)
	if size <= reserved {
		resized := a.pool[start : start+size]
		if size > len(block) {
			clear(resized[len(block):])
		}
		return resized, nil
	}
	if start+reserved == a.head {
		if size-reserved > a.Available() {
			return nil, fmt.Errorf("%w: arena cannot grow block by %d bytes, %d available", ErrOutOfMemory, size-reserved, a.Available())
		}
		binary.LittleEndian.PutUint64(a.pool[start-8:], uint64(size))
		a.head = start + size
		grown := a.pool[start : start+size]
		clear(grown[len(block):])
		return grown, nil
	}
	moved, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	copy(moved, block)
	return moved, nil
}

// Deallocate is a no-op: arena memory is released with Reset or Free.
func (a *Arena) Deallocate([]byte) {}

// Reset rewinds the arena, invalidating every block it handed out.
func (a *Arena) Reset() {
	a.head = 0
}

// Free releases the pool. The arena fails every later allocation.
func (a *Arena) Free() {
	a.pool = nil
	a.head = 0
}

// locate recovers a block's start offset from its capacity, which always
// runs to the end of the pool, and validates the header in front of it.
func (a *Arena) locate(block []byte) (start, reserved int) {
	start = len(a.pool) - cap(block)
	if cap(block) > len(a.pool) || start < headerSize || start > a.head {
		panic("allocator: block does not belong to this arena")
	}
	if int(binary.LittleEndian.Uint64(a.pool[start-headerSize:])) != start {
		panic("allocator: corrupted arena block header")
	}
	reserved = int(binary.LittleEndian.Uint64(a.pool[start-8:]))
	return start, reserved
}
