// Package buffer is a resizable raw byte buffer backed by an allocator. It is
// the scratch space number formatting and tokenizing write into.
package buffer

import "github.com/oarkflow/jsondoc/allocator"

type Buffer struct {
	alloc allocator.Allocator
	data  []byte
}

// New returns a zeroed buffer of size bytes.
func New(size int, alloc allocator.Allocator) (*Buffer, error) {
	alloc = allocator.OrDefault(alloc)
	data, err := alloc.Allocate(size)
	if err != nil {
		return nil, err
	}
	return &Buffer{alloc: alloc, data: data}, nil
}

func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) Len() int { return len(b.data) }

// Resize changes the buffer length, keeping the leading bytes. On failure the
// buffer is left untouched.
func (b *Buffer) Resize(size int) error {
	data, err := b.alloc.Reallocate(b.data, size)
	if err != nil {
		return err
	}
	b.data = data
	return nil
}

// Grow makes sure the buffer holds at least size bytes, doubling so repeated
// calls stay cheap.
func (b *Buffer) Grow(size int) error {
	if size <= len(b.data) {
		return nil
	}
	n := len(b.data) * 2
	if n < size {
		n = size
	}
	return b.Resize(n)
}

func (b *Buffer) Free() {
	if b == nil || b.data == nil {
		return
	}
	b.alloc.Deallocate(b.data)
	b.data = nil
}
