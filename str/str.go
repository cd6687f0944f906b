// Package str implements an owned, mutable byte string whose storage comes
// from an allocator.
package str

import (
	"bytes"

	"github.com/oarkflow/jsondoc/allocator"
)

// Str keeps its bytes NUL-terminated: data[size] is always 0, and data may be
// longer than size+1 after PopBack.
type Str struct {
	alloc allocator.Allocator
	data  []byte
	size  int
}

// New returns an empty string.
func New(alloc allocator.Allocator) (*Str, error) {
	return newSized(0, alloc)
}

// NewOfSize returns a string of n copies of fill.
func NewOfSize(n int, fill byte, alloc allocator.Allocator) (*Str, error) {
	s, err := newSized(n, alloc)
	if err != nil {
		return nil, err
	}
	if fill != 0 {
		for i := range s.data[:n] {
			s.data[i] = fill
		}
	}
	return s, nil
}

// NewFromRaw copies text into a new string.
func NewFromRaw(text string, alloc allocator.Allocator) (*Str, error) {
	s, err := newSized(len(text), alloc)
	if err != nil {
		return nil, err
	}
	copy(s.data, text)
	return s, nil
}

// NewFromBytes copies b into a new string.
func NewFromBytes(b []byte, alloc allocator.Allocator) (*Str, error) {
	s, err := newSized(len(b), alloc)
	if err != nil {
		return nil, err
	}
	copy(s.data, b)
	return s, nil
}

func newSized(n int, alloc allocator.Allocator) (*Str, error) {
	alloc = allocator.OrDefault(alloc)
	data, err := alloc.Allocate(n + 1)
	if err != nil {
		return nil, err
	}
	data[n] = 0
	return &Str{alloc: alloc, data: data, size: n}, nil
}

// Copy returns a deep copy that uses the same allocator.
func (s *Str) Copy() (*Str, error) {
	return NewFromBytes(s.Bytes(), s.alloc)
}

// Free releases the string's storage. Free on a nil or freed string is a
// no-op.
func (s *Str) Free() {
	if s == nil || s.data == nil {
		return
	}
	s.alloc.Deallocate(s.data)
	s.data = nil
	s.size = 0
}

// Allocator returns the allocator the string was created with.
func (s *Str) Allocator() allocator.Allocator { return s.alloc }

func (s *Str) Len() int { return s.size }

// Bytes aliases the string contents. It is only valid until the next
// mutation.
func (s *Str) Bytes() []byte { return s.data[:s.size] }

// Raw returns the contents including the trailing NUL.
func (s *Str) Raw() []byte { return s.data[:s.size+1] }

func (s *Str) String() string { return string(s.data[:s.size]) }

// At returns the byte at i and panics when i is out of range.
func (s *Str) At(i int) byte {
	if i < 0 || i >= s.size {
		panic("str: index out of range")
	}
	return s.data[i]
}

func (s *Str) Front() byte {
	if s.size == 0 {
		panic("str: front of empty string")
	}
	return s.data[0]
}

func (s *Str) Back() byte {
	if s.size == 0 {
		panic("str: back of empty string")
	}
	return s.data[s.size-1]
}

// Append appends other. On failure s is unchanged.
func (s *Str) Append(other *Str) error {
	return s.AppendBytes(other.Bytes())
}

func (s *Str) AppendRaw(text string) error {
	if err := s.grow(len(text)); err != nil {
		return err
	}
	copy(s.data[s.size:], text)
	s.size += len(text)
	s.data[s.size] = 0
	return nil
}

func (s *Str) AppendBytes(b []byte) error {
	if err := s.grow(len(b)); err != nil {
		return err
	}
	copy(s.data[s.size:], b)
	s.size += len(b)
	s.data[s.size] = 0
	return nil
}

func (s *Str) AppendByte(c byte) error {
	if err := s.grow(1); err != nil {
		return err
	}
	s.data[s.size] = c
	s.size++
	s.data[s.size] = 0
	return nil
}

func (s *Str) grow(n int) error {
	if s.size+n+1 <= len(s.data) {
		return nil
	}
	data, err := s.alloc.Reallocate(s.data, s.size+n+1)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// PopBack drops the last byte and panics on an empty string.
func (s *Str) PopBack() {
	if s.size == 0 {
		panic("str: pop back on empty string")
	}
	s.size--
	s.data[s.size] = 0
}

// Clear empties the string and shrinks its storage to the terminator.
func (s *Str) Clear() {
	if data, err := s.alloc.Reallocate(s.data, 1); err == nil {
		s.data = data
	}
	s.size = 0
	s.data[0] = 0
}

// Substr returns a copy of the half-open range [begin, end). It panics unless
// begin < Len(), end <= Len() and begin <= end.
func (s *Str) Substr(begin, end int) (*Str, error) {
	if begin < 0 || begin >= s.size || end > s.size || end < begin {
		panic("str: substring range out of bounds")
	}
	return NewFromBytes(s.data[begin:end], s.alloc)
}

// Concat returns a new string holding a followed by b, using a's allocator.
func Concat(a, b *Str) (*Str, error) {
	s, err := newSized(a.size+b.size, a.alloc)
	if err != nil {
		return nil, err
	}
	copy(s.data, a.Bytes())
	copy(s.data[a.size:], b.Bytes())
	return s, nil
}

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Compare orders s and other lexicographically by byte.
func (s *Str) Compare(other *Str) Ordering {
	return Ordering(bytes.Compare(s.Bytes(), other.Bytes()))
}

func (s *Str) CompareRaw(text string) Ordering {
	return Ordering(bytes.Compare(s.Bytes(), []byte(text)))
}

func (s *Str) Equals(other *Str) bool {
	return bytes.Equal(s.Bytes(), other.Bytes())
}

func (s *Str) EqualsRaw(text string) bool {
	return string(s.Bytes()) == text
}

func (s *Str) Contains(other *Str) bool {
	return bytes.Contains(s.Bytes(), other.Bytes())
}

func (s *Str) ContainsRaw(text string) bool {
	return bytes.Contains(s.Bytes(), []byte(text))
}
