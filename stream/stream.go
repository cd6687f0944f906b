// Package stream implements a write-only byte stream made of fixed-size
// chunks, so text can be emitted one token at a time without reallocating
// everything written so far.
package stream

import (
	"io"
	"strconv"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/buffer"
	"github.com/oarkflow/jsondoc/str"
)

const (
	DefaultChunkSize = 128
	scratchSize      = 64
)

type chunk struct {
	data []byte
	used int
	next *chunk
}

type Stream struct {
	alloc     allocator.Allocator
	chunkSize int
	head      *chunk
	tail      *chunk
	size      int
	scratch   *buffer.Buffer
}

// New returns a stream with the default chunk size.
func New(alloc allocator.Allocator) (*Stream, error) {
	return NewSize(DefaultChunkSize, alloc)
}

// NewSize returns a stream whose chunks hold chunkSize bytes each.
func NewSize(chunkSize int, alloc allocator.Allocator) (*Stream, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := &Stream{alloc: allocator.OrDefault(alloc), chunkSize: chunkSize}
	if err := s.addChunk(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stream) addChunk() error {
	data, err := s.alloc.Allocate(s.chunkSize)
	if err != nil {
		return err
	}
	c := &chunk{data: data}
	if s.tail == nil {
		s.head = c
	} else {
		s.tail.next = c
	}
	s.tail = c
	return nil
}

// Len is the number of bytes written so far.
func (s *Stream) Len() int { return s.size }

// Write appends p, spilling into new chunks as the current one fills up.
func (s *Stream) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		if s.tail.used == len(s.tail.data) {
			if err := s.addChunk(); err != nil {
				return written, err
			}
		}
		n := copy(s.tail.data[s.tail.used:], p[written:])
		s.tail.used += n
		s.size += n
		written += n
	}
	return written, nil
}

func (s *Stream) WriteString(text string) (int, error) {
	written := 0
	for written < len(text) {
		if s.tail.used == len(s.tail.data) {
			if err := s.addChunk(); err != nil {
				return written, err
			}
		}
		n := copy(s.tail.data[s.tail.used:], text[written:])
		s.tail.used += n
		s.size += n
		written += n
	}
	return written, nil
}

func (s *Stream) WriteByte(c byte) error {
	if s.tail.used == len(s.tail.data) {
		if err := s.addChunk(); err != nil {
			return err
		}
	}
	s.tail.data[s.tail.used] = c
	s.tail.used++
	s.size++
	return nil
}

// WriteFloat writes f with six digits after the decimal point.
func (s *Stream) WriteFloat(f float64) error {
	return s.WriteFloatFormat(f, 'f', 6)
}

// WriteFloatFormat writes f the way strconv.FormatFloat(f, fmt, prec, 64)
// renders it, using the stream's scratch buffer.
func (s *Stream) WriteFloatFormat(f float64, fmt byte, prec int) error {
	if s.scratch == nil {
		scratch, err := buffer.New(scratchSize, s.alloc)
		if err != nil {
			return err
		}
		s.scratch = scratch
	}
	b := s.scratch.Bytes()
	out := strconv.AppendFloat(b[:0:len(b)], f, fmt, prec, 64)
	if len(out) > len(b) {
		// the formatted number spilled onto the heap; size the scratch
		// buffer for it so the next one fits
		if err := s.scratch.Grow(len(out)); err != nil {
			return err
		}
	}
	_, err := s.Write(out)
	return err
}

// WriteTo copies the stream contents to w without materialising them.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for c := s.head; c != nil; c = c.next {
		if c.used == 0 {
			continue
		}
		n, err := w.Write(c.data[:c.used])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Bytes concatenates the chunks into one allocator block holding Len bytes
// followed by a NUL terminator, and returns it without the terminator. The
// caller releases it with the stream's allocator.
func (s *Stream) Bytes() ([]byte, error) {
	out, err := s.alloc.Allocate(s.size + 1)
	if err != nil {
		return nil, err
	}
	s.copyTo(out)
	out[s.size] = 0
	return out[:s.size], nil
}

// Str concatenates the chunks into a new string.
func (s *Stream) Str() (*str.Str, error) {
	out, err := str.NewOfSize(s.size, 0, s.alloc)
	if err != nil {
		return nil, err
	}
	s.copyTo(out.Bytes())
	return out, nil
}

func (s *Stream) String() string {
	out := make([]byte, s.size)
	s.copyTo(out)
	return string(out)
}

func (s *Stream) copyTo(out []byte) {
	off := 0
	for c := s.head; c != nil; c = c.next {
		off += copy(out[off:], c.data[:c.used])
	}
}

// Free releases every chunk and the scratch buffer.
func (s *Stream) Free() {
	if s == nil {
		return
	}
	for c := s.head; c != nil; {
		next := c.next
		s.alloc.Deallocate(c.data)
		c.next = nil
		c = next
	}
	s.head, s.tail = nil, nil
	s.size = 0
	s.scratch.Free()
	s.scratch = nil
}
