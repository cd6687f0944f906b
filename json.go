// Package jsondoc parses, builds and serializes JSON documents whose memory
// comes from a pluggable allocator.
//
// The subpackages hold the pieces: allocator, str, stream, value, reader and
// writer. This package ties them together for the common cases.
package jsondoc

import (
	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/value"
	"github.com/oarkflow/jsondoc/writer"
)

type (
	Allocator = allocator.Allocator
	Value     = value.Value
	Array     = value.Array
	Object    = value.Object
)

var (
	ErrOutOfMemory       = allocator.ErrOutOfMemory
	ErrSyntax            = reader.ErrSyntax
	ErrTooDeep           = reader.ErrTooDeep
	ErrTrailingData      = reader.ErrTrailingData
	ErrUnsupportedNumber = value.ErrUnsupportedNumber
)

// Parse reads one document from data. A nil allocator means the default one.
func Parse(data []byte, alloc Allocator, opts ...reader.Option) (*Value, error) {
	return reader.Parse(data, alloc, opts...)
}

func ParseString(text string, alloc Allocator, opts ...reader.Option) (*Value, error) {
	return reader.ParseString(text, alloc, opts...)
}

// Serialize renders v in the compact form.
func Serialize(v *Value, alloc Allocator, opts ...writer.Option) ([]byte, error) {
	return writer.Serialize(v, alloc, opts...)
}

// Print writes v and a newline to standard output.
func Print(v *Value, alloc Allocator, opts ...writer.Option) error {
	return writer.Print(v, alloc, opts...)
}

// Valid reports whether data holds exactly one well-formed document.
func Valid(data []byte) bool {
	return reader.Valid(data)
}

func DefaultAllocator() Allocator {
	return allocator.Default()
}

// NewArenaAllocator returns a bump allocator over a pool of size bytes.
// Everything allocated from it is released at once by FreeArenaAllocator.
func NewArenaAllocator(size int) *allocator.Arena {
	return allocator.NewArena(size)
}

func FreeArenaAllocator(a *allocator.Arena) {
	if a != nil {
		a.Free()
	}
}
