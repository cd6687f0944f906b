package jsondoc

import (
	"io"

	"github.com/oarkflow/jsondoc/compat"
	"github.com/oarkflow/jsondoc/value"
	"github.com/oarkflow/jsondoc/writer"
)

// Encoder writes documents to an output stream, one per line unless an
// indent is set.
type Encoder struct {
	w       io.Writer
	alloc   Allocator
	prefix  string
	indent  string
	numbers writer.NumberFormat
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetIndent switches the encoder to pretty output. Empty strings restore the
// compact form.
func (e *Encoder) SetIndent(prefix, indent string) {
	e.prefix = prefix
	e.indent = indent
}

func (e *Encoder) SetAllocator(alloc Allocator) {
	e.alloc = alloc
}

func (e *Encoder) SetNumberFormat(f writer.NumberFormat) {
	e.numbers = f
}

// Encode writes x followed by a newline. x is either a *Value or any Go
// value FromAny accepts.
func (e *Encoder) Encode(x any) error {
	v, ok := x.(*value.Value)
	if !ok {
		var err error
		if v, err = compat.FromAny(x, e.alloc); err != nil {
			return err
		}
		defer v.Free()
	}
	opts := []writer.Option{writer.WithNumberFormat(e.numbers)}
	if e.prefix != "" || e.indent != "" {
		opts = append(opts, writer.WithIndent(e.prefix, e.indent))
	}
	if err := writer.Fprint(e.w, v, e.alloc, opts...); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "\n")
	return err
}
