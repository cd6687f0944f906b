// Package writer serializes value trees to JSON text through a chunked
// output stream.
package writer

import (
	"io"
	"math"
	"os"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/stream"
	"github.com/oarkflow/jsondoc/value"
)

// ErrUnsupportedNumber is returned for NaN and infinities.
var ErrUnsupportedNumber = value.ErrUnsupportedNumber

type NumberFormat uint8

const (
	// NumberFixed writes six digits after the decimal point, so 42 becomes
	// 42.000000.
	NumberFixed NumberFormat = iota
	// NumberShortest writes the fewest digits that read back as the same
	// float64.
	NumberShortest
)

type config struct {
	numbers NumberFormat
	prefix  string
	indent  string
}

type Option func(*config)

func WithNumberFormat(f NumberFormat) Option {
	return func(c *config) { c.numbers = f }
}

// WithIndent puts every element on its own line, starting with prefix and
// one indent per nesting level.
func WithIndent(prefix, indent string) Option {
	return func(c *config) { c.prefix, c.indent = prefix, indent }
}

type encoder struct {
	s     *stream.Stream
	cfg   config
	depth int
}

func newEncoder(alloc allocator.Allocator, opts []Option) (*encoder, error) {
	e := &encoder{}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	s, err := stream.New(alloc)
	if err != nil {
		return nil, err
	}
	e.s = s
	return e, nil
}

func (e *encoder) pretty() bool {
	return e.cfg.prefix != "" || e.cfg.indent != ""
}

func (e *encoder) encode(v *value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		_, err := e.s.WriteString("null")
		return err
	case value.KindBool:
		if b, _ := v.AsBool(); b {
			_, err := e.s.WriteString("true")
			return err
		}
		_, err := e.s.WriteString("false")
		return err
	case value.KindNumber:
		n, _ := v.AsNumber()
		return e.encodeNumber(n)
	case value.KindString:
		return v.AsStr().Format(e.s)
	case value.KindArray:
		return e.encodeArray(v.AsArray())
	case value.KindObject:
		return e.encodeObject(v.AsObject())
	default:
		return nil
	}
}

func (e *encoder) encodeNumber(n float64) error {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return ErrUnsupportedNumber
	}
	if e.cfg.numbers == NumberShortest {
		return e.s.WriteFloatFormat(n, 'g', -1)
	}
	return e.s.WriteFloat(n)
}

func (e *encoder) encodeArray(a *value.Array) error {
	if err := e.s.WriteByte('['); err != nil {
		return err
	}
	if a.Empty() {
		return e.s.WriteByte(']')
	}
	e.depth++
	var err error
	a.Each(func(i int, v *value.Value) bool {
		if err = e.separator(i > 0); err != nil {
			return false
		}
		err = e.encode(v)
		return err == nil
	})
	if err != nil {
		return err
	}
	e.depth--
	if err := e.newline(); err != nil {
		return err
	}
	return e.s.WriteByte(']')
}

func (e *encoder) encodeObject(o *value.Object) error {
	if err := e.s.WriteByte('{'); err != nil {
		return err
	}
	if o.Len() == 0 {
		return e.s.WriteByte('}')
	}
	e.depth++
	first := true
	for it := o.Begin(); !it.IsEnd(); it = it.Next() {
		if err := e.separator(!first); err != nil {
			return err
		}
		first = false
		if err := it.Key().Format(e.s); err != nil {
			return err
		}
		if _, err := e.s.WriteString(": "); err != nil {
			return err
		}
		if err := e.encode(it.Value()); err != nil {
			return err
		}
	}
	e.depth--
	if err := e.newline(); err != nil {
		return err
	}
	return e.s.WriteByte('}')
}

// separator writes what goes before an element: a comma for all but the
// first, then a line break when indenting or a space in compact mode.
func (e *encoder) separator(comma bool) error {
	if comma {
		if err := e.s.WriteByte(','); err != nil {
			return err
		}
		if !e.pretty() {
			return e.s.WriteByte(' ')
		}
	}
	return e.newline()
}

func (e *encoder) newline() error {
	if !e.pretty() {
		return nil
	}
	if err := e.s.WriteByte('\n'); err != nil {
		return err
	}
	if _, err := e.s.WriteString(e.cfg.prefix); err != nil {
		return err
	}
	for i := 0; i < e.depth; i++ {
		if _, err := e.s.WriteString(e.cfg.indent); err != nil {
			return err
		}
	}
	return nil
}

// Serialize renders v and returns the text in a block owned by alloc, or by
// the default allocator when alloc is nil. Release it with
// alloc.Deallocate.
func Serialize(v *value.Value, alloc allocator.Allocator, opts ...Option) ([]byte, error) {
	alloc = allocator.OrDefault(alloc)
	e, err := newEncoder(alloc, opts)
	if err != nil {
		return nil, err
	}
	defer e.s.Free()
	if err := e.encode(v); err != nil {
		return nil, err
	}
	return e.s.Bytes()
}

// Fprint renders v to w. Only the stream's chunks come from alloc.
func Fprint(w io.Writer, v *value.Value, alloc allocator.Allocator, opts ...Option) error {
	return render(w, v, alloc, false, opts)
}

// Print writes v to standard output followed by a newline.
func Print(v *value.Value, alloc allocator.Allocator, opts ...Option) error {
	return render(os.Stdout, v, alloc, true, opts)
}

func render(w io.Writer, v *value.Value, alloc allocator.Allocator, newline bool, opts []Option) error {
	e, err := newEncoder(alloc, opts)
	if err != nil {
		return err
	}
	defer e.s.Free()
	if err := e.encode(v); err != nil {
		return err
	}
	if newline {
		if err := e.s.WriteByte('\n'); err != nil {
			return err
		}
	}
	_, err = e.s.WriteTo(w)
	return err
}
