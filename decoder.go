package jsondoc

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/oarkflow/jsondoc/compat"
	"github.com/oarkflow/jsondoc/reader"
)

// Decoder reads a sequence of documents from an input stream. Framing is
// left to go-json; each frame is then parsed with the allocator-backed
// reader.
type Decoder struct {
	dec   *json.Decoder
	alloc Allocator
	opts  []reader.Option
}

func NewDecoder(r io.Reader, opts ...reader.Option) *Decoder {
	return &Decoder{dec: json.NewDecoder(r), opts: opts}
}

func (d *Decoder) SetAllocator(alloc Allocator) {
	d.alloc = alloc
}

// More reports whether another document follows in the stream.
func (d *Decoder) More() bool {
	return d.dec.More()
}

// Decode returns the next document. It returns io.EOF once the stream is
// exhausted.
func (d *Decoder) Decode() (*Value, error) {
	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		return nil, err
	}
	return reader.Parse(raw, d.alloc, d.opts...)
}

// DecodeInto reads the next document and stores it in dst.
func (d *Decoder) DecodeInto(dst any) error {
	v, err := d.Decode()
	if err != nil {
		return err
	}
	defer v.Free()
	return compat.Decode(v, dst)
}
