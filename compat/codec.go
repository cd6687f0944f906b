package compat

import "github.com/goccy/go-json"

// MarshalFunc encodes Go values the document model has no direct mapping
// for, such as types implementing json.Marshaler.
type MarshalFunc func(any) ([]byte, error)

// UnmarshalFunc decodes into Go values the document model cannot fill
// directly.
type UnmarshalFunc func([]byte, any) error

var (
	marshalFunc   MarshalFunc   = json.Marshal
	unmarshalFunc UnmarshalFunc = json.Unmarshal
)

// SetMarshaler replaces the fallback encoder. nil restores the default.
func SetMarshaler(m MarshalFunc) {
	if m == nil {
		m = json.Marshal
	}
	marshalFunc = m
}

// SetUnmarshaler replaces the fallback decoder. nil restores the default.
func SetUnmarshaler(u UnmarshalFunc) {
	if u == nil {
		u = json.Unmarshal
	}
	unmarshalFunc = u
}
