// Package value is the document model: a tagged Value over the six JSON
// cases, plus the Array and Object containers it owns.
//
// Ownership is a tree. A Value owns its Object, Array or string payload, a
// container owns every Value stored in it, and Free releases the whole
// subtree through the allocator each payload was created with.
package value

import (
	"errors"
	"math"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/str"
)

// ErrUnsupportedNumber is returned when formatting NaN or an infinity, which
// JSON cannot represent.
var ErrUnsupportedNumber = errors.New("value: NaN and infinities cannot be formatted")

type Kind uint8

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindBool
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value holds exactly one case at a time. The zero Value is null.
type Value struct {
	kind Kind
	obj  *Object
	arr  *Array
	s    *str.Str
	b    bool
	num  float64
}

func Null() *Value { return &Value{} }

func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

func Number(f float64) *Value { return &Value{kind: KindNumber, num: f} }

// FromStr wraps s; the value takes ownership of it.
func FromStr(s *str.Str) *Value { return &Value{kind: KindString, s: s} }

// FromArray wraps a; the value takes ownership of it.
func FromArray(a *Array) *Value { return &Value{kind: KindArray, arr: a} }

// FromObject wraps o; the value takes ownership of it.
func FromObject(o *Object) *Value { return &Value{kind: KindObject, obj: o} }

// StringOf copies text into a new string value.
func StringOf(text string, alloc allocator.Allocator) (*Value, error) {
	s, err := str.NewFromRaw(text, alloc)
	if err != nil {
		return nil, err
	}
	return FromStr(s), nil
}

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool   { return v.kind == KindNull }
func (v *Value) IsObject() bool { return v.kind == KindObject }
func (v *Value) IsArray() bool  { return v.kind == KindArray }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsNumber() bool { return v.kind == KindNumber }

// AsObject returns the object payload, or nil for any other case.
func (v *Value) AsObject() *Object { return v.obj }

// AsArray returns the array payload, or nil for any other case.
func (v *Value) AsArray() *Array { return v.arr }

// AsStr returns the string payload, or nil for any other case.
func (v *Value) AsStr() *str.Str { return v.s }

func (v *Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v *Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Reset releases the active payload and turns v into null.
func (v *Value) Reset() {
	switch v.kind {
	case KindObject:
		v.obj.Free()
	case KindArray:
		v.arr.Free()
	case KindString:
		v.s.Free()
	}
	*v = Value{}
}

// Free releases everything v owns. Free on a nil value is a no-op.
func (v *Value) Free() {
	if v == nil {
		return
	}
	v.Reset()
}

func (v *Value) MakeNull() { v.Reset() }

func (v *Value) MakeBool(b bool) {
	v.Reset()
	v.kind, v.b = KindBool, b
}

func (v *Value) MakeNumber(f float64) {
	v.Reset()
	v.kind, v.num = KindNumber, f
}

// MakeString installs s, releasing the previous payload unless it is s.
func (v *Value) MakeString(s *str.Str) {
	if v.kind == KindString && v.s == s {
		return
	}
	v.Reset()
	v.kind, v.s = KindString, s
}

func (v *Value) MakeArray(a *Array) {
	if v.kind == KindArray && v.arr == a {
		return
	}
	v.Reset()
	v.kind, v.arr = KindArray, a
}

func (v *Value) MakeObject(o *Object) {
	if v.kind == KindObject && v.obj == o {
		return
	}
	v.Reset()
	v.kind, v.obj = KindObject, o
}

// Copy deep-copies v. Payloads are copied with the allocator they were
// created with.
func (v *Value) Copy() (*Value, error) {
	switch v.kind {
	case KindObject:
		o, err := v.obj.Copy()
		if err != nil {
			return nil, err
		}
		return FromObject(o), nil
	case KindArray:
		a, err := v.arr.Copy()
		if err != nil {
			return nil, err
		}
		return FromArray(a), nil
	case KindString:
		s, err := v.s.Copy()
		if err != nil {
			return nil, err
		}
		return FromStr(s), nil
	default:
		c := *v
		return &c, nil
	}
}

// Equals reports structural equality. Values of different kinds are never
// equal; numbers compare by value.
func (v *Value) Equals(other *Value) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil || v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindObject:
		return v.obj.Equals(other.obj)
	case KindArray:
		return v.arr.Equals(other.arr)
	case KindString:
		return v.s.Equals(other.s)
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	default:
		return true
	}
}

func representable(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
