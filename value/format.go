package value

import (
	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/stream"
)

// Format writes v as compact JSON text: ", " between elements, ": " after
// keys, and numbers with six decimals.
func (v *Value) Format(s *stream.Stream) error {
	switch v.kind {
	case KindObject:
		return v.obj.Format(s)
	case KindArray:
		return v.arr.Format(s)
	case KindString:
		return v.s.Format(s)
	case KindBool:
		if v.b {
			_, err := s.WriteString("true")
			return err
		}
		_, err := s.WriteString("false")
		return err
	case KindNumber:
		if !representable(v.num) {
			return ErrUnsupportedNumber
		}
		return s.WriteFloat(v.num)
	default:
		_, err := s.WriteString("null")
		return err
	}
}

// Format writes a as [v0, v1, ...].
func (a *Array) Format(s *stream.Stream) error {
	if err := s.WriteByte('['); err != nil {
		return err
	}
	for i, v := range a.slots[:a.size] {
		if i > 0 {
			if _, err := s.WriteString(", "); err != nil {
				return err
			}
		}
		if err := v.Format(s); err != nil {
			return err
		}
	}
	return s.WriteByte(']')
}

// Format writes o as {"k": v, ...} in iteration order.
func (o *Object) Format(s *stream.Stream) error {
	if err := s.WriteByte('{'); err != nil {
		return err
	}
	for e := o.Begin(); !e.IsEnd(); e = e.Next() {
		if err := e.key.Format(s); err != nil {
			return err
		}
		if _, err := s.WriteString(": "); err != nil {
			return err
		}
		if err := e.val.Format(s); err != nil {
			return err
		}
		if next := e.Next(); !next.IsEnd() {
			if _, err := s.WriteString(", "); err != nil {
				return err
			}
		}
	}
	return s.WriteByte('}')
}

// String renders v with the default allocator, for debugging and tests.
func (v *Value) String() string {
	s, err := stream.New(allocator.Default())
	if err != nil {
		return "<" + err.Error() + ">"
	}
	defer s.Free()
	if err := v.Format(s); err != nil {
		return "<" + err.Error() + ">"
	}
	return s.String()
}
