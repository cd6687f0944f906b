package value

import (
	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/str"
)

// BuildArray returns an array holding vals in order. The array takes
// ownership of vals; on failure they are all freed.
func BuildArray(alloc allocator.Allocator, vals ...*Value) (*Array, error) {
	a, err := NewArray(alloc)
	if err == nil {
		err = a.Reserve(len(vals))
	}
	if err != nil {
		a.Free()
		freeAll(vals)
		return nil, err
	}
	for i, v := range vals {
		if err := a.Push(v); err != nil {
			a.Free()
			freeAll(vals[i:])
			return nil, err
		}
	}
	return a, nil
}

// BuildObject returns an object from alternating keys and values. Keys are
// strings or *str.Str, values are *Value. The object takes ownership of the
// values; on failure they are all freed. An odd argument count or a key of
// another type panics.
func BuildObject(alloc allocator.Allocator, kvs ...any) (*Object, error) {
	if len(kvs)%2 != 0 {
		panic("value: BuildObject needs an even number of arguments")
	}
	for i := 0; i < len(kvs); i += 2 {
		switch kvs[i].(type) {
		case string, *str.Str:
		default:
			panic("value: BuildObject keys must be string or *str.Str")
		}
		if _, ok := kvs[i+1].(*Value); !ok {
			panic("value: BuildObject values must be *Value")
		}
	}
	o, err := NewObject(alloc)
	if err != nil {
		freePairs(kvs)
		return nil, err
	}
	for i := 0; i < len(kvs); i += 2 {
		v := kvs[i+1].(*Value)
		switch k := kvs[i].(type) {
		case string:
			err = o.Set(k, v)
		case *str.Str:
			err = o.SetStr(k, v)
		}
		if err != nil {
			o.Free()
			freePairs(kvs[i:])
			return nil, err
		}
	}
	return o, nil
}

// ArrayOf is BuildArray wrapped in a value.
func ArrayOf(alloc allocator.Allocator, vals ...*Value) (*Value, error) {
	a, err := BuildArray(alloc, vals...)
	if err != nil {
		return nil, err
	}
	return FromArray(a), nil
}

// ObjectOf is BuildObject wrapped in a value.
func ObjectOf(alloc allocator.Allocator, kvs ...any) (*Value, error) {
	o, err := BuildObject(alloc, kvs...)
	if err != nil {
		return nil, err
	}
	return FromObject(o), nil
}

func freeAll(vals []*Value) {
	for _, v := range vals {
		v.Free()
	}
}

func freePairs(kvs []any) {
	for i := 1; i < len(kvs); i += 2 {
		kvs[i].(*Value).Free()
	}
}
