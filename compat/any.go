// Package compat bridges the document model and ordinary Go values.
package compat

import (
	"encoding"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/goccy/go-reflect"
	"github.com/pkg/errors"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/str"
	"github.com/oarkflow/jsondoc/value"
)

// ToAny converts v to map[string]any, []any, string, float64, bool or nil.
func ToAny(v *value.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case value.KindObject:
		m := make(map[string]any, v.AsObject().Len())
		v.AsObject().Each(func(k *str.Str, e *value.Value) bool {
			m[k.String()] = ToAny(e)
			return true
		})
		return m
	case value.KindArray:
		out := make([]any, 0, v.AsArray().Len())
		v.AsArray().Each(func(_ int, e *value.Value) bool {
			out = append(out, ToAny(e))
			return true
		})
		return out
	case value.KindString:
		return v.AsStr().String()
	case value.KindBool:
		b, _ := v.AsBool()
		return b
	case value.KindNumber:
		n, _ := v.AsNumber()
		return n
	default:
		return nil
	}
}

// FromAny builds a value tree from x. Maps need string keys; structs follow
// their json tags; time.Time becomes an RFC 3339 string; types implementing
// json.Marshaler go through the fallback encoder.
func FromAny(x any, alloc allocator.Allocator) (*value.Value, error) {
	return fromAny(x, allocator.OrDefault(alloc))
}

func fromAny(x any, alloc allocator.Allocator) (*value.Value, error) {
	switch t := x.(type) {
	case nil:
		return value.Null(), nil
	case *value.Value:
		if t == nil {
			return value.Null(), nil
		}
		return t.Copy()
	case bool:
		return value.Bool(t), nil
	case string:
		return value.StringOf(t, alloc)
	case float64:
		return value.Number(t), nil
	case float32:
		return value.Number(float64(t)), nil
	case int:
		return value.Number(float64(t)), nil
	case int64:
		return value.Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", string(t))
		}
		return value.Number(f), nil
	case time.Time:
		return value.StringOf(t.Format(time.RFC3339Nano), alloc)
	case map[string]any:
		return fromMap(t, alloc)
	case []any:
		arr, err := value.NewArray(alloc)
		if err != nil {
			return nil, err
		}
		for _, e := range t {
			if err := pushAny(arr, e, alloc); err != nil {
				arr.Free()
				return nil, err
			}
		}
		return value.FromArray(arr), nil
	case json.Marshaler:
		return fromMarshaler(t, alloc)
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return nil, errors.Wrapf(err, "marshal %T", x)
		}
		return value.StringOf(string(text), alloc)
	}
	return fromReflect(reflect.ValueOf(x), alloc)
}

func fromMap(m map[string]any, alloc allocator.Allocator) (*value.Value, error) {
	obj, err := value.NewObject(alloc)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := setAny(obj, k, m[k], alloc); err != nil {
			obj.Free()
			return nil, err
		}
	}
	return value.FromObject(obj), nil
}

func pushAny(arr *value.Array, x any, alloc allocator.Allocator) error {
	v, err := fromAny(x, alloc)
	if err != nil {
		return err
	}
	if err := arr.Push(v); err != nil {
		v.Free()
		return err
	}
	return nil
}

func setAny(obj *value.Object, key string, x any, alloc allocator.Allocator) error {
	v, err := fromAny(x, alloc)
	if err != nil {
		return errors.Wrapf(err, "key %q", key)
	}
	if err := obj.Set(key, v); err != nil {
		v.Free()
		return err
	}
	return nil
}

func fromMarshaler(m json.Marshaler, alloc allocator.Allocator) (*value.Value, error) {
	data, err := marshalFunc(m)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %T", m)
	}
	return reader.Parse(data, alloc)
}

func fromReflect(rv reflect.Value, alloc allocator.Allocator) (*value.Value, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return value.Null(), nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return fromAny(rv.Elem().Interface(), alloc)
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.Number(rv.Float()), nil
	case reflect.String:
		return value.StringOf(rv.String(), alloc)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value.Null(), nil
		}
		arr, err := value.NewArray(alloc)
		if err != nil {
			return nil, err
		}
		if err := arr.Reserve(rv.Len()); err != nil {
			arr.Free()
			return nil, err
		}
		for i := 0; i < rv.Len(); i++ {
			if err := pushAny(arr, rv.Index(i).Interface(), alloc); err != nil {
				arr.Free()
				return nil, errors.Wrapf(err, "index %d", i)
			}
		}
		return value.FromArray(arr), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return value.Null(), nil
		}
		m := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			m[k.String()] = rv.MapIndex(k).Interface()
		}
		return fromMap(m, alloc)
	case reflect.Struct:
		return fromStruct(rv, alloc)
	default:
		return nil, errors.Errorf("unsupported type %s", rv.Type())
	}
}

func fromStruct(rv reflect.Value, alloc allocator.Allocator) (*value.Value, error) {
	obj, err := value.NewObject(alloc)
	if err != nil {
		return nil, err
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, omitEmpty, skip := parseTag(field.Tag.Get("json"), field.Name)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && isEmpty(fv) {
			continue
		}
		if err := setAny(obj, name, fv.Interface(), alloc); err != nil {
			obj.Free()
			return nil, errors.Wrapf(err, "field %s", field.Name)
		}
	}
	return value.FromObject(obj), nil
}

func parseTag(tag, fieldName string) (name string, omitEmpty, skip bool) {
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = fieldName
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func isEmpty(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return rv.IsNil()
	}
	return false
}
