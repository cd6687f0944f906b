package compat

import (
	"encoding"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/oarkflow/date"
	"github.com/pkg/errors"

	"github.com/oarkflow/jsondoc/value"
	"github.com/oarkflow/jsondoc/writer"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	timeType            = reflect.TypeOf(time.Time{})
	durationType        = reflect.TypeOf(time.Duration(0))
	valueType           = reflect.TypeOf((*value.Value)(nil))
)

// Decode stores v into the Go value dst points to. Struct fields are matched
// by their json tag or name, time.Time fields accept any layout date.Parse
// understands, and time.Duration fields accept numbers of nanoseconds or
// duration strings. Object members without a matching field are ignored.
func Decode(v *value.Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("decode destination must be a non-nil pointer")
	}
	return decodeInto("$", v, rv.Elem())
}

func mismatch(path string, want string, v *value.Value) error {
	return errors.Errorf("%s: expected %s, got %s", path, want, v.Kind())
}

func decodeInto(path string, v *value.Value, rv reflect.Value) error {
	if rv.Type() == valueType {
		c, err := v.Copy()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(c))
		return nil
	}
	if rv.Kind() != reflect.Ptr && rv.CanAddr() && rv.Type() != timeType {
		pv := rv.Addr()
		if pv.Type().Implements(jsonUnmarshalerType) {
			data, err := writer.Serialize(v, nil, writer.WithNumberFormat(writer.NumberShortest))
			if err != nil {
				return errors.Wrap(err, path)
			}
			return errors.Wrap(pv.Interface().(json.Unmarshaler).UnmarshalJSON(data), path)
		}
		if v.IsString() && pv.Type().Implements(textUnmarshalerType) {
			return errors.Wrap(pv.Interface().(encoding.TextUnmarshaler).UnmarshalText(v.AsStr().Bytes()), path)
		}
	}

	switch rv.Kind() {
	case reflect.Ptr:
		if v.IsNull() {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeInto(path, v, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fallback(path, v, rv)
		}
		if x := ToAny(v); x != nil {
			rv.Set(reflect.ValueOf(x))
		} else {
			rv.Set(reflect.Zero(rv.Type()))
		}
		return nil
	case reflect.Struct:
		if rv.Type() == timeType {
			return decodeTime(path, v, rv)
		}
		return decodeStruct(path, v, rv)
	case reflect.Slice:
		if v.IsNull() {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if !v.IsArray() {
			return mismatch(path, "array", v)
		}
		arr := v.AsArray()
		out := reflect.MakeSlice(rv.Type(), arr.Len(), arr.Len())
		for i := 0; i < arr.Len(); i++ {
			if err := decodeInto(path+"["+strconv.Itoa(i)+"]", arr.At(i), out.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if !v.IsArray() {
			return mismatch(path, "array", v)
		}
		arr := v.AsArray()
		for i := 0; i < rv.Len(); i++ {
			if i >= arr.Len() {
				rv.Index(i).Set(reflect.Zero(rv.Type().Elem()))
				continue
			}
			if err := decodeInto(path+"["+strconv.Itoa(i)+"]", arr.At(i), rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		return decodeMap(path, v, rv)
	case reflect.String:
		if !v.IsString() {
			return mismatch(path, "string", v)
		}
		rv.SetString(v.AsStr().String())
		return nil
	case reflect.Bool:
		b, ok := v.AsBool()
		if !ok {
			return mismatch(path, "bool", v)
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Type() == durationType && v.IsString() {
			d, err := time.ParseDuration(v.AsStr().String())
			if err != nil {
				return errors.Wrap(err, path)
			}
			rv.SetInt(int64(d))
			return nil
		}
		n, ok := v.AsNumber()
		if !ok {
			return mismatch(path, "number", v)
		}
		if n != math.Trunc(n) || rv.OverflowInt(int64(n)) {
			return errors.Errorf("%s: %v does not fit in %s", path, n, rv.Type())
		}
		rv.SetInt(int64(n))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := v.AsNumber()
		if !ok {
			return mismatch(path, "number", v)
		}
		if n < 0 || n != math.Trunc(n) || rv.OverflowUint(uint64(n)) {
			return errors.Errorf("%s: %v does not fit in %s", path, n, rv.Type())
		}
		rv.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		n, ok := v.AsNumber()
		if !ok {
			return mismatch(path, "number", v)
		}
		if rv.OverflowFloat(n) {
			return errors.Errorf("%s: %v does not fit in %s", path, n, rv.Type())
		}
		rv.SetFloat(n)
		return nil
	default:
		return fallback(path, v, rv)
	}
}

// fallback hands types the model cannot fill to the fallback decoder.
func fallback(path string, v *value.Value, rv reflect.Value) error {
	if !rv.CanAddr() {
		return errors.Errorf("%s: cannot decode into %s", path, rv.Type())
	}
	data, err := writer.Serialize(v, nil, writer.WithNumberFormat(writer.NumberShortest))
	if err != nil {
		return errors.Wrap(err, path)
	}
	return errors.Wrap(unmarshalFunc(data, rv.Addr().Interface()), path)
}

func decodeTime(path string, v *value.Value, rv reflect.Value) error {
	if !v.IsString() {
		return mismatch(path, "date string", v)
	}
	t, err := date.Parse(v.AsStr().String())
	if err != nil {
		return errors.Wrapf(err, "%s: failed to parse time", path)
	}
	rv.Set(reflect.ValueOf(t))
	return nil
}

func decodeStruct(path string, v *value.Value, rv reflect.Value) error {
	if v.IsNull() {
		return nil
	}
	if !v.IsObject() {
		return mismatch(path, "object", v)
	}
	obj := v.AsObject()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, _, skip := parseTag(field.Tag.Get("json"), field.Name)
		if skip {
			continue
		}
		fv := obj.Get(name)
		if fv == nil {
			continue
		}
		if err := decodeInto(path+"."+name, fv, rv.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(path string, v *value.Value, rv reflect.Value) error {
	if v.IsNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	if !v.IsObject() {
		return mismatch(path, "object", v)
	}
	kt := rv.Type().Key()
	if kt.Kind() != reflect.String {
		return errors.Errorf("%s: unsupported map key type %s", path, kt)
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(rv.Type(), v.AsObject().Len()))
	}
	et := rv.Type().Elem()
	for e := v.AsObject().Begin(); !e.IsEnd(); e = e.Next() {
		key := e.Key().String()
		elem := reflect.New(et).Elem()
		if err := decodeInto(path+"."+key, e.Value(), elem); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(kt), elem)
	}
	return nil
}
