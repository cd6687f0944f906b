package compat

import (
	"github.com/oarkflow/expr"
	"github.com/pkg/errors"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/value"
)

// Eval evaluates an expr expression against v. Members of an object are
// visible by name; any other document is bound to the name "value".
func Eval(expression string, v *value.Value) (any, error) {
	env, ok := ToAny(v).(map[string]any)
	if !ok {
		env = map[string]any{"value": ToAny(v)}
	}
	out, err := expr.Eval(expression, env)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluate %q", expression)
	}
	return out, nil
}

// EvalValue is Eval with the result converted back into a value.
func EvalValue(expression string, v *value.Value, alloc allocator.Allocator) (*value.Value, error) {
	out, err := Eval(expression, v)
	if err != nil {
		return nil, err
	}
	return FromAny(out, alloc)
}
