// Package fake generates random documents for benchmarks and round-trip
// tests.
package fake

import (
	"math"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/value"
)

// Generator builds random value trees. Numbers carry at most two decimals so
// they survive fixed six-decimal formatting unchanged.
type Generator struct {
	f     *gofakeit.Faker
	alloc allocator.Allocator

	MaxDepth int
	MaxWidth int
}

// New returns a generator whose output is fully determined by seed.
func New(seed int64, alloc allocator.Allocator) *Generator {
	return &Generator{
		f:        gofakeit.New(seed),
		alloc:    allocator.OrDefault(alloc),
		MaxDepth: 4,
		MaxWidth: 6,
	}
}

// Value returns a random tree of any shape.
func (g *Generator) Value() (*value.Value, error) {
	return g.value(0)
}

func (g *Generator) value(depth int) (*value.Value, error) {
	kinds := 6
	if depth >= g.MaxDepth {
		kinds = 4
	}
	switch g.f.Number(0, kinds-1) {
	case 0:
		return value.Null(), nil
	case 1:
		return value.Bool(g.f.Bool()), nil
	case 2:
		return value.Number(g.number()), nil
	case 3:
		return value.StringOf(g.text(), g.alloc)
	case 4:
		return g.array(depth + 1)
	default:
		return g.object(depth + 1)
	}
}

func (g *Generator) number() float64 {
	return math.Round(g.f.Float64Range(-1e6, 1e6)*100) / 100
}

// text mixes plain words with the characters the string formatter has to
// escape.
func (g *Generator) text() string {
	switch g.f.Number(0, 4) {
	case 0:
		return g.f.Sentence(g.f.Number(1, 6))
	case 1:
		return g.f.Word() + "\n\t\"" + g.f.Word() + `\`
	case 2:
		return g.f.Email()
	case 3:
		return ""
	default:
		return g.f.Word()
	}
}

func (g *Generator) array(depth int) (*value.Value, error) {
	arr, err := value.NewArray(g.alloc)
	if err != nil {
		return nil, err
	}
	for i, n := 0, g.f.Number(0, g.MaxWidth); i < n; i++ {
		v, err := g.value(depth)
		if err == nil {
			err = arr.Push(v)
			if err != nil {
				v.Free()
			}
		}
		if err != nil {
			arr.Free()
			return nil, err
		}
	}
	return value.FromArray(arr), nil
}

func (g *Generator) object(depth int) (*value.Value, error) {
	obj, err := value.NewObject(g.alloc)
	if err != nil {
		return nil, err
	}
	for i, n := 0, g.f.Number(0, g.MaxWidth); i < n; i++ {
		v, err := g.value(depth)
		if err == nil {
			err = obj.Set(g.f.Word(), v)
			if err != nil {
				v.Free()
			}
		}
		if err != nil {
			obj.Free()
			return nil, err
		}
	}
	return value.FromObject(obj), nil
}

// Record returns an object shaped like a typical API payload: identity
// fields, a nested address and a list of tagged items.
func (g *Generator) Record() (*value.Value, error) {
	items := make([]*value.Value, 0, g.MaxWidth)
	for i, n := 0, g.f.Number(1, g.MaxWidth); i < n; i++ {
		name, err := value.StringOf(g.f.Word(), g.alloc)
		if err != nil {
			freeAll(items)
			return nil, err
		}
		item, err := value.ObjectOf(g.alloc,
			"name", name,
			"price", value.Number(math.Round(g.f.Float64Range(1, 100)*100)/100),
			"in_stock", value.Bool(g.f.Bool()),
		)
		if err != nil {
			freeAll(items)
			return nil, err
		}
		items = append(items, item)
	}
	list, err := value.ArrayOf(g.alloc, items...)
	if err != nil {
		return nil, err
	}

	fields := []struct{ key, text string }{
		{"id", g.f.UUID()},
		{"name", g.f.Name()},
		{"email", g.f.Email()},
		{"city", g.f.City()},
	}
	kvs := make([]any, 0, 2*len(fields)+4)
	for _, field := range fields {
		s, err := value.StringOf(field.text, g.alloc)
		if err != nil {
			list.Free()
			freePairs(kvs)
			return nil, err
		}
		kvs = append(kvs, field.key, s)
	}
	kvs = append(kvs, "age", value.Number(float64(g.f.Number(18, 90))), "items", list)
	return value.ObjectOf(g.alloc, kvs...)
}

func freeAll(vals []*value.Value) {
	for _, v := range vals {
		v.Free()
	}
}

func freePairs(kvs []any) {
	for i := 1; i < len(kvs); i += 2 {
		kvs[i].(*value.Value).Free()
	}
}
