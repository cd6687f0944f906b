package jsondoc_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/jsondoc"
	"github.com/oarkflow/jsondoc/fake"
	"github.com/oarkflow/jsondoc/writer"
)

func TestRoundTripGenerated(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := fake.New(seed, nil)
		v, err := g.Value()
		require.NoError(t, err)

		for _, f := range []writer.NumberFormat{writer.NumberFixed, writer.NumberShortest} {
			text, err := jsondoc.Serialize(v, nil, writer.WithNumberFormat(f))
			require.NoError(t, err)
			back, err := jsondoc.Parse(text, nil)
			require.NoError(t, err, "seed %d: %s", seed, text)
			assert.True(t, v.Equals(back), "seed %d: %s", seed, text)
			back.Free()
		}
		v.Free()
	}
}

func TestRoundTripArena(t *testing.T) {
	arena := jsondoc.NewArenaAllocator(1 << 20)
	defer jsondoc.FreeArenaAllocator(arena)

	v, err := fake.New(3, arena).Record()
	require.NoError(t, err)
	text, err := jsondoc.Serialize(v, arena)
	require.NoError(t, err)
	back, err := jsondoc.Parse(text, arena)
	require.NoError(t, err)
	assert.True(t, v.Equals(back))
}

func TestScenarios(t *testing.T) {
	v, err := jsondoc.ParseString(`{"k1":"v1","k1":"v2"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, v.AsObject().Len())
	assert.Equal(t, "v2", v.Get("k1").AsStr().String())
	v.Free()

	for _, bad := range []string{`[1,2,`, `[1,2,]`, `"unterminated`} {
		v, err := jsondoc.ParseString(bad, nil)
		assert.ErrorIs(t, err, jsondoc.ErrSyntax, bad)
		assert.Nil(t, v)
	}

	v, err = jsondoc.ParseString(`{"a":[1,2,3]}`, nil)
	require.NoError(t, err)
	text, err := jsondoc.Serialize(v, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"a": [1.000000, 2.000000, 3.000000]}`, string(text))
	back, err := jsondoc.Parse(text, nil)
	require.NoError(t, err)
	assert.True(t, v.Equals(back))
}

func TestValid(t *testing.T) {
	assert.True(t, jsondoc.Valid([]byte(`{"name": "John", "age": 30}`)))
	assert.True(t, jsondoc.Valid([]byte(` 42 `)))
	assert.False(t, jsondoc.Valid([]byte(`{name: "John"}`)))
	assert.False(t, jsondoc.Valid(nil))
	assert.False(t, jsondoc.Valid([]byte(`{} {}`)))
}

type order struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
	Total float64  `json:"total"`
	Note  string   `json:"note,omitempty"`
}

func TestMarshalUnmarshal(t *testing.T) {
	in := order{ID: "a-1", Items: []string{"pen", "ink"}, Total: 12.5}
	data, err := jsondoc.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"id": "a-1", "items": ["pen", "ink"], "total": 12.5}`, string(data))

	var out order
	require.NoError(t, jsondoc.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	err = jsondoc.Unmarshal([]byte(`{"id": `), &out)
	assert.ErrorIs(t, err, jsondoc.ErrSyntax)
	assert.Error(t, jsondoc.Unmarshal(data, out))
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := jsondoc.NewEncoder(&buf)
	enc.SetNumberFormat(writer.NumberShortest)
	require.NoError(t, enc.Encode(map[string]any{"b": 2, "a": []any{true, nil}}))

	v, err := jsondoc.ParseString(`[1]`, nil)
	require.NoError(t, err)
	defer v.Free()
	enc.SetIndent("", "  ")
	require.NoError(t, enc.Encode(v))

	assert.Equal(t, "{\"a\": [true, null], \"b\": 2}\n[\n  1\n]\n", buf.String())
	assert.Error(t, enc.Encode(make(chan int)))
}

func TestDecoder(t *testing.T) {
	dec := jsondoc.NewDecoder(strings.NewReader(`{"id": "x", "total": 3} [1, 2]
"tail"`))
	var o order
	require.True(t, dec.More())
	require.NoError(t, dec.DecodeInto(&o))
	assert.Equal(t, order{ID: "x", Total: 3}, o)

	v, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, 2, v.AsArray().Len())
	v.Free()

	v, err = dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "tail", v.AsStr().String())
	v.Free()

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func BenchmarkValid(b *testing.B) {
	tests := []string{
		`{"name": "John", "age": 30, "city": "New York"}`,
		`[{"name": "John"}, {"name": "Jane"}]`,
		`{name: "John", age: 30, city: "New York"}`,
		``,
		`"name": "John", "age": 30, "city": "New York"}`,
	}

	for _, test := range tests {
		data := []byte(test)
		b.Run(test, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				jsondoc.Valid(data)
			}
		})
	}
}
