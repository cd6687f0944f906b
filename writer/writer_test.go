package writer

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/jsondoc/allocator"
	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/value"
)

func parse(t *testing.T, in string) *value.Value {
	t.Helper()
	v, err := reader.ParseString(in, nil, reader.WithObjectOptions(value.WithBuckets(1)))
	require.NoError(t, err)
	return v
}

func TestSerialize(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{`null`, `null`},
		{`true`, `true`},
		{`false`, `false`},
		{`42`, `42.000000`},
		{`-42.0e-2`, `-0.420000`},
		{`"say \"hi\"\n"`, `"say \"hi\"\n"`},
		{`[]`, `[]`},
		{`{}`, `{}`},
		{`[1,"a",true,null,false]`, `[1.000000, "a", true, null, false]`},
		{`{"a":[1,2,3],"b":{"c":"d"}}`, `{"a": [1.000000, 2.000000, 3.000000], "b": {"c": "d"}}`},
	} {
		t.Run(tc.in, func(t *testing.T) {
			out, err := Serialize(parse(t, tc.in), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.out, string(out))
			assert.Equal(t, byte(0), out[:len(out)+1][len(out)])
		})
	}
}

func TestShortestNumbers(t *testing.T) {
	out, err := Serialize(parse(t, `[42, 0.1, -1e-7, 1e21, 123.456]`), nil, WithNumberFormat(NumberShortest))
	require.NoError(t, err)
	assert.Equal(t, `[42, 0.1, -1e-07, 1e+21, 123.456]`, string(out))
}

func TestIndent(t *testing.T) {
	v := parse(t, `{"a":[1,{}],"b":[]}`)
	out, err := Serialize(v, nil, WithIndent("", "  "), WithNumberFormat(NumberShortest))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    {}\n  ],\n  \"b\": []\n}", string(out))

	out, err = Serialize(parse(t, `[true]`), nil, WithIndent("//", "\t"))
	require.NoError(t, err)
	assert.Equal(t, "[\n//\ttrue\n//]", string(out))
}

func TestUnsupportedNumbers(t *testing.T) {
	for _, n := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v, err := value.ArrayOf(nil, value.Number(1), value.Number(n))
		require.NoError(t, err)
		_, err = Serialize(v, nil)
		require.ErrorIs(t, err, ErrUnsupportedNumber)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{
		`{"a":[1,2,3]}`,
		`{"name": "doc", "tags": ["x", "y\\z", "\"q\""], "n": -0.5, "ok": true, "none": null, "deep": [[{"k": [{}]}]]}`,
		`"line\nbreak\u0001"`,
	} {
		v, err := reader.ParseString(in, nil)
		require.NoError(t, err)
		out, err := Serialize(v, nil)
		require.NoError(t, err)
		back, err := reader.Parse(out, nil)
		require.NoError(t, err, string(out))
		assert.True(t, v.Equals(back), "%s != %s", v, back)
	}
}

func TestSerializeAllocator(t *testing.T) {
	tr := allocator.NewTracking(nil)
	v := parse(t, `{"key": ["some", "fairly", "long", "values", "to", "spill", "over", "one", "chunk", "of", "the", "stream", "and", "then", "some", "more", "words"]}`)
	out, err := Serialize(v, tr)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Outstanding, "only the result stays allocated")
	tr.Deallocate(out)
	assert.Zero(t, tr.Outstanding)

	_, err = Serialize(v, allocator.NewArena(200))
	require.ErrorIs(t, err, allocator.ErrOutOfMemory)
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, parse(t, `{"a": [true, null]}`), nil))
	assert.Equal(t, `{"a": [true, null]}`, buf.String())
}

func BenchmarkSerialize(b *testing.B) {
	v, err := reader.ParseString(`{"key1": "value1", "key2": 123.45, "key3": true, "key4": null,
		"nested": {"arr": ["a", "b", "c"], "obj": {"inner": "value"}},
		"escaped": "Line1\nLine2\tTabbed!"}`, nil)
	if err != nil {
		b.Fatal(err)
	}
	a := allocator.NewArena(1 << 16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.Reset()
		if _, err := Serialize(v, a); err != nil {
			b.Fatal(err)
		}
	}
}
