package compat

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/jsondoc/reader"
	"github.com/oarkflow/jsondoc/value"
)

type Address struct {
	City string `json:"city"`
	Zip  string `json:"zip,omitempty"`
}

type User struct {
	Name     string            `json:"name"`
	Age      int               `json:"age"`
	Score    float64           `json:"score"`
	Admin    bool              `json:"admin"`
	Tags     []string          `json:"tags"`
	Address  *Address          `json:"address"`
	Labels   map[string]string `json:"labels,omitempty"`
	Joined   time.Time         `json:"joined"`
	Timeout  time.Duration     `json:"timeout"`
	Extra    any               `json:"extra"`
	Raw      *value.Value      `json:"raw"`
	Ignored  string            `json:"-"`
	internal string
}

func parse(t *testing.T, in string) *value.Value {
	t.Helper()
	v, err := reader.ParseString(in, nil)
	require.NoError(t, err)
	return v
}

func TestToAny(t *testing.T) {
	v := parse(t, `{"a": [1, "x", true, null, {"b": -2.5}]}`)
	want := map[string]any{
		"a": []any{1.0, "x", true, nil, map[string]any{"b": -2.5}},
	}
	if diff := cmp.Diff(want, ToAny(v)); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	assert.Nil(t, ToAny(nil))
}

func TestFromAnyStruct(t *testing.T) {
	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	u := User{
		Name:     "Ada",
		Age:      36,
		Score:    9.5,
		Tags:     []string{"math", "code"},
		Address:  &Address{City: "London"},
		Joined:   joined,
		Timeout:  time.Second,
		Extra:    map[string]any{"k": []any{1, "two"}},
		Ignored:  "nope",
		internal: "hidden",
	}
	v, err := FromAny(u, nil)
	require.NoError(t, err)

	want := map[string]any{
		"name":    "Ada",
		"age":     36.0,
		"score":   9.5,
		"admin":   false,
		"tags":    []any{"math", "code"},
		"address": map[string]any{"city": "London"},
		"joined":  "2024-03-01T12:00:00Z",
		"timeout": 1e9,
		"extra":   map[string]any{"k": []any{1.0, "two"}},
		"raw":     nil,
	}
	if diff := cmp.Diff(want, ToAny(v)); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestFromAnyScalars(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, true},
		{"s", "s"},
		{int8(-3), -3.0},
		{uint16(7), 7.0},
		{float32(0.5), 0.5},
		{json.Number("12.5"), 12.5},
		{[]int{1, 2}, []any{1.0, 2.0}},
		{[2]bool{true, false}, []any{true, false}},
		{map[string]int{"a": 1}, map[string]any{"a": 1.0}},
		{(*Address)(nil), nil},
		{[]string(nil), nil},
		{value.Number(3), 3.0},
	} {
		v, err := FromAny(tc.in, nil)
		require.NoError(t, err, "%T", tc.in)
		assert.Equal(t, tc.want, ToAny(v), "%T", tc.in)
	}

	_, err := FromAny(map[int]string{1: "a"}, nil)
	require.Error(t, err)
	_, err = FromAny(make(chan int), nil)
	require.Error(t, err)
	_, err = FromAny(map[string]any{"bad": func() {}}, nil)
	require.ErrorContains(t, err, `key "bad"`)
}

type upper string

func (u upper) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(string(u)))
}

func (u *upper) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*u = upper(strings.ToLower(s))
	return nil
}

func TestMarshalerFallback(t *testing.T) {
	v, err := FromAny(map[string]any{"u": upper("shout")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "SHOUT", v.Get("u").AsStr().String())

	var out struct {
		U upper `json:"u"`
	}
	require.NoError(t, Decode(v, &out))
	assert.Equal(t, upper("shout"), out.U)

	called := false
	SetMarshaler(func(x any) ([]byte, error) {
		called = true
		return json.Marshal(x)
	})
	defer SetMarshaler(nil)
	_, err = FromAny(upper("x"), nil)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestDecodeStruct(t *testing.T) {
	v := parse(t, `{
		"name": "Ada", "age": 36, "score": 9.5, "admin": true,
		"tags": ["math", "code"],
		"address": {"city": "London", "zip": "N1"},
		"labels": {"team": "core"},
		"joined": "2024-03-01 12:00:00",
		"timeout": "1m30s",
		"extra": {"k": [1, "two"]},
		"raw": {"keep": [true]},
		"Ignored": "x",
		"unknown": 1
	}`)
	var u User
	require.NoError(t, Decode(v, &u))

	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, 36, u.Age)
	assert.Equal(t, 9.5, u.Score)
	assert.True(t, u.Admin)
	assert.Equal(t, []string{"math", "code"}, u.Tags)
	assert.Equal(t, &Address{City: "London", Zip: "N1"}, u.Address)
	assert.Equal(t, map[string]string{"team": "core"}, u.Labels)
	assert.Equal(t, 2024, u.Joined.Year())
	assert.Equal(t, time.March, u.Joined.Month())
	assert.Equal(t, 90*time.Second, u.Timeout)
	assert.Equal(t, map[string]any{"k": []any{1.0, "two"}}, u.Extra)
	assert.Empty(t, u.Ignored)
	require.NotNil(t, u.Raw)
	assert.True(t, u.Raw.Equals(parse(t, `{"keep": [true]}`)))

	// the decoded copy is independent of the document
	v.Get("raw").AsObject().Delete("keep")
	assert.True(t, u.Raw.AsObject().Has("keep"))
}

func TestDecodeErrors(t *testing.T) {
	var u User
	for _, tc := range []struct {
		in, msg string
	}{
		{`{"name": 1}`, "$.name: expected string, got number"},
		{`{"age": 1.5}`, "$.age: 1.5 does not fit in int"},
		{`{"tags": [1]}`, "$.tags[0]: expected string, got number"},
		{`{"address": {"city": false}}`, "$.address.city: expected string, got bool"},
		{`{"joined": "not a date at all"}`, "$.joined: failed to parse time"},
		{`[]`, "$: expected object, got array"},
	} {
		err := Decode(parse(t, tc.in), &u)
		require.Error(t, err, tc.in)
		assert.Contains(t, err.Error(), tc.msg)
	}

	var small struct {
		N uint8 `json:"n"`
	}
	require.Error(t, Decode(parse(t, `{"n": 300}`), &small))
	require.Error(t, Decode(parse(t, `{"n": -1}`), &small))
	require.Error(t, Decode(parse(t, `{}`), small))
}

func TestDecodeNulls(t *testing.T) {
	u := User{Address: &Address{City: "x"}, Tags: []string{"a"}, Extra: 1}
	require.NoError(t, Decode(parse(t, `{"address": null, "tags": null, "extra": null}`), &u))
	assert.Nil(t, u.Address)
	assert.Nil(t, u.Tags)
	assert.Nil(t, u.Extra)
}

func TestEval(t *testing.T) {
	v := parse(t, `{"price": 2.5, "qty": 4, "name": "widget"}`)
	out, err := Eval("price * qty", v)
	require.NoError(t, err)
	assert.EqualValues(t, 10, out)

	out, err = Eval(`name == "widget"`, v)
	require.NoError(t, err)
	assert.Equal(t, true, out)

	res, err := EvalValue("value + 1", parse(t, `41`), nil)
	require.NoError(t, err)
	assert.True(t, res.Equals(value.Number(42)))
}

func TestDocument(t *testing.T) {
	type envelope struct {
		ID   int      `json:"id"`
		Body Document `json:"body"`
	}
	in := envelope{ID: 1, Body: Document{Value: parse(t, `{"a": [1.5, "x"]}`)}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 1, "body": {"a": [1.5, "x"]}}`, string(data))

	var out envelope
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 1, out.ID)
	assert.True(t, in.Body.Value.Equals(out.Body.Value))

	data, err = json.Marshal(envelope{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 0, "body": null}`, string(data))
}
