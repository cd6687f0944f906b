package str

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/jsondoc/allocator"
)

func mustRaw(t *testing.T, text string) *Str {
	t.Helper()
	s, err := NewFromRaw(text, nil)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.Equal(t, []byte{0}, s.Raw())

	s, err = NewOfSize(3, 'x', nil)
	require.NoError(t, err)
	assert.Equal(t, "xxx", s.String())
	assert.Equal(t, []byte("xxx\x00"), s.Raw())

	s = mustRaw(t, "hello")
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, byte('h'), s.Front())
	assert.Equal(t, byte('o'), s.Back())
	assert.Equal(t, byte('l'), s.At(2))
}

func TestContractViolations(t *testing.T) {
	empty, err := New(nil)
	require.NoError(t, err)
	s := mustRaw(t, "abc")

	assert.Panics(t, func() { empty.Front() })
	assert.Panics(t, func() { empty.Back() })
	assert.Panics(t, func() { empty.PopBack() })
	assert.Panics(t, func() { s.At(3) })
	assert.Panics(t, func() { s.At(-1) })
	assert.Panics(t, func() { _, _ = s.Substr(3, 3) })
	assert.Panics(t, func() { _, _ = s.Substr(1, 4) })
	assert.Panics(t, func() { _, _ = s.Substr(2, 1) })
}

func TestAppend(t *testing.T) {
	tr := allocator.NewTracking(nil)
	s, err := NewFromRaw("foo", tr)
	require.NoError(t, err)

	require.NoError(t, s.AppendRaw("bar"))
	require.NoError(t, s.Append(mustRaw(t, "baz")))
	require.NoError(t, s.AppendByte('!'))
	require.NoError(t, s.AppendBytes([]byte("?")))
	assert.Equal(t, "foobarbaz!?", s.String())
	assert.Equal(t, byte(0), s.Raw()[s.Len()])
	assert.Equal(t, 4, tr.Reallocations)

	s.PopBack()
	s.PopBack()
	assert.Equal(t, "foobarbaz", s.String())
	assert.Equal(t, byte(0), s.Raw()[s.Len()])

	// storage left over by PopBack is reused
	require.NoError(t, s.AppendByte('.'))
	assert.Equal(t, 4, tr.Reallocations)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, []byte{0}, s.Raw())
	assert.Equal(t, 1, tr.LastSize)

	s.Free()
	assert.Equal(t, 1, tr.Deallocations)
}

func TestAppendInArena(t *testing.T) {
	a := allocator.NewArena(64)
	s, err := NewFromRaw("ab", a)
	require.NoError(t, err)
	used := a.Used()
	require.NoError(t, s.AppendRaw("cdef"))
	assert.Equal(t, used+4, a.Used(), "latest block grows in place")

	err = s.AppendRaw(string(make([]byte, 64)))
	require.ErrorIs(t, err, allocator.ErrOutOfMemory)
	assert.Equal(t, "abcdef", s.String())
}

func TestSubstrAndConcat(t *testing.T) {
	s := mustRaw(t, "hello world")
	sub, err := s.Substr(6, 11)
	require.NoError(t, err)
	assert.Equal(t, "world", sub.String())

	sub, err = s.Substr(2, 2)
	require.NoError(t, err)
	assert.Zero(t, sub.Len())

	c, err := Concat(mustRaw(t, "foo"), mustRaw(t, "bar"))
	require.NoError(t, err)
	assert.Equal(t, "foobar", c.String())
	assert.Equal(t, byte(0), c.Raw()[6])
}

func TestCompare(t *testing.T) {
	a, b := mustRaw(t, "abc"), mustRaw(t, "abd")
	assert.Equal(t, Less, a.Compare(b))
	assert.Equal(t, Greater, b.Compare(a))
	assert.Equal(t, Equal, a.CompareRaw("abc"))
	assert.Equal(t, Less, a.CompareRaw("abcd"))
	assert.Equal(t, Greater, a.CompareRaw("ab"))

	assert.True(t, a.EqualsRaw("abc"))
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(mustRaw(t, "abc")))

	assert.True(t, mustRaw(t, "hello world").ContainsRaw("o w"))
	assert.True(t, a.Contains(mustRaw(t, "")))
	assert.False(t, a.ContainsRaw("abcd"))
	assert.Equal(t, "less", Less.String())
}

func TestCopyIsIndependent(t *testing.T) {
	s := mustRaw(t, "abc")
	c, err := s.Copy()
	require.NoError(t, err)
	require.NoError(t, s.AppendRaw("def"))
	s.PopBack()
	assert.Equal(t, "abc", c.String())
	assert.Equal(t, "abcde", s.String())
}

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{``, `""`},
		{`plain`, `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak\ttab\r", `"line\nbreak\ttab\r"`},
		{"bell\x07", `"bell\u0007"`},
		{"héllo", `"héllo"`},
	} {
		t.Run(tc.out, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, mustRaw(t, tc.in).Format(&buf))
			assert.Equal(t, tc.out, buf.String())

			buf.Reset()
			require.NoError(t, FormatRaw(&buf, tc.in))
			assert.Equal(t, tc.out, buf.String())
		})
	}
}
