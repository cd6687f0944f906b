package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/jsondoc/allocator"
)

func TestDeterministic(t *testing.T) {
	a, err := New(42, nil).Value()
	require.NoError(t, err)
	b, err := New(42, nil).Value()
	require.NoError(t, err)
	assert.True(t, a.Equals(b))
}

func TestRecord(t *testing.T) {
	r, err := New(1, nil).Record()
	require.NoError(t, err)
	for _, key := range []string{"id", "name", "email", "city", "age", "items"} {
		assert.True(t, r.AsObject().Has(key), key)
	}
	items := r.Get("items").AsArray()
	require.False(t, items.Empty())
	assert.True(t, items.At(0).Get("price").IsNumber())
}

func TestFreeBalances(t *testing.T) {
	tr := allocator.NewTracking(nil)
	g := New(7, tr)
	for i := 0; i < 20; i++ {
		v, err := g.Value()
		require.NoError(t, err)
		v.Free()
		r, err := g.Record()
		require.NoError(t, err)
		r.Free()
	}
	assert.Zero(t, tr.Outstanding)
}
