package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterner_SharedHandle(t *testing.T) {
	t.Parallel()

	si := newStringInterner()

	first := si.intern("app/models/user.rb")
	second := si.intern("app/models/user.rb")

	require.NotNil(t, first)
	assert.Same(t, first, second, "equal strings share one handle")
	assert.Equal(t, 2, first.refs)
	assert.Equal(t, 1, si.size())

	other := si.intern("app/models/order.rb")
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, si.size())
}

func TestInterner_ReferenceBalance(t *testing.T) {
	t.Parallel()

	si := newStringInterner()

	const n = 10

	handles := make([]*internedString, n)
	for i := 0; i < n; i++ {
		handles[i] = si.intern("a.rb")
	}

	require.Equal(t, 1, si.size())

	// releasing all but the last reference keeps the string pooled
	for i := 0; i < n-1; i++ {
		si.release(handles[i])
	}

	assert.Equal(t, 1, si.size())

	// the last release drops the storage
	si.release(handles[n-1])
	assert.Zero(t, si.size())

	// a fresh intern after the drop allocates a new handle
	fresh := si.intern("a.rb")
	assert.NotSame(t, handles[0], fresh)
	assert.Equal(t, 1, fresh.refs)
}

func TestInterner_NilAndEmpty(t *testing.T) {
	t.Parallel()

	si := newStringInterner()

	assert.Nil(t, si.intern(""), "the empty string has no handle")

	// nil handles are no-ops everywhere
	si.retain(nil)
	si.release(nil)

	assert.Zero(t, si.size())
}

func TestInterner_RetainExisting(t *testing.T) {
	t.Parallel()

	si := newStringInterner()

	handle := si.intern("a.rb")
	si.retain(handle)

	assert.Equal(t, 2, handle.refs)

	si.release(handle)
	assert.Equal(t, 1, si.size())

	si.release(handle)
	assert.Zero(t, si.size())
}

func TestInterner_Reset(t *testing.T) {
	t.Parallel()

	si := newStringInterner()

	si.intern("a.rb")
	si.intern("b.rb")

	si.reset()

	assert.Zero(t, si.size())
	assert.Equal(t, 1, si.intern("a.rb").refs, "reset discards old references")
}
