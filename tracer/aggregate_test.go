package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTable_FoldStatistics(t *testing.T) {
	t.Parallel()

	si := newStringInterner()
	table := newAggregateTable(si)

	path := si.intern("a.rb")

	key := aggregateKey{n: 2}
	key.slots[0].str = path
	key.slots[1].num = 10

	for _, age := range []uint64{3, 1, 5} {
		table.fold(key, age)
	}

	require.Equal(t, 1, table.len())

	value := table.entries[key]
	require.NotNil(t, value)
	assert.Equal(t, uint64(3), value.count)
	assert.Equal(t, uint64(9), value.totalAge)
	assert.Equal(t, uint64(1), value.minAge)
	assert.Equal(t, uint64(5), value.maxAge)
}

func TestAggregateTable_KeyIdentity(t *testing.T) {
	t.Parallel()

	si := newStringInterner()
	table := newAggregateTable(si)

	path := si.intern("a.rb")

	// two keys built independently from the same slots hit one
	// entry, keys differing in any populated slot do not
	base := aggregateKey{n: 2}
	base.slots[0].str = path
	base.slots[1].num = 10

	same := aggregateKey{n: 2}
	same.slots[0].str = path
	same.slots[1].num = 10

	otherLine := aggregateKey{n: 2}
	otherLine.slots[0].str = path
	otherLine.slots[1].num = 11

	shorter := aggregateKey{n: 1}
	shorter.slots[0].str = path

	table.fold(base, 1)
	table.fold(same, 2)
	table.fold(otherLine, 1)
	table.fold(shorter, 1)

	assert.Equal(t, 3, table.len())
	assert.Equal(t, uint64(2), table.entries[base].count)
}

func TestAggregateTable_KeyStringReferences(t *testing.T) {
	t.Parallel()

	si := newStringInterner()
	table := newAggregateTable(si)

	path := si.intern("a.rb")
	require.Equal(t, 1, path.refs)

	key := aggregateKey{n: 1}
	key.slots[0].str = path

	// the first fold retains the key's strings, later folds do not
	table.fold(key, 1)
	assert.Equal(t, 2, path.refs)

	table.fold(key, 2)
	assert.Equal(t, 2, path.refs)

	// draining the table hands the references back
	table.releaseKeys()
	table.reset()
	assert.Equal(t, 1, path.refs)

	si.release(path)
	assert.Zero(t, si.size())
}

func TestAggregateTable_NilStringSlot(t *testing.T) {
	t.Parallel()

	si := newStringInterner()
	table := newAggregateTable(si)

	// records without a source path fold under a nil path slot
	key := aggregateKey{n: 2}
	key.slots[1].num = 7

	table.fold(key, 4)
	table.fold(key, 6)

	require.Equal(t, 1, table.len())
	assert.Equal(t, uint64(2), table.entries[key].count)

	table.releaseKeys()
	assert.Zero(t, si.size())
}
