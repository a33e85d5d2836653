package tracer

// maxKeySlots caps composite keys at the four supported attributes
const maxKeySlots = 4

// keySlot holds one attribute value: the interned-string handle for
// path and class slots, the raw number for line and type slots
type keySlot struct {
	str *internedString
	num uint64
}

// aggregateKey is a composite grouping key. Only the first n slots are
// populated, in keyAttrOrder, and the remaining slots stay zero so that
// struct equality compares exactly the populated range. Interned-string
// pointer identity stands in for string equality.
type aggregateKey struct {
	n     int
	slots [maxKeySlots]keySlot
}

// aggregateValue accumulates the lifetime statistics of all freed
// objects sharing one key
type aggregateValue struct {
	count    uint64
	totalAge uint64
	minAge   uint64
	maxAge   uint64
}

// aggregateTable groups freed objects by composite key. The table owns
// one interner reference per string slot of every stored key, taken
// when the key is first inserted and handed back when the table is
// drained into rows.
type aggregateTable struct {
	interner *stringInterner
	entries  map[aggregateKey]*aggregateValue
}

func newAggregateTable(interner *stringInterner) *aggregateTable {
	return &aggregateTable{
		interner: interner,
		entries:  make(map[aggregateKey]*aggregateValue),
	}
}

// fold accumulates one freed object's age under the given key
func (t *aggregateTable) fold(key aggregateKey, age uint64) {
	value, ok := t.entries[key]
	if !ok {
		value = &aggregateValue{
			minAge: age,
			maxAge: age,
		}

		for i := 0; i < key.n; i++ {
			t.interner.retain(key.slots[i].str)
		}

		t.entries[key] = value
	}

	value.count++
	value.totalAge += age

	if age < value.minAge {
		value.minAge = age
	}

	if age > value.maxAge {
		value.maxAge = age
	}
}

// len returns the number of distinct keys
func (t *aggregateTable) len() int {
	return len(t.entries)
}

// each visits every entry. The callback must not mutate the table.
func (t *aggregateTable) each(fn func(aggregateKey, *aggregateValue)) {
	for key, value := range t.entries {
		fn(key, value)
	}
}

// releaseKeys hands the table's key string references back to the
// interner, after the entries have been read out
func (t *aggregateTable) releaseKeys() {
	for key := range t.entries {
		for i := 0; i < key.n; i++ {
			t.interner.release(key.slots[i].str)
		}
	}
}

// reset drops all entries
func (t *aggregateTable) reset() {
	t.entries = make(map[aggregateKey]*aggregateValue)
}
