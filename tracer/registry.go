package tracer

import (
	"github.com/objtrace/objtrace/types"
)

// Registry of all currently tracked live objects, keyed by the host's
// object identity
type objectRegistry struct {
	all map[types.ObjectID]*allocationRecord
}

func newObjectRegistry() *objectRegistry {
	return &objectRegistry{
		all: make(map[types.ObjectID]*allocationRecord),
	}
}

// get returns the record for the given identity, if tracked
func (r *objectRegistry) get(id types.ObjectID) (*allocationRecord, bool) {
	record, ok := r.all[id]

	return record, ok
}

// set registers the record under its object identity
func (r *objectRegistry) set(record *allocationRecord) {
	r.all[record.object] = record
}

// take removes and returns the record for the given identity
func (r *objectRegistry) take(id types.ObjectID) (*allocationRecord, bool) {
	record, ok := r.all[id]
	if !ok {
		return nil, false
	}

	delete(r.all, id)

	return record, true
}

// len returns the number of tracked objects
func (r *objectRegistry) len() int {
	return len(r.all)
}

// each visits every tracked record. The callback must not mutate
// the registry.
func (r *objectRegistry) each(fn func(*allocationRecord)) {
	for _, record := range r.all {
		fn(record)
	}
}

// reset drops all tracked records
func (r *objectRegistry) reset() {
	r.all = make(map[types.ObjectID]*allocationRecord)
}
