package tracer

import (
	"github.com/objtrace/objtrace/types"
)

// allocationRecord tracks a single object from its allocation event
// until its free event has been folded into the aggregate table.
// A record owns one interner reference each on path and classPath,
// released exactly once when the record is folded or overwritten.
type allocationRecord struct {
	object     types.ObjectID
	tag        types.TypeTag
	class      types.ObjectID
	classPath  *internedString
	path       *internedString
	line       int
	generation uint64

	// live is cleared when the record moves to the freed list
	live bool

	// next links records on the freed list
	next *allocationRecord
}
