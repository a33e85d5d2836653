package host

import (
	"github.com/objtrace/objtrace/types"
)

// AllocEvent describes a single object allocation. It is delivered
// synchronously at the moment the host allocator hands out the object.
type AllocEvent struct {
	// Object is the identity of the allocated object
	Object types.ObjectID

	// Tag is the coarse runtime type of the object
	Tag types.TypeTag

	// Class is the identity of the object's class, zero if unavailable
	Class types.ObjectID

	// ClassPath is the fully qualified name of the object's class.
	// Empty when the host could not resolve it
	ClassPath string

	// Path and Line locate the allocation site in application source.
	// Path is empty when no source location is available
	Path string
	Line int

	// Generation is the value of the collection-cycle counter at
	// allocation time
	Generation uint64
}

// Hook is an installed runtime observer. Disabling a hook silences it
// without uninstalling it, so it can be re-enabled later.
type Hook interface {
	Enable()
	Disable()
}

// Runtime is the host-runtime surface consumed by the tracer
type Runtime interface {
	// AllocHook installs fn as the allocation observer.
	// The hook starts out disabled
	AllocHook(fn func(AllocEvent)) Hook

	// FreeHook installs fn as the free observer. The hook starts out
	// disabled. The observer runs inside the collector's critical
	// section and must neither allocate unboundedly nor re-enter
	// the runtime
	FreeHook(fn func(types.ObjectID)) Hook

	// Cycles returns the number of completed collection cycles
	Cycles() uint64

	// Defer schedules fn to run once at the next safe point outside
	// any critical section. Requests made while one is already
	// pending coalesce into a single run
	Defer(fn func())
}
