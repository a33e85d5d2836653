package host

import (
	"github.com/objtrace/objtrace/types"
)

// SimRuntime is an in-process Runtime implementation used by tests and
// the synthetic workload driver. Allocations, frees and collection
// cycles are driven explicitly by the caller, and everything runs on the
// caller's goroutine, matching the single-threaded model of the hosts
// the tracer targets.
type SimRuntime struct {
	cycles uint64
	nextID types.ObjectID

	// live objects and the identities available for reuse.
	// Freed identities are recycled LIFO before new ones are minted
	live    map[types.ObjectID]struct{}
	freeIDs []types.ObjectID

	// one identity per distinct class path
	classIDs map[string]types.ObjectID

	allocFn      func(AllocEvent)
	allocEnabled bool

	freeFn      func(types.ObjectID)
	freeEnabled bool

	// single deferred slot, requests coalesce while one is pending
	deferred func()
}

var _ Runtime = (*SimRuntime)(nil)

// NewSimRuntime creates an empty simulated runtime
func NewSimRuntime() *SimRuntime {
	return &SimRuntime{
		live:     map[types.ObjectID]struct{}{},
		classIDs: map[string]types.ObjectID{},
	}
}

type simHook struct {
	enabled *bool
}

func (h *simHook) Enable() {
	*h.enabled = true
}

func (h *simHook) Disable() {
	*h.enabled = false
}

func (s *SimRuntime) AllocHook(fn func(AllocEvent)) Hook {
	s.allocFn = fn

	return &simHook{enabled: &s.allocEnabled}
}

func (s *SimRuntime) FreeHook(fn func(types.ObjectID)) Hook {
	s.freeFn = fn

	return &simHook{enabled: &s.freeEnabled}
}

func (s *SimRuntime) Cycles() uint64 {
	return s.cycles
}

func (s *SimRuntime) Defer(fn func()) {
	if s.deferred == nil {
		s.deferred = fn
	}
}

// Alloc creates an object and reports it to the allocation observer.
// An empty classPath models objects whose class the host cannot name.
func (s *SimRuntime) Alloc(tag types.TypeTag, classPath, path string, line int) types.ObjectID {
	id := s.mintID()
	s.live[id] = struct{}{}

	if s.allocEnabled && s.allocFn != nil {
		s.allocFn(AllocEvent{
			Object:     id,
			Tag:        tag,
			Class:      s.classID(classPath),
			ClassPath:  classPath,
			Path:       path,
			Line:       line,
			Generation: s.cycles,
		})
	}

	return id
}

// Free reclaims the object and raises the free event.
// It reports whether the identity was live.
func (s *SimRuntime) Free(id types.ObjectID) bool {
	if _, ok := s.live[id]; !ok {
		return false
	}

	delete(s.live, id)

	if s.freeEnabled && s.freeFn != nil {
		s.freeFn(id)
	}

	s.freeIDs = append(s.freeIDs, id)

	return true
}

// FreeQuiet reclaims the object without raising the free event, the way
// hosts reclaim some internal objects. The identity becomes reusable,
// so a later Alloc can hand it out again with no free ever observed.
func (s *SimRuntime) FreeQuiet(id types.ObjectID) bool {
	if _, ok := s.live[id]; !ok {
		return false
	}

	delete(s.live, id)
	s.freeIDs = append(s.freeIDs, id)

	return true
}

// Collect completes a collection cycle and then runs any deferred
// callback, the cycle boundary being a safe point
func (s *SimRuntime) Collect() {
	s.cycles++
	s.RunDeferred()
}

// RunDeferred runs the pending deferred callback, if any
func (s *SimRuntime) RunDeferred() {
	if fn := s.deferred; fn != nil {
		s.deferred = nil

		fn()
	}
}

// Live returns the number of live objects
func (s *SimRuntime) Live() int {
	return len(s.live)
}

func (s *SimRuntime) mintID() types.ObjectID {
	if n := len(s.freeIDs); n > 0 {
		id := s.freeIDs[n-1]
		s.freeIDs = s.freeIDs[:n-1]

		return id
	}

	s.nextID++

	return s.nextID
}

func (s *SimRuntime) classID(classPath string) types.ObjectID {
	if classPath == "" {
		return types.ZeroObjectID
	}

	id, ok := s.classIDs[classPath]
	if !ok {
		s.nextID++
		id = s.nextID
		s.classIDs[classPath] = id
	}

	return id
}
