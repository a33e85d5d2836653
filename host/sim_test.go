package host

import (
	"testing"

	"github.com/objtrace/objtrace/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimRuntime_AllocDeliversEvent(t *testing.T) {
	t.Parallel()

	sim := NewSimRuntime()

	var events []AllocEvent

	hook := sim.AllocHook(func(ev AllocEvent) {
		events = append(events, ev)
	})

	// hooks start out disabled
	sim.Alloc(types.TagString, "Config", "app.rb", 3)
	assert.Empty(t, events)

	hook.Enable()

	sim.Collect()
	id := sim.Alloc(types.TagArray, "Config", "app.rb", 7)

	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].Object)
	assert.Equal(t, types.TagArray, events[0].Tag)
	assert.Equal(t, "Config", events[0].ClassPath)
	assert.NotEqual(t, types.ZeroObjectID, events[0].Class)
	assert.Equal(t, "app.rb", events[0].Path)
	assert.Equal(t, 7, events[0].Line)
	assert.Equal(t, uint64(1), events[0].Generation)

	hook.Disable()

	sim.Alloc(types.TagString, "", "app.rb", 9)
	assert.Len(t, events, 1)

	assert.Equal(t, 3, sim.Live())
}

func TestSimRuntime_ClassIdentityStable(t *testing.T) {
	t.Parallel()

	sim := NewSimRuntime()

	var classes []types.ObjectID

	sim.AllocHook(func(ev AllocEvent) {
		classes = append(classes, ev.Class)
	}).Enable()

	sim.Alloc(types.TagObject, "Widget", "a.rb", 1)
	sim.Alloc(types.TagObject, "Widget", "b.rb", 2)
	sim.Alloc(types.TagObject, "", "c.rb", 3)

	require.Len(t, classes, 3)
	assert.Equal(t, classes[0], classes[1])
	assert.Equal(t, types.ZeroObjectID, classes[2])
}

func TestSimRuntime_FreeRaisesEvent(t *testing.T) {
	t.Parallel()

	sim := NewSimRuntime()

	var freed []types.ObjectID

	sim.FreeHook(func(id types.ObjectID) {
		freed = append(freed, id)
	}).Enable()

	id := sim.Alloc(types.TagObject, "", "a.rb", 1)

	assert.True(t, sim.Free(id))
	assert.False(t, sim.Free(id), "double free is rejected")
	assert.Equal(t, []types.ObjectID{id}, freed)
	assert.Zero(t, sim.Live())
}

func TestSimRuntime_IdentityReuse(t *testing.T) {
	t.Parallel()

	sim := NewSimRuntime()

	first := sim.Alloc(types.TagObject, "", "a.rb", 1)

	// an observed free recycles the identity
	require.True(t, sim.Free(first))
	assert.Equal(t, first, sim.Alloc(types.TagObject, "", "a.rb", 1))

	// a quiet free recycles it without any free event
	var freed []types.ObjectID

	sim.FreeHook(func(id types.ObjectID) {
		freed = append(freed, id)
	}).Enable()

	require.True(t, sim.FreeQuiet(first))
	assert.Empty(t, freed)
	assert.Equal(t, first, sim.Alloc(types.TagObject, "", "a.rb", 1))
}

func TestSimRuntime_DeferCoalesces(t *testing.T) {
	t.Parallel()

	sim := NewSimRuntime()

	runs := 0

	sim.Defer(func() { runs++ })
	sim.Defer(func() { runs += 100 })

	sim.RunDeferred()
	sim.RunDeferred()

	assert.Equal(t, 1, runs, "requests while one is pending coalesce")

	// a new request after the previous one fired is accepted again
	sim.Defer(func() { runs++ })
	sim.Collect()

	assert.Equal(t, 2, runs)
	assert.Equal(t, uint64(1), sim.Cycles())
}

func TestSimRuntime_CollectRunsDeferredAfterCycle(t *testing.T) {
	t.Parallel()

	sim := NewSimRuntime()

	var seen uint64

	sim.Defer(func() {
		seen = sim.Cycles()
	})

	sim.Collect()

	// the callback observes the completed cycle
	assert.Equal(t, uint64(1), seen)
}
