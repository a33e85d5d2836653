package tracer

// internedString is the canonical shared copy of a path or class-path
// string. The interner hands out at most one live handle per distinct
// value, so handle identity stands in for string equality.
type internedString struct {
	value string
	refs  int
}

// stringInterner deduplicates and reference-counts the short strings
// shared across many allocation records (source paths, class paths).
// No eviction: a string lives exactly as long as records or aggregate
// keys hold references to it.
type stringInterner struct {
	strings map[string]*internedString
}

func newStringInterner() *stringInterner {
	return &stringInterner{
		strings: make(map[string]*internedString),
	}
}

// intern returns the shared handle for s, taking one reference.
// The empty string has no handle.
func (si *stringInterner) intern(s string) *internedString {
	if s == "" {
		return nil
	}

	handle, ok := si.strings[s]
	if !ok {
		handle = &internedString{value: s}
		si.strings[s] = handle
	}

	handle.refs++

	return handle
}

// retain takes an additional reference on an existing handle.
// Safe to call with nil.
func (si *stringInterner) retain(handle *internedString) {
	if handle == nil {
		return
	}

	handle.refs++
}

// release drops one reference, removing the string from the pool when
// the last reference is gone. Safe to call with nil.
func (si *stringInterner) release(handle *internedString) {
	if handle == nil {
		return
	}

	handle.refs--

	if handle.refs == 0 {
		delete(si.strings, handle.value)
	}
}

// size returns the number of distinct interned strings
func (si *stringInterner) size() int {
	return len(si.strings)
}

// reset drops the whole pool regardless of outstanding references
func (si *stringInterner) reset() {
	si.strings = make(map[string]*internedString)
}
