// Package resource manages opaque state blocks handed across the host boundary.
//
// The host stores a mode's state as an untyped value it never dereferences
// and passes it back on every call. This package maps such values to Go
// objects: a Handle is a non-zero integer the host may store anywhere, and
// Handle 0 is the null state.
//
// # Handle Table
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	h := table.Insert("windows", state)
//
//	// Retrieve value by handle
//	value, ok := table.Get(h)
//
//	// Remove and drop the value
//	value, ok := table.Remove(h)
//
// # Tags
//
// Each entry carries a tag naming its owner. Lookups through Typed check
// both the tag and the Go type, so a handle produced by one mode is never
// reinterpreted as another mode's state:
//
//	states := resource.NewTyped[*modeState](table, "windows")
//	h := states.Insert(s)
//	s, ok := states.Get(h)
//
// # Observers
//
// Register observers to track state lifecycle events:
//
//	table.Subscribe(observer)
//
// # Dropping
//
// Values implementing Dropper have Drop called exactly once, when their
// handle is removed or the table is closed. A removed handle is invalid
// immediately; its slot may be reused by a later Insert.
package resource
