// Package mode adapts a Go list provider to the host's dispatch table.
//
// A provider implements Mode. New builds the Table the host registers: a
// fixed record of identity fields and function slots. Each slot is a thunk
// that recovers the provider from the table's opaque state handle, calls
// it, and re-encodes the answer the way the host expects.
//
// # Slots
//
//	Init             construct the provider, store its state handle
//	Destroy          release the state; safe on null state and when repeated
//	GetNumEntries    number of rows
//	GetDisplayValue  row flags, and the row text when asked for it
//	Result           act on a MenuReturn; no override passes the lower bits through
//	TokenMatch       filter a row against the host's matcher tokens
//	GetIcon          resolve a row icon through a per-state cache
//
// # String Ownership
//
// Row text is written into host memory with the host's allocator. The
// returned address belongs to the host, which frees it when done. When
// the host only asks for flags no string is allocated.
//
// # Icon Cache
//
// Icons are cached per (row, height, scale). A hit never calls the
// provider or the host's icon fetcher again. A provider that has no icon
// for a row leaves no cache entry, so the next request asks again.
//
// # Concurrency
//
// The host must not call into one table concurrently, and must not call
// Destroy while another slot is running. The adapter does not detect
// violations unless WithCallGuard is enabled, in which case an overlapping
// call panics with an errors.KindReentrant error.
package mode
