// Package abi holds the host's binary contract for list providers.
//
// Every constant here mirrors the host's C declarations bit for bit.
// The values are written out explicitly rather than derived with iota so
// that reordering a declaration can never shift an encoding:
//
//	MenuReturn   action bits requested by the host's UI loop (high bits)
//	             plus a lower mask carrying row or key indices
//	EntryState   per-row render state bits
//	ModeMode     next-mode codes a provider may return from Result
//	ModeType     the kind of mode a table describes
//
// NameKey builds the fixed 128-byte configuration key the host reads
// from the dispatch table.
package abi
