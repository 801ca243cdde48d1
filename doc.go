// Package rofimode lets a Go type act as a launcher list provider ("mode")
// without touching the host's dispatch-table protocol directly.
//
// A provider implements a small, safe interface; the adapter builds the
// fixed-layout dispatch table the host expects and translates every call
// across the boundary: opaque state lifecycle, bit-exact flag encodings,
// ownership transfer of strings into host memory, icon caching and
// pattern matching.
//
// # Architecture Overview
//
//	rofimode/        Root package with the host Memory and Allocator interfaces
//	├── abi/         Bit-exact host constants: MenuReturn, EntryState, ModeMode, ModeType
//	├── mode/        Provider contract, dispatch table, thunks, icon cache
//	├── pattern/     Matcher tokens and the host's token matching helpers
//	├── resource/    Opaque state handle table
//	├── memory/      Host memory adapters (wazero linear memory, heap allocator)
//	├── launcher/    Reference host that drives a dispatch table
//	├── internal/lines  Dmenu-style mode over text lines
//	├── errors/      Structured error types
//	└── cmd/modetest Command line and interactive harness
//
// # Quick Start
//
// Implement mode.Mode and describe it:
//
//	type fruits struct{ items []string }
//
//	func (f *fruits) NumEntries() int { return len(f.items) }
//	func (f *fruits) DisplayValue(line int) (string, abi.EntryState, bool) {
//	    if line >= len(f.items) {
//	        return "", abi.Normal, false
//	    }
//	    return f.items[line], abi.Normal, true
//	}
//	// Result, TokenMatch, IconQuery ...
//
//	var Table = mode.New(mode.Descriptor[*fruits]{
//	    Name:        "fruits",
//	    DisplayName: "Fruits",
//	    Type:        abi.ModeTypeSwitcher,
//	    Init:        func() (*fruits, error) { return &fruits{items: load()}, nil },
//	})
//
// Drive it the way the host does:
//
//	l, err := launcher.Open(ctx, Table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Close(ctx)
//
//	lines, _ := l.Filter("app")
//	for _, line := range lines {
//	    row, _, _ := l.Entry(line)
//	    fmt.Println(row.Text)
//	}
//
// # Thread Safety
//
// The host calls a table's slots strictly sequentially and never calls
// Destroy concurrently with another slot. The adapter relies on this and
// does not enforce it; mode.WithCallGuard turns violations into panics.
package rofimode
