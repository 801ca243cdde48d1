package mode

import (
	"context"
	"errors"
	"testing"

	rofimode "github.com/wippyai/rofi-mode"
	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/memory"
	"github.com/wippyai/rofi-mode/pattern"
	"github.com/wippyai/rofi-mode/resource"
)

type row struct {
	text  string
	state abi.EntryState
	icon  string
}

// fakeMode records every call the adapter makes.
type fakeMode struct {
	rows      []row
	overrides map[abi.MenuReturn]abi.ModeMode
	onDisplay func()

	displayCalls int
	iconCalls    map[int]int
	results      []abi.MenuReturn
	patterns     [][]*pattern.Pattern
	closed       int
}

func (m *fakeMode) NumEntries() int { return len(m.rows) }

func (m *fakeMode) DisplayValue(line int) (string, abi.EntryState, bool) {
	m.displayCalls++
	if m.onDisplay != nil {
		m.onDisplay()
	}
	if line < 0 || line >= len(m.rows) {
		return "", abi.Normal, false
	}
	r := m.rows[line]
	return r.text, r.state, true
}

func (m *fakeMode) Result(action abi.MenuReturn, _ int) (abi.ModeMode, bool) {
	m.results = append(m.results, action)
	next, ok := m.overrides[action.Action()]
	return next, ok
}

func (m *fakeMode) TokenMatch(patterns []*pattern.Pattern, line int) bool {
	m.patterns = append(m.patterns, patterns)
	if line < 0 || line >= len(m.rows) {
		return false
	}
	return pattern.MatchAll(patterns, m.rows[line].text)
}

func (m *fakeMode) IconQuery(line int) (string, bool) {
	if m.iconCalls == nil {
		m.iconCalls = make(map[int]int)
	}
	m.iconCalls[line]++
	if line < 0 || line >= len(m.rows) || m.rows[line].icon == "" {
		return "", false
	}
	return m.rows[line].icon, true
}

func (m *fakeMode) Close() error {
	m.closed++
	return nil
}

// countingAlloc counts allocations made through it.
type countingAlloc struct {
	*memory.Heap
	allocs int
}

func (a *countingAlloc) Alloc(size, align uint32) (uint32, error) {
	a.allocs++
	return a.Heap.Alloc(size, align)
}

// fakeHost implements Host over a real linear memory.
type fakeHost struct {
	mem     *memory.Wrapper
	alloc   *countingAlloc
	queries []string
	uids    map[string]uint32
	// notFound makes every icon query fail with the 0 sentinel.
	notFound bool
}

func newFakeHost(t *testing.T) *fakeHost {
	t.Helper()
	ctx := context.Background()
	lin, err := memory.NewLinear(ctx, 1)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	t.Cleanup(func() { _ = lin.Close(ctx) })
	return &fakeHost{
		mem:   lin.Memory(),
		alloc: &countingAlloc{Heap: memory.NewHeap(lin.Memory())},
		uids:  make(map[string]uint32),
	}
}

func (h *fakeHost) Memory() rofimode.Memory       { return h.mem }
func (h *fakeHost) Allocator() rofimode.Allocator { return h.alloc }

func (h *fakeHost) QueryIcon(name string, _ uint32) uint32 {
	h.queries = append(h.queries, name)
	if h.notFound {
		return 0
	}
	if uid, ok := h.uids[name]; ok {
		return uid
	}
	uid := uint32(len(h.uids) + 1)
	h.uids[name] = uid
	return uid
}

// newTestTable builds a guarded table around m with its own state table
// and runs Init.
func newTestTable(t *testing.T, m *fakeMode) (*Table, *fakeHost, *resource.Table) {
	t.Helper()
	states := resource.NewTable()
	table := New(Descriptor[*fakeMode]{
		Name: "test",
		Type: abi.ModeTypeSwitcher,
		Init: func() (*fakeMode, error) { return m, nil },
	}, WithCallGuard(true), WithStateTable(states))

	host := newFakeHost(t)
	table.Host = host
	if table.Init(table) != 1 {
		t.Fatal("Init failed")
	}
	t.Cleanup(func() { table.Destroy(table) })
	return table, host, states
}

func threeRows() *fakeMode {
	return &fakeMode{rows: []row{
		{text: "first entry", state: abi.Normal, icon: "firefox"},
		{text: "second entry", state: abi.Urgent | abi.Markup},
		{text: "third entry", state: abi.Active, icon: "terminal"},
	}}
}

var errUnavailable = errors.New("unavailable")
