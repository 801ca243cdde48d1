package mode

import (
	"testing"

	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/resource"
)

func TestDestroy_WithoutInit(t *testing.T) {
	states := resource.NewTable()
	table := New(Descriptor[*fakeMode]{
		Name: "test",
		Init: func() (*fakeMode, error) { return &fakeMode{}, nil },
	}, WithStateTable(states))

	table.Destroy(table)
	table.Destroy(table)
	if table.State != 0 {
		t.Fatal("State changed by destroy of null state")
	}
}

func TestDestroy_Twice(t *testing.T) {
	m := threeRows()
	states := resource.NewTable()
	table := New(Descriptor[*fakeMode]{
		Name: "test",
		Init: func() (*fakeMode, error) { return m, nil },
	}, WithStateTable(states))

	if table.Init(table) != 1 {
		t.Fatal("Init failed")
	}
	if table.State == 0 || states.Len() != 1 {
		t.Fatal("Init must store a live state handle")
	}

	table.Destroy(table)
	if table.State != 0 {
		t.Fatal("Destroy must clear the state handle")
	}
	if states.Len() != 0 {
		t.Fatal("Destroy must release the state")
	}
	if m.closed != 1 {
		t.Fatalf("provider closed %d times", m.closed)
	}

	table.Destroy(table)
	if m.closed != 1 {
		t.Fatalf("second Destroy closed provider again (%d)", m.closed)
	}
}

func TestInit_Failure(t *testing.T) {
	states := resource.NewTable()
	table := New(Descriptor[*fakeMode]{
		Name:        "broken",
		DisplayName: "Broken",
		Init:        func() (*fakeMode, error) { return nil, errUnavailable },
	}, WithStateTable(states))

	if got := table.Init(table); got != 0 {
		t.Fatalf("Init = %d, want 0", got)
	}
	if table.State != 0 {
		t.Fatal("failed Init must not store state")
	}
	if states.Len() != 0 {
		t.Fatal("failed Init must not retain anything")
	}
	if table.DisplayName != "Broken" {
		t.Fatal("identity is written even when init fails")
	}

	table.Destroy(table)
}

func TestInit_Repeated(t *testing.T) {
	first, second := threeRows(), threeRows()
	calls := 0
	states := resource.NewTable()
	table := New(Descriptor[*fakeMode]{
		Name: "test",
		Init: func() (*fakeMode, error) {
			calls++
			if calls == 1 {
				return first, nil
			}
			return second, nil
		},
	}, WithStateTable(states))

	table.Init(table)
	table.Init(table)
	defer table.Destroy(table)

	if first.closed != 1 {
		t.Fatal("re-init must release the previous state")
	}
	if states.Len() != 1 {
		t.Fatalf("states.Len() = %d, want 1", states.Len())
	}
}

func TestSlots_StaleState(t *testing.T) {
	m := threeRows()
	table, _, states := newTestTable(t, m)

	// The state vanishes behind the adapter's back.
	states.Remove(table.State)

	var flags int32 = 99
	if ptr := table.GetDisplayValue(table, 0, &flags, 1); ptr != 0 || flags != int32(abi.Normal) {
		t.Fatalf("GetDisplayValue = %d, flags %d", ptr, flags)
	}
	if n := table.GetNumEntries(table); n != 0 {
		t.Fatalf("GetNumEntries = %d", n)
	}
	if got := table.Result(table, int32(abi.MenuOK|4), nil, 0); got != 4 {
		t.Fatalf("Result = %d, want lower bits", got)
	}
	if table.TokenMatch(table, nil, 0) != 0 {
		t.Fatal("TokenMatch on stale state")
	}
	if table.GetIcon(table, 0, 32) != 0 {
		t.Fatal("GetIcon on stale state")
	}
	if m.displayCalls != 0 {
		t.Fatal("provider must not be reached")
	}
}

func TestStates_Tagged(t *testing.T) {
	states := resource.NewTable()
	a := New(Descriptor[*fakeMode]{Name: "a", Init: func() (*fakeMode, error) { return threeRows(), nil }},
		WithStateTable(states))
	b := New(Descriptor[*fakeMode]{Name: "b", Init: func() (*fakeMode, error) { return threeRows(), nil }},
		WithStateTable(states))

	a.Init(a)
	defer a.Destroy(a)

	// b is handed a's handle; it must not reinterpret it.
	b.State = a.State
	if n := b.GetNumEntries(b); n != 0 {
		t.Fatalf("foreign handle resolved, GetNumEntries = %d", n)
	}
	b.State = 0
}

func TestStates_SameNameIsolated(t *testing.T) {
	states := resource.NewTable()
	build := func() *Table {
		return New(Descriptor[*fakeMode]{Name: "dup", Init: func() (*fakeMode, error) { return threeRows(), nil }},
			WithStateTable(states))
	}
	a, b := build(), build()
	if a.StateTag() == b.StateTag() {
		t.Fatalf("tables share state tag %q", a.StateTag())
	}
	if a.StateTable() != states || b.StateTable() != states {
		t.Fatal("StateTable must return the configured table")
	}

	a.Init(a)
	defer a.Destroy(a)

	b.State = a.State
	if n := b.GetNumEntries(b); n != 0 {
		t.Fatalf("same-name table resolved a foreign handle, GetNumEntries = %d", n)
	}
	b.Destroy(b)
	if states.Len() != 1 {
		t.Fatal("destroy through a foreign handle released the state")
	}
}

func TestBuild_DefaultStateTable(t *testing.T) {
	table := New(Descriptor[*fakeMode]{Name: "global", Init: func() (*fakeMode, error) { return &fakeMode{}, nil }})
	if table.StateTable() != States() {
		t.Fatal("tables default to the process-wide state table")
	}
}

func TestCallGuard_Reentrant(t *testing.T) {
	m := threeRows()
	table, _, _ := newTestTable(t, m)

	m.onDisplay = func() {
		table.GetNumEntries(table)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected reentrant call to panic")
		}
		m.onDisplay = nil
		// The guard is released by the panicking call.
		if table.GetNumEntries(table) != 3 {
			t.Fatal("guard not released after panic")
		}
	}()
	table.GetDisplayValue(table, 0, nil, 0)
}

func TestCallGuard_Disabled(t *testing.T) {
	g := callGuard{mode: "m"}
	release := g.enter("a")
	g.enter("b")()
	release()
}
