package mode

import (
	"testing"
)

func TestGetIcon_Cached(t *testing.T) {
	m := threeRows()
	table, host, _ := newTestTable(t, m)

	first := table.GetIcon(table, 0, 32)
	if first == 0 {
		t.Fatal("expected an icon for line 0")
	}
	second := table.GetIcon(table, 0, 32)
	if second != first {
		t.Fatalf("cached handle %d, first %d", second, first)
	}
	if m.iconCalls[0] != 1 {
		t.Fatalf("IconQuery called %d times, want 1", m.iconCalls[0])
	}
	if len(host.queries) != 1 {
		t.Fatalf("host queried %d times, want 1", len(host.queries))
	}

	// A new height is a new key.
	table.GetIcon(table, 0, 48)
	if m.iconCalls[0] != 2 || len(host.queries) != 2 {
		t.Fatalf("height 48: %d provider calls, %d host queries", m.iconCalls[0], len(host.queries))
	}
	if host.queries[1] != "firefox" {
		t.Fatalf("host asked for %q", host.queries[1])
	}
}

func TestGetIcon_NoIconNotCached(t *testing.T) {
	m := threeRows()
	table, host, _ := newTestTable(t, m)

	for i := 0; i < 3; i++ {
		if h := table.GetIcon(table, 1, 32); h != 0 {
			t.Fatalf("line 1 has no icon, got %d", h)
		}
	}
	if m.iconCalls[1] != 3 {
		t.Fatalf("IconQuery called %d times, want 3", m.iconCalls[1])
	}
	if len(host.queries) != 0 {
		t.Fatal("host must not be queried for a row without icon")
	}

	s, ok := table.states.Get(table.State)
	if !ok {
		t.Fatal("state missing")
	}
	if s.icons.len() != 0 {
		t.Fatalf("cache holds %d entries", s.icons.len())
	}
}

func TestGetIcon_FetchFailureCached(t *testing.T) {
	m := threeRows()
	table, host, _ := newTestTable(t, m)
	host.notFound = true

	for i := 0; i < 2; i++ {
		if h := table.GetIcon(table, 0, 32); h != 0 {
			t.Fatalf("call %d: handle %d, want the host's 0", i, h)
		}
	}
	if m.iconCalls[0] != 1 {
		t.Fatalf("IconQuery called %d times, want 1", m.iconCalls[0])
	}
	if len(host.queries) != 1 {
		t.Fatalf("host queried %d times, want 1", len(host.queries))
	}
	s, ok := table.states.Get(table.State)
	if !ok {
		t.Fatal("state missing")
	}
	if s.icons.len() != 1 {
		t.Fatalf("cache holds %d entries, want 1", s.icons.len())
	}
}

func TestGetIcon_PerLine(t *testing.T) {
	m := threeRows()
	table, host, _ := newTestTable(t, m)

	a := table.GetIcon(table, 0, 32)
	b := table.GetIcon(table, 2, 32)
	if a == b {
		t.Fatal("different icons resolved to the same handle")
	}
	if len(host.queries) != 2 || host.queries[0] != "firefox" || host.queries[1] != "terminal" {
		t.Fatalf("host queries %v", host.queries)
	}
}

func TestGetIcon_ClearedOnDestroy(t *testing.T) {
	m := threeRows()
	table, host, _ := newTestTable(t, m)

	table.GetIcon(table, 0, 32)
	table.Destroy(table)
	if table.Init(table) != 1 {
		t.Fatal("re-Init failed")
	}
	table.GetIcon(table, 0, 32)
	if len(host.queries) != 2 {
		t.Fatalf("fresh state must start with an empty cache, %d queries", len(host.queries))
	}
}

func TestIconCache(t *testing.T) {
	c := newIconCache()
	key := iconKey{line: 1, height: 16, scale: iconScale}

	fetches := 0
	fetch := func() (uint32, bool) {
		fetches++
		return 7, true
	}
	for i := 0; i < 2; i++ {
		h, ok := c.resolve(key, fetch)
		if !ok || h != 7 {
			t.Fatalf("resolve = %d, %v", h, ok)
		}
	}
	if fetches != 1 {
		t.Fatalf("fetched %d times", fetches)
	}

	c.clear()
	if c.len() != 0 {
		t.Fatal("clear left entries")
	}
}
