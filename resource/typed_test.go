package resource

import "testing"

type block struct{ n int }

func TestTyped_RoundTrip(t *testing.T) {
	table := NewTable()
	blocks := NewTyped[*block](table, "blocks")

	h := blocks.Insert(&block{n: 7})
	b, ok := blocks.Get(h)
	if !ok || b.n != 7 {
		t.Fatalf("Get = %v, %v", b, ok)
	}

	removed, ok := blocks.Remove(h)
	if !ok || removed.n != 7 {
		t.Fatalf("Remove = %v, %v", removed, ok)
	}
	if _, ok := blocks.Get(h); ok {
		t.Fatal("Get after Remove should fail")
	}
}

func TestTyped_RejectsForeignHandles(t *testing.T) {
	table := NewTable()
	blocks := NewTyped[*block](table, "blocks")
	others := NewTyped[*block](table, "others")
	strs := NewTyped[string](table, "blocks")

	h := others.Insert(&block{n: 1})
	if _, ok := blocks.Get(h); ok {
		t.Fatal("handle of another tag must not resolve")
	}
	if _, ok := blocks.Remove(h); ok {
		t.Fatal("handle of another tag must not be removed")
	}
	if table.Len() != 1 {
		t.Fatal("foreign Remove must leave the entry alone")
	}

	hs := strs.Insert("text")
	if _, ok := blocks.Get(hs); ok {
		t.Fatal("value of another type must not resolve")
	}
	if blocks.Tag() != "blocks" {
		t.Fatal("Tag()")
	}
}
