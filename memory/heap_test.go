package memory

import (
	"testing"
)

func TestHeap_NeverReturnsNull(t *testing.T) {
	heap := NewHeap(newTestLinear(t).Memory())

	ptr, err := heap.Alloc(1, 1)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if ptr == 0 {
		t.Fatal("heap handed out address 0")
	}
}

func TestHeap_Alignment(t *testing.T) {
	heap := NewHeap(newTestLinear(t).Memory())

	if _, err := heap.Alloc(3, 1); err != nil {
		t.Fatal(err)
	}
	for _, align := range []uint32{2, 4, 8, 16} {
		ptr, err := heap.Alloc(5, align)
		if err != nil {
			t.Fatalf("Alloc align %d: %v", align, err)
		}
		if ptr%align != 0 {
			t.Errorf("ptr %d not aligned to %d", ptr, align)
		}
	}

	if _, err := heap.Alloc(4, 3); err == nil {
		t.Error("non power of two alignment should fail")
	}
	if _, err := heap.Alloc(0, 1); err == nil {
		t.Error("zero-sized allocation should fail")
	}
}

func TestHeap_FreeAndReuse(t *testing.T) {
	heap := NewHeap(newTestLinear(t).Memory())

	a, _ := heap.Alloc(16, 1)
	b, _ := heap.Alloc(16, 1)
	c, _ := heap.Alloc(16, 1)
	if heap.Live() != 3 || heap.LiveBytes() != 48 {
		t.Fatalf("Live() = %d, LiveBytes() = %d", heap.Live(), heap.LiveBytes())
	}

	heap.Free(b, 16, 1)
	d, _ := heap.Alloc(8, 1)
	if d != b {
		t.Fatalf("expected first fit at %d, got %d", b, d)
	}

	heap.Free(a, 16, 1)
	heap.Free(c, 16, 1)
	heap.Free(d, 8, 1)
	if heap.Live() != 0 || heap.LiveBytes() != 0 {
		t.Fatalf("leak: Live() = %d, LiveBytes() = %d", heap.Live(), heap.LiveBytes())
	}

	// Everything coalesced back; the next block starts at the base again.
	e, _ := heap.Alloc(4, 1)
	if e != a {
		t.Fatalf("expected %d after full release, got %d", a, e)
	}
}

func TestHeap_InvalidFreeIgnored(t *testing.T) {
	heap := NewHeap(newTestLinear(t).Memory())

	ptr, _ := heap.Alloc(10, 1)
	heap.Free(0, 10, 1)
	heap.Free(ptr+1, 10, 1)
	heap.Free(ptr, 9, 1)
	if heap.Live() != 1 {
		t.Fatal("invalid frees must not release the block")
	}

	heap.Free(ptr, 10, 1)
	heap.Free(ptr, 10, 1)
	if heap.Live() != 0 {
		t.Fatal("double free must be harmless")
	}
	if _, ok := heap.SizeOf(ptr); ok {
		t.Fatal("SizeOf after free")
	}
}

func TestHeap_GrowsMemory(t *testing.T) {
	mem := newTestLinear(t).Memory()
	heap := NewHeap(mem)

	ptr, err := heap.Alloc(PageSize, 8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if mem.Size() < ptr+PageSize {
		t.Fatalf("memory not grown: size %d, block end %d", mem.Size(), ptr+PageSize)
	}
	if err := mem.Write(ptr+PageSize-1, []byte{1}); err != nil {
		t.Fatalf("last byte of block not writable: %v", err)
	}
}
