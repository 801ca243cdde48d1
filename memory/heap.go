package memory

import (
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	rofimode "github.com/wippyai/rofi-mode"
	"github.com/wippyai/rofi-mode/errors"
)

// heapBase keeps address 0 out of reach so it can mean null.
const heapBase = 8

// Heap is a first-fit allocator over a Memory. It implements
// rofimode.Allocator and is safe for concurrent use.
type Heap struct {
	mem   rofimode.Memory
	live  map[uint32]uint32
	free  []span
	top   uint32
	bytes uint32
	mu    sync.Mutex
}

type span struct {
	addr uint32
	size uint32
}

// NewHeap creates a heap managing mem from address 8 upward. If mem
// implements rofimode.MemoryGrower the heap grows it on demand.
func NewHeap(mem rofimode.Memory) *Heap {
	return &Heap{
		mem:  mem,
		live: make(map[uint32]uint32),
		top:  heapBase,
	}
}

// Alloc returns the address of a block of size bytes aligned to align.
func (h *Heap) Alloc(size, align uint32) (uint32, error) {
	if size == 0 {
		return 0, errors.InvalidInput(errors.PhaseMemory, "zero-sized allocation")
	}
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidInput(errors.PhaseMemory, "alignment must be a power of two")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if addr, ok := h.takeFree(size, align); ok {
		h.live[addr] = size
		h.bytes += size
		return addr, nil
	}

	addr, ok := alignUp(h.top, align)
	if !ok || uint64(addr)+uint64(size) > math.MaxUint32 {
		return 0, errors.AllocationFailed(errors.PhaseMemory, size, align)
	}
	end := addr + size
	if err := h.ensure(end); err != nil {
		return 0, err
	}
	if addr > h.top {
		h.release(span{addr: h.top, size: addr - h.top})
	}
	h.top = end
	h.live[addr] = size
	h.bytes += size
	return addr, nil
}

// Free releases a block returned by Alloc. Freeing null is a no-op;
// freeing an unknown block or with the wrong size is logged and ignored.
func (h *Heap) Free(ptr, size, _ uint32) {
	if ptr == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	got, ok := h.live[ptr]
	if !ok {
		Logger().Warn("free of unknown block", zap.Uint32("ptr", ptr), zap.Uint32("size", size))
		return
	}
	if got != size {
		Logger().Warn("free with mismatched size",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Uint32("allocated", got))
		return
	}
	delete(h.live, ptr)
	h.bytes -= size
	h.release(span{addr: ptr, size: size})
}

// Live returns the number of outstanding allocations.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// LiveBytes returns the number of bytes in outstanding allocations.
func (h *Heap) LiveBytes() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bytes
}

// SizeOf returns the size of the live block at ptr.
func (h *Heap) SizeOf(ptr uint32) (uint32, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	size, ok := h.live[ptr]
	return size, ok
}

func (h *Heap) takeFree(size, align uint32) (uint32, bool) {
	for i, s := range h.free {
		addr, ok := alignUp(s.addr, align)
		if !ok || uint64(addr)+uint64(size) > uint64(s.addr)+uint64(s.size) {
			continue
		}
		lead := span{addr: s.addr, size: addr - s.addr}
		tail := span{addr: addr + size, size: s.addr + s.size - (addr + size)}

		h.free = append(h.free[:i], h.free[i+1:]...)
		if lead.size > 0 {
			h.insert(lead)
		}
		if tail.size > 0 {
			h.insert(tail)
		}
		return addr, true
	}
	return 0, false
}

// release returns a span to the free list, merging neighbours and
// lowering top when the span ends at it.
func (h *Heap) release(s span) {
	h.insert(s)

	merged := h.free[:0]
	for _, cur := range h.free {
		if n := len(merged); n > 0 && merged[n-1].addr+merged[n-1].size == cur.addr {
			merged[n-1].size += cur.size
			continue
		}
		merged = append(merged, cur)
	}
	h.free = merged

	if n := len(h.free); n > 0 && h.free[n-1].addr+h.free[n-1].size == h.top {
		h.top = h.free[n-1].addr
		h.free = h.free[:n-1]
	}
}

func (h *Heap) insert(s span) {
	i := sort.Search(len(h.free), func(i int) bool { return h.free[i].addr >= s.addr })
	h.free = append(h.free, span{})
	copy(h.free[i+1:], h.free[i:])
	h.free[i] = s
}

// ensure grows the memory until end fits.
func (h *Heap) ensure(end uint32) error {
	sizer, ok := h.mem.(rofimode.MemorySizer)
	if !ok {
		return nil
	}
	size := sizer.Size()
	if end <= size {
		return nil
	}
	grower, ok := h.mem.(rofimode.MemoryGrower)
	if !ok {
		return errors.AllocationFailed(errors.PhaseMemory, end-h.top, 1)
	}
	need := (uint64(end) - uint64(size) + PageSize - 1) / PageSize
	if _, ok := grower.Grow(uint32(need)); !ok {
		return errors.New(errors.PhaseMemory, errors.KindAllocation).
			Detail("cannot grow memory by %d pages", need).
			Build()
	}
	Logger().Debug("heap grew memory", zap.Uint64("pages", need), zap.Uint32("end", end))
	return nil
}

func alignUp(v, align uint32) (uint32, bool) {
	r := (uint64(v) + uint64(align) - 1) &^ (uint64(align) - 1)
	if r > math.MaxUint32 {
		return 0, false
	}
	return uint32(r), true
}
