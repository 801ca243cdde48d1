// Package memory provides the host memory that strings cross into.
//
// Strings a mode hands to the host are written into host-owned memory and
// addressed by offset; the host later releases them through its own
// allocator. This package supplies every piece of that path.
//
// # Linear Memory
//
// NewLinear instantiates a memory-only wazero module and wraps its exported
// memory:
//
//	lin, err := memory.NewLinear(ctx, 1)
//	defer lin.Close(ctx)
//	mem := lin.Memory() // implements rofimode.Memory
//
// WrapMemory adapts any wazero api.Memory the same way.
//
// # Heap
//
// Heap is a first-fit allocator over a Memory. Address 0 is never handed
// out so it can serve as the null pointer, and the memory is grown when
// the heap runs out of room:
//
//	heap := memory.NewHeap(mem)
//	ptr, err := heap.Alloc(16, 1)
//	heap.Free(ptr, 16, 1)
//
// # C Strings
//
// WriteCString, ReadCString and FreeCString move NUL-terminated strings
// in and out of a Memory.
package memory
