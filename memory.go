package rofimode

// Memory is the host's addressable memory. Strings handed to the host
// live here; address 0 is the null pointer.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of host memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// MemoryGrower grows host memory by a number of 64KiB pages and returns
// the previous size in pages.
type MemoryGrower interface {
	Grow(pages uint32) (uint32, bool)
}

// Allocator allocates memory on the host's side of the boundary.
// A block returned by Alloc is owned by whoever holds its address;
// it is released with Free using the same size and alignment.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
