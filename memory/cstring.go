package memory

import (
	"strings"

	rofimode "github.com/wippyai/rofi-mode"
	"github.com/wippyai/rofi-mode/errors"
)

// MaxCStringSize bounds how far ReadCString scans for a terminator.
const MaxCStringSize = 1 << 20

const scanChunk = 64

// WriteCString copies s plus a terminating NUL into a fresh block from
// alloc and returns its address. The caller owns the block; it spans
// len(s)+1 bytes with alignment 1. Strings containing NUL are rejected.
func WriteCString(mem rofimode.Memory, alloc rofimode.Allocator, s string) (uint32, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return 0, errors.New(errors.PhaseMemory, errors.KindInvalidInput).
			Detail("string contains NUL at byte %d", i).
			Build()
	}
	if len(s) >= MaxCStringSize {
		return 0, errors.Overflow(errors.PhaseMemory, len(s), "maximum C string size")
	}

	size := uint32(len(s)) + 1
	ptr, err := alloc.Alloc(size, 1)
	if err != nil {
		return 0, errors.New(errors.PhaseMemory, errors.KindAllocation).
			Detail("failed to allocate %d bytes for string", size).
			Cause(err).
			Build()
	}

	buf := make([]byte, size)
	copy(buf, s)
	if err := mem.Write(ptr, buf); err != nil {
		alloc.Free(ptr, size, 1)
		return 0, err
	}
	return ptr, nil
}

// ReadCString reads the NUL-terminated string at ptr.
func ReadCString(mem rofimode.Memory, ptr uint32) (string, error) {
	if ptr == 0 {
		return "", errors.NilPointer(errors.PhaseMemory, "string pointer")
	}

	var limit uint64 = uint64(ptr) + MaxCStringSize
	if sizer, ok := mem.(rofimode.MemorySizer); ok && uint64(sizer.Size()) < limit {
		limit = uint64(sizer.Size())
	}

	var b strings.Builder
	for off := uint64(ptr); off < limit; {
		n := uint64(scanChunk)
		if off+n > limit {
			n = limit - off
		}
		chunk, err := mem.Read(uint32(off), uint32(n))
		if err != nil {
			return "", err
		}
		for i, c := range chunk {
			if c == 0 {
				b.Write(chunk[:i])
				return b.String(), nil
			}
		}
		b.Write(chunk)
		off += n
	}
	return "", errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
		Detail("no terminator within %d bytes of %d", limit-uint64(ptr), ptr).
		Value(ptr).
		Build()
}

// FreeCString releases a string written by WriteCString.
func FreeCString(mem rofimode.Memory, alloc rofimode.Allocator, ptr uint32) error {
	if ptr == 0 {
		return nil
	}
	s, err := ReadCString(mem, ptr)
	if err != nil {
		return err
	}
	alloc.Free(ptr, uint32(len(s))+1, 1)
	return nil
}

// TakeCString reads the string at ptr and releases it, as a host does
// with strings a mode hands over.
func TakeCString(mem rofimode.Memory, alloc rofimode.Allocator, ptr uint32) (string, error) {
	s, err := ReadCString(mem, ptr)
	if err != nil {
		return "", err
	}
	alloc.Free(ptr, uint32(len(s))+1, 1)
	return s, nil
}
