package memory

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/rofi-mode/errors"
)

// PageSize is the size of one linear memory page.
const PageSize = 65536

// WrapMemory wraps a wazero api.Memory. It returns nil for a nil memory.
func WrapMemory(mem api.Memory) *Wrapper {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to rofimode.Memory, MemorySizer and
// MemoryGrower.
type Wrapper struct {
	Mem api.Memory
}

// Read reads bytes from memory. The returned slice is a copy.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, outOfBounds("read", offset, uint64(length))
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write writes bytes to memory.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return outOfBounds("write", offset, uint64(len(data)))
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// Grow adds pages to the memory and returns the previous size in pages.
func (m *Wrapper) Grow(pages uint32) (uint32, bool) {
	return m.Mem.Grow(pages)
}

func outOfBounds(op string, offset uint32, length uint64) *errors.Error {
	return errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
		Value(offset).
		Detail("memory %s out of bounds: offset=%d, length=%d", op, offset, length).
		Build()
}
