package memory

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/rofi-mode/errors"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory".
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory"
	0x02, 0x00, // kind: memory, index 0
}

// Linear is a standalone linear memory backed by a wazero runtime.
type Linear struct {
	rt  wazero.Runtime
	mem *Wrapper
}

// NewLinear creates a linear memory of at least pages pages.
func NewLinear(ctx context.Context, pages uint32) (*Linear, error) {
	if pages == 0 {
		pages = 1
	}

	rt := wazero.NewRuntime(ctx)
	compiled, err := rt.CompileModule(ctx, memoryWASM)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseMemory, errors.KindAllocation, err, "compile memory module")
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseMemory, errors.KindAllocation, err, "instantiate memory module")
	}

	mem := WrapMemory(mod.ExportedMemory("memory"))
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.NilPointer(errors.PhaseMemory, "exported memory")
	}

	if pages > 1 {
		if _, ok := mem.Grow(pages - 1); !ok {
			_ = rt.Close(ctx)
			return nil, errors.New(errors.PhaseMemory, errors.KindAllocation).
				Detail("cannot grow linear memory to %d pages", pages).
				Build()
		}
	}

	return &Linear{rt: rt, mem: mem}, nil
}

// Memory returns the wrapped memory.
func (l *Linear) Memory() *Wrapper {
	return l.mem
}

// Close releases the runtime and the memory with it.
func (l *Linear) Close(ctx context.Context) error {
	return l.rt.Close(ctx)
}
