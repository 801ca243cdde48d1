package mode

import (
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/rofi-mode/errors"
)

// state is the block behind a table's opaque handle.
type state struct {
	mode  Mode
	icons *iconCache
	name  string
}

func newState(name string, m Mode) *state {
	return &state{
		mode:  m,
		icons: newIconCache(),
		name:  name,
	}
}

// Drop runs when the state's handle is removed.
func (s *state) Drop() {
	s.icons.clear()
	if c, ok := s.mode.(io.Closer); ok {
		if err := c.Close(); err != nil {
			Logger().Warn("mode close failed",
				zap.String("mode", s.name),
				zap.Error(err))
		}
	}
	s.mode = nil
}

// state recovers the provider behind t.State. Thunks are the only callers;
// a handle that does not resolve means the host broke the call contract.
func (t *Table) state(slot string) (*state, bool) {
	if t.State == 0 {
		Logger().Warn("slot called without state",
			zap.String("slot", slot),
			zap.Error(errors.NotInitialized(slotPhase(slot), "state of mode "+t.Name)))
		return nil, false
	}
	s, ok := t.states.Get(t.State)
	if !ok {
		Logger().Warn("slot called with stale state",
			zap.String("mode", t.Name),
			zap.String("slot", slot),
			zap.Error(errors.InvalidHandle(slotPhase(slot), t.Name, uint32(t.State))))
		return nil, false
	}
	return s, true
}
