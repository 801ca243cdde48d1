package mode

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/errors"
	"github.com/wippyai/rofi-mode/memory"
	"github.com/wippyai/rofi-mode/pattern"
)

func initThunk[T Mode](t *Table, d Descriptor[T]) int32 {
	defer t.guard.enter(SlotInit)()

	t.DisplayName = d.DisplayName

	if t.State != 0 {
		// A second Init without Destroy would leak the first state.
		Logger().Warn("init called on live state, releasing it",
			zap.String("mode", t.Name),
			zap.Uint32("handle", uint32(t.State)))
		t.states.Remove(t.State)
		t.State = 0
	}

	m, err := d.Init()
	if err != nil {
		Logger().Warn("mode unavailable", zap.Error(errors.InitFailed(t.Name, err)))
		return 0
	}

	s := newState(t.Name, m)
	h := t.states.Insert(s)
	if h == 0 {
		s.Drop()
		Logger().Error("state table closed", zap.String("mode", t.Name))
		return 0
	}
	t.State = h

	Logger().Debug("mode initialized",
		zap.String("mode", t.Name),
		zap.Uint32("handle", uint32(h)))
	return 1
}

func destroyThunk(t *Table) {
	defer t.guard.enter(SlotDestroy)()

	if t.State == 0 {
		return
	}
	h := t.State
	if _, ok := t.states.Remove(h); !ok {
		Logger().Warn("destroy of unknown state",
			zap.Error(errors.InvalidHandle(errors.PhaseDestroy, t.Name, uint32(h))))
	}
	t.State = 0

	Logger().Debug("mode destroyed",
		zap.String("mode", t.Name),
		zap.Uint32("handle", uint32(h)))
}

func getNumEntriesThunk(t *Table) uint32 {
	defer t.guard.enter(SlotGetNumEntries)()

	s, ok := t.state(SlotGetNumEntries)
	if !ok {
		return 0
	}
	n := s.mode.NumEntries()
	switch {
	case n < 0:
		return 0
	case uint64(n) > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(n)
}

func getDisplayValueThunk(t *Table, line uint32, state *int32, getEntry int32) uint32 {
	defer t.guard.enter(SlotGetDisplayValue)()

	if state != nil {
		*state = int32(abi.Normal)
	}

	s, ok := t.state(SlotGetDisplayValue)
	if !ok {
		return 0
	}
	text, flags, ok := s.mode.DisplayValue(int(line))
	if !ok {
		return 0
	}
	if state != nil {
		*state = int32(flags)
	}
	if getEntry == 0 {
		return 0
	}
	return t.transfer(SlotGetDisplayValue, text)
}

// transfer writes text into host memory and hands the address over.
func (t *Table) transfer(slot, text string) uint32 {
	if t.Host == nil {
		Logger().Error("no host installed",
			zap.String("slot", slot),
			zap.Error(errors.NotInitialized(errors.PhaseDisplay, "host of mode "+t.Name)))
		return 0
	}
	ptr, err := memory.WriteCString(t.Host.Memory(), t.Host.Allocator(), text)
	if err != nil {
		Logger().Error("string transfer failed",
			zap.String("mode", t.Name),
			zap.String("slot", slot),
			zap.Int("len", len(text)),
			zap.Error(err))
		return 0
	}
	return ptr
}

func resultThunk(t *Table, mretv int32, _ *uint32, line uint32) uint32 {
	defer t.guard.enter(SlotResult)()

	action := abi.MenuReturn(uint32(mretv))
	passthrough := uint32(action & abi.MenuLowerMask)

	s, ok := t.state(SlotResult)
	if !ok {
		return passthrough
	}
	next, ok := s.mode.Result(action, int(line))
	if !ok {
		return passthrough
	}
	return uint32(next)
}

func tokenMatchThunk(t *Table, tokens []*pattern.Pattern, line uint32) int32 {
	defer t.guard.enter(SlotTokenMatch)()

	s, ok := t.state(SlotTokenMatch)
	if !ok {
		return 0
	}

	n := 0
	for n < len(tokens) && tokens[n] != nil {
		n++
	}
	// Capacity is capped so an append by the provider cannot write into
	// the host's array.
	borrowed := tokens[:n:n]

	if s.mode.TokenMatch(borrowed, int(line)) {
		return 1
	}
	return 0
}

func getIconThunk(t *Table, line uint32, height uint32) uint32 {
	defer t.guard.enter(SlotGetIcon)()

	s, ok := t.state(SlotGetIcon)
	if !ok {
		return 0
	}

	key := iconKey{line: line, height: height, scale: iconScale}
	h, _ := s.icons.resolve(key, func() (uint32, bool) {
		query, ok := s.mode.IconQuery(int(line))
		if !ok {
			return 0, false
		}
		if t.Host == nil {
			Logger().Error("no host installed",
				zap.String("slot", SlotGetIcon),
				zap.Error(errors.NotInitialized(errors.PhaseIcon, "host of mode "+t.Name)))
			return 0, false
		}
		return t.Host.QueryIcon(query, height), true
	})
	return h
}
