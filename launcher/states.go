package launcher

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/rofi-mode/resource"
)

// stateLog observes the state table for one mode and logs its state
// lifecycle.
type stateLog struct {
	mode    string
	tag     string
	created int
	dropped int
	mu      sync.Mutex
}

func (s *stateLog) OnResourceEvent(e resource.Event) {
	if e.Tag != s.tag {
		return
	}

	s.mu.Lock()
	switch e.Type {
	case resource.EventCreated:
		s.created++
	case resource.EventDropped:
		s.dropped++
	}
	s.mu.Unlock()

	Logger().Debug("mode state "+e.Type.String(),
		zap.String("mode", s.mode),
		zap.Uint32("handle", uint32(e.Handle)))
}

func (s *stateLog) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created - s.dropped
}
