package mode

import (
	"sync"

	"github.com/wippyai/rofi-mode/errors"
)

// callGuard detects a slot entered while another one is running.
type callGuard struct {
	mode    string
	active  string
	mu      sync.Mutex
	enabled bool
}

func (g *callGuard) enter(slot string) func() {
	if !g.enabled {
		return func() {}
	}

	g.mu.Lock()
	if g.active != "" {
		active := g.active
		g.mu.Unlock()
		panic(errors.Reentrant(g.mode, slot, active))
	}
	g.active = slot
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		g.active = ""
		g.mu.Unlock()
	}
}
