package launcher

import (
	"context"
	"sync"

	"go.uber.org/zap"

	rofimode "github.com/wippyai/rofi-mode"
	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/errors"
	"github.com/wippyai/rofi-mode/memory"
	"github.com/wippyai/rofi-mode/mode"
	"github.com/wippyai/rofi-mode/pattern"
	"github.com/wippyai/rofi-mode/resource"
)

// DefaultPages is the initial size of the host memory.
const DefaultPages = 1

// Row is one rendered entry.
type Row struct {
	Text  string
	State abi.EntryState
}

type config struct {
	icons *IconStore
	match pattern.Options
	pages uint32
}

// Option configures Open.
type Option func(*config)

// WithPages sets the initial host memory size in 64 KiB pages.
func WithPages(pages uint32) Option {
	return func(c *config) {
		c.pages = pages
	}
}

// WithIconStore resolves icons through store instead of a private one.
func WithIconStore(store *IconStore) Option {
	return func(c *config) {
		c.icons = store
	}
}

// WithMatchOptions sets how Filter turns a query into patterns.
func WithMatchOptions(opts pattern.Options) Option {
	return func(c *config) {
		c.match = opts
	}
}

// host is what the table sees through mode.Host.
type host struct {
	mem   *memory.Wrapper
	heap  *memory.Heap
	icons *IconStore
}

func (h *host) Memory() rofimode.Memory       { return h.mem }
func (h *host) Allocator() rofimode.Allocator { return h.heap }

func (h *host) QueryIcon(name string, size uint32) uint32 {
	return h.icons.QueryIcon(name, size)
}

// Launcher drives one initialized mode table.
type Launcher struct {
	table  *mode.Table
	linear *memory.Linear
	host   *host
	states *stateLog
	match  pattern.Options
	mu     sync.Mutex
	closed bool
}

// Open installs host services into table and initializes it.
func Open(ctx context.Context, table *mode.Table, opts ...Option) (*Launcher, error) {
	if table == nil {
		return nil, errors.NilPointer(errors.PhaseHost, "mode table")
	}
	if table.ABIVersion != abi.Version {
		return nil, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Mode(table.Name).
			Value(table.ABIVersion).
			Detail("abi version %d, host speaks %d", table.ABIVersion, abi.Version).
			Build()
	}
	if table.Init == nil || table.Destroy == nil {
		return nil, errors.NilPointer(errors.PhaseHost, "lifecycle slot of mode "+table.Name)
	}

	if table.State != 0 || table.Host != nil {
		return nil, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Mode(table.Name).
			Value(uint32(table.State)).
			Detail("table already open").
			Build()
	}

	cfg := config{pages: DefaultPages}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.icons == nil {
		cfg.icons = NewIconStore()
	}

	linear, err := memory.NewLinear(ctx, cfg.pages)
	if err != nil {
		return nil, err
	}

	h := &host{
		mem:   linear.Memory(),
		heap:  memory.NewHeap(linear.Memory()),
		icons: cfg.icons,
	}
	table.Host = h

	states := &stateLog{mode: table.Name, tag: table.StateTag()}
	table.StateTable().Subscribe(states)

	if table.Init(table) == 0 {
		table.StateTable().Unsubscribe(states)
		table.Host = nil
		_ = linear.Close(ctx)
		return nil, errors.New(errors.PhaseInit, errors.KindInitFailed).
			Mode(table.Name).
			Slot(mode.SlotInit).
			Detail("mode is unavailable").
			Build()
	}

	Logger().Debug("mode opened",
		zap.String("mode", table.Name),
		zap.String("display", table.DisplayName),
		zap.Stringer("type", table.Type))

	return &Launcher{
		table:  table,
		linear: linear,
		host:   h,
		states: states,
		match:  cfg.match,
	}, nil
}

// Table returns the table being driven.
func (l *Launcher) Table() *mode.Table {
	return l.table
}

// Icons returns the store icons are resolved through.
func (l *Launcher) Icons() *IconStore {
	return l.host.icons
}

// Heap returns the allocator transferred strings come from.
func (l *Launcher) Heap() *memory.Heap {
	return l.host.heap
}

// LiveStates returns how many states of the table were created and not
// yet dropped while this launcher was open.
func (l *Launcher) LiveStates() int {
	return l.states.live()
}

// Count returns the number of entries.
func (l *Launcher) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0
	}
	return int(l.table.GetNumEntries(l.table))
}

// Entry returns the text and state of line. ok is false when the mode
// produced no text for it.
func (l *Launcher) Entry(line int) (row Row, ok bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return Row{}, false, errors.Closed(errors.PhaseHost, "launcher")
	}
	if line < 0 {
		return Row{}, false, errors.OutOfBounds(errors.PhaseDisplay, line, int(l.table.GetNumEntries(l.table)))
	}

	var flags int32
	ptr := l.table.GetDisplayValue(l.table, uint32(line), &flags, 1)
	row.State = abi.EntryState(uint32(flags))
	if ptr == 0 {
		return row, false, nil
	}

	text, err := memory.TakeCString(l.host.mem, l.host.heap, ptr)
	if err != nil {
		return row, false, err
	}
	row.Text = text
	return row, true, nil
}

// State returns only the flags of line. No string is transferred.
func (l *Launcher) State(line int) abi.EntryState {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || line < 0 {
		return abi.Normal
	}
	var flags int32
	l.table.GetDisplayValue(l.table, uint32(line), &flags, 0)
	return abi.EntryState(uint32(flags))
}

// Filter returns the lines whose entries match query.
func (l *Launcher) Filter(query string) ([]int, error) {
	patterns, err := pattern.Tokenize(query, l.match)
	if err != nil {
		return nil, err
	}
	return l.FilterPatterns(patterns)
}

// FilterPatterns returns the lines TokenMatch accepts for patterns.
func (l *Launcher) FilterPatterns(patterns []*pattern.Pattern) ([]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, errors.Closed(errors.PhaseHost, "launcher")
	}

	// The table reads up to the terminator.
	tokens := make([]*pattern.Pattern, len(patterns)+1)
	copy(tokens, patterns)

	n := int(l.table.GetNumEntries(l.table))
	matches := make([]int, 0, n)
	for line := 0; line < n; line++ {
		if l.table.TokenMatch(l.table, tokens, uint32(line)) != 0 {
			matches = append(matches, line)
		}
	}
	return matches, nil
}

// Select reports an action on line and returns the mode's answer. Without
// an override that is the action's low-order bits.
func (l *Launcher) Select(action abi.MenuReturn, line int) abi.ModeMode {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return abi.ModeExit
	}
	next := abi.ModeMode(l.table.Result(l.table, int32(uint32(action)), nil, uint32(line)))
	Logger().Debug("result",
		zap.String("mode", l.table.Name),
		zap.Stringer("action", action),
		zap.Int("line", line),
		zap.Stringer("next", next))
	return next
}

// Icon returns the icon uid for line at height, 0 when it has none.
func (l *Launcher) Icon(line int, height uint32) uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || line < 0 {
		return 0
	}
	return l.table.GetIcon(l.table, uint32(line), height)
}

// Close destroys the mode state and releases the host memory.
func (l *Launcher) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	l.table.Destroy(l.table)
	l.table.Host = nil
	l.table.StateTable().Unsubscribe(l.states)

	var leaked int
	tag := l.table.StateTag()
	l.table.StateTable().Each(func(_ resource.Handle, t string, _ any) bool {
		if t == tag {
			leaked++
		}
		return true
	})
	if leaked > 0 {
		Logger().Warn("mode states still live at close",
			zap.String("mode", l.table.Name),
			zap.Int("count", leaked))
	}

	if live := l.host.heap.Live(); live > 0 {
		Logger().Warn("host strings still allocated at close",
			zap.String("mode", l.table.Name),
			zap.Int("count", live),
			zap.Uint32("bytes", l.host.heap.LiveBytes()))
	}

	Logger().Debug("mode closed", zap.String("mode", l.table.Name))
	return l.linear.Close(ctx)
}
