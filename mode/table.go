package mode

import (
	"strconv"
	"sync/atomic"

	rofimode "github.com/wippyai/rofi-mode"
	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/errors"
	"github.com/wippyai/rofi-mode/pattern"
	"github.com/wippyai/rofi-mode/resource"
)

// Slot names, as used in logs and errors.
const (
	SlotInit            = "init"
	SlotDestroy         = "destroy"
	SlotGetNumEntries   = "get_num_entries"
	SlotGetDisplayValue = "get_display_value"
	SlotResult          = "result"
	SlotTokenMatch      = "token_match"
	SlotGetIcon         = "get_icon"
)

// Host is the set of host services a table calls back into. The host
// installs it in Table.Host before calling Init.
type Host interface {
	// Memory is where transferred strings are written.
	Memory() rofimode.Memory

	// Allocator allocates transferred strings. The host frees them.
	Allocator() rofimode.Allocator

	// QueryIcon resolves an icon name at a pixel size to an icon handle.
	QueryIcon(name string, size uint32) uint32
}

// Table is the dispatch table the host registers for a mode.
//
// Identity fields and slots are set once by New. Afterwards the adapter
// only writes State (and DisplayName during Init); the host writes Host.
type Table struct {
	ABIVersion  uint32
	Name        string
	NameKey     abi.NameKey
	DisplayName string
	Type        abi.ModeType

	// State is the opaque handle of the live provider, 0 when none.
	State resource.Handle

	Init            func(t *Table) int32
	Destroy         func(t *Table)
	GetNumEntries   func(t *Table) uint32
	GetDisplayValue func(t *Table, line uint32, state *int32, getEntry int32) uint32
	Result          func(t *Table, mretv int32, input *uint32, line uint32) uint32
	TokenMatch      func(t *Table, tokens []*pattern.Pattern, line uint32) int32
	GetIcon         func(t *Table, line uint32, height uint32) uint32

	Host Host

	states *resource.Typed[*state]
	guard  callGuard
}

type config struct {
	states *resource.Table
	guard  bool
}

// Option configures New.
type Option func(*config)

// WithCallGuard panics when a slot is entered while another slot of the
// same table is still running.
func WithCallGuard(enabled bool) Option {
	return func(c *config) {
		c.guard = enabled
	}
}

// WithStateTable stores provider state in table instead of the
// process-wide one.
func WithStateTable(table *resource.Table) Option {
	return func(c *config) {
		c.states = table
	}
}

var (
	states   = resource.NewTable()
	tableSeq atomic.Uint64
)

// States returns the process-wide state table.
func States() *resource.Table {
	return states
}

// stateTag returns a tag unique to one table, so tables sharing a name
// and a state table still cannot resolve each other's handles.
func stateTag(name string) string {
	return name + "#" + strconv.FormatUint(tableSeq.Add(1), 10)
}

// StateTable returns the table this mode's state lives in.
func (t *Table) StateTable() *resource.Table {
	return t.states.Table()
}

// StateTag returns the tag this mode's state is stored under.
func (t *Table) StateTag() string {
	return t.states.Tag()
}

// slotPhase maps a slot to the error phase it reports under.
func slotPhase(slot string) errors.Phase {
	switch slot {
	case SlotInit:
		return errors.PhaseInit
	case SlotDestroy:
		return errors.PhaseDestroy
	case SlotResult:
		return errors.PhaseResult
	case SlotTokenMatch:
		return errors.PhaseMatch
	case SlotGetIcon:
		return errors.PhaseIcon
	default:
		return errors.PhaseDisplay
	}
}

// Build creates the dispatch table for a mode type.
func Build[T Mode](d Descriptor[T], opts ...Option) (*Table, error) {
	if d.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseInit, "mode name cannot be empty")
	}
	if d.Init == nil {
		return nil, errors.NilPointer(errors.PhaseInit, "init function of mode "+d.Name)
	}

	keyText := d.NameKey
	if keyText == "" {
		keyText = "display-" + d.Name
	}
	key, err := abi.MakeNameKey(keyText)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Mode = d.Name
		}
		return nil, err
	}

	display := d.DisplayName
	if display == "" {
		display = d.Name
	}
	d.DisplayName = display

	cfg := config{states: States()}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Table{
		ABIVersion: abi.Version,
		Name:       d.Name,
		NameKey:    key,
		Type:       d.Type,
		states:     resource.NewTyped[*state](cfg.states, stateTag(d.Name)),
	}
	t.guard.enabled = cfg.guard
	t.guard.mode = d.Name

	t.Init = func(t *Table) int32 { return initThunk(t, d) }
	t.Destroy = destroyThunk
	t.GetNumEntries = getNumEntriesThunk
	t.GetDisplayValue = getDisplayValueThunk
	t.Result = resultThunk
	t.TokenMatch = tokenMatchThunk
	t.GetIcon = getIconThunk

	return t, nil
}

// New is like Build but panics on an invalid descriptor. It is meant for
// package-level table declarations.
func New[T Mode](d Descriptor[T], opts ...Option) *Table {
	t, err := Build(d, opts...)
	if err != nil {
		panic(err)
	}
	return t
}
