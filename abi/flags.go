package abi

import (
	"strconv"
	"strings"
)

// Version is the dispatch table ABI version the host checks on load.
const Version uint32 = 7

// MenuReturn is the action bitmask the host passes to a mode's result slot.
type MenuReturn uint32

const (
	MenuOK            MenuReturn = 0x00010000
	MenuCancel        MenuReturn = 0x00020000
	MenuNext          MenuReturn = 0x00040000
	MenuCustomInput   MenuReturn = 0x00080000
	MenuEntryDelete   MenuReturn = 0x00100000
	MenuQuickSwitch   MenuReturn = 0x00200000
	MenuPrevious      MenuReturn = 0x00400000
	MenuCustomCommand MenuReturn = 0x00800000
	MenuComplete      MenuReturn = 0x01000000
	MenuCustomAction  MenuReturn = 0x10000000

	// MenuLowerMask selects the bits the host uses for indices (custom
	// key number, quick switch target). They pass through untouched when
	// a provider does not override an action.
	MenuLowerMask MenuReturn = 0x0000FFFF
)

var menuNames = []struct {
	bit  MenuReturn
	name string
}{
	{MenuOK, "ok"},
	{MenuCancel, "cancel"},
	{MenuNext, "next"},
	{MenuCustomInput, "custom-input"},
	{MenuEntryDelete, "entry-delete"},
	{MenuQuickSwitch, "quick-switch"},
	{MenuPrevious, "previous"},
	{MenuCustomCommand, "custom-command"},
	{MenuComplete, "complete"},
	{MenuCustomAction, "custom-action"},
}

// Has reports whether all bits of flag are set.
func (m MenuReturn) Has(flag MenuReturn) bool {
	return flag != 0 && m&flag == flag
}

// Lower returns the index bits carried alongside the action.
func (m MenuReturn) Lower() uint32 {
	return uint32(m & MenuLowerMask)
}

// Action returns the action bits with the lower mask cleared.
func (m MenuReturn) Action() MenuReturn {
	return m &^ MenuLowerMask
}

func (m MenuReturn) String() string {
	var parts []string
	for _, n := range menuNames {
		if m.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "none")
	}
	s := strings.Join(parts, "|")
	if low := m.Lower(); low != 0 {
		s += "+" + itoa(low)
	}
	return s
}

// EntryState is the render state bitmask for one row.
type EntryState uint32

const (
	Normal    EntryState = 0
	Urgent    EntryState = 1
	Active    EntryState = 2
	Selected  EntryState = 4
	Markup    EntryState = 8
	Alt       EntryState = 16
	Highlight EntryState = 32

	// FmodMask separates the alternate-row and highlight bits from the
	// selection state bits.
	FmodMask EntryState = 48
)

// Has reports whether all bits of flag are set.
func (s EntryState) Has(flag EntryState) bool {
	return flag != 0 && s&flag == flag
}

// State returns s without the bits covered by FmodMask.
func (s EntryState) State() EntryState {
	return s &^ FmodMask
}

func (s EntryState) String() string {
	if s == Normal {
		return "normal"
	}
	var parts []string
	for _, n := range []struct {
		bit  EntryState
		name string
	}{
		{Urgent, "urgent"},
		{Active, "active"},
		{Selected, "selected"},
		{Markup, "markup"},
		{Alt, "alt"},
		{Highlight, "highlight"},
	} {
		if s.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ModeMode is the next-mode code returned from a result slot.
type ModeMode uint32

const (
	ModeExit           ModeMode = 1000
	ModeNextDialog     ModeMode = 1001
	ModeReloadDialog   ModeMode = 1002
	ModePreviousDialog ModeMode = 1003
	ModeResetDialog    ModeMode = 1004
)

func (m ModeMode) String() string {
	switch m {
	case ModeExit:
		return "exit"
	case ModeNextDialog:
		return "next-dialog"
	case ModeReloadDialog:
		return "reload-dialog"
	case ModePreviousDialog:
		return "previous-dialog"
	case ModeResetDialog:
		return "reset-dialog"
	default:
		return "mode(" + itoa(uint32(m)) + ")"
	}
}

// ModeType tells the host how a mode may be used.
type ModeType uint32

const (
	ModeTypeUnset     ModeType = 0
	ModeTypeSwitcher  ModeType = 1
	ModeTypeCompleter ModeType = 2
	ModeTypeDmenu     ModeType = 4
)

func (t ModeType) String() string {
	switch t {
	case ModeTypeUnset:
		return "unset"
	case ModeTypeSwitcher:
		return "switcher"
	case ModeTypeCompleter:
		return "completer"
	case ModeTypeDmenu:
		return "dmenu"
	default:
		return "type(" + itoa(uint32(t)) + ")"
	}
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
