// Package lines is a dmenu-style mode over a fixed list of text lines.
//
// A line may carry row options after a NUL byte, as key/value pairs
// separated by 0x1f:
//
//	firefox\x00icon\x1ffirefox\x1fmeta\x1fbrowser web
//
// Known keys are icon, meta (extra text matched by patterns but not shown),
// urgent, active and markup. Unknown keys are ignored.
package lines

import (
	"bufio"
	"io"
	"strings"

	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/errors"
	"github.com/wippyai/rofi-mode/mode"
	"github.com/wippyai/rofi-mode/pattern"
)

const (
	optionStart = "\x00"
	optionSep   = "\x1f"
)

// Entry is one parsed line.
type Entry struct {
	Text  string
	Icon  string
	Meta  string
	State abi.EntryState
}

// Mode serves a list of entries and remembers what was picked.
type Mode struct {
	entries  []Entry
	selected int
	input    abi.MenuReturn
	closed   bool
}

// New creates a mode over entries.
func New(entries []Entry) *Mode {
	return &Mode{entries: entries, selected: -1}
}

// Read parses one entry per line of r.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		entries = append(entries, Parse(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseInit, errors.KindInvalidInput, err, "read lines")
	}
	return entries, nil
}

// Parse splits a line into its text and row options.
func Parse(line string) Entry {
	text, opts, found := strings.Cut(line, optionStart)
	e := Entry{Text: text}
	if !found {
		return e
	}

	fields := strings.Split(opts, optionSep)
	for i := 0; i+1 < len(fields); i += 2 {
		key, value := fields[i], fields[i+1]
		switch key {
		case "icon":
			e.Icon = value
		case "meta":
			e.Meta = value
		case "urgent":
			e.State = setFlag(e.State, abi.Urgent, value)
		case "active":
			e.State = setFlag(e.State, abi.Active, value)
		case "markup":
			e.State = setFlag(e.State, abi.Markup, value)
		}
	}
	return e
}

func setFlag(s, flag abi.EntryState, value string) abi.EntryState {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return s | flag
	}
	return s &^ flag
}

// Descriptor returns a dmenu-type descriptor whose Init serves entries.
func Descriptor(name string, entries []Entry) mode.Descriptor[*Mode] {
	return mode.Descriptor[*Mode]{
		Name: name,
		Type: abi.ModeTypeDmenu,
		Init: func() (*Mode, error) {
			return New(entries), nil
		},
	}
}

// NumEntries implements mode.Mode.
func (m *Mode) NumEntries() int {
	return len(m.entries)
}

// DisplayValue implements mode.Mode.
func (m *Mode) DisplayValue(line int) (string, abi.EntryState, bool) {
	if line < 0 || line >= len(m.entries) {
		return "", abi.Normal, false
	}
	e := m.entries[line]
	state := e.State
	if line == m.selected {
		state |= abi.Selected
	}
	return e.Text, state, true
}

// Result implements mode.Mode. Accepting or cancelling ends the dialog;
// other actions keep the host's default.
func (m *Mode) Result(action abi.MenuReturn, line int) (abi.ModeMode, bool) {
	switch {
	case action.Has(abi.MenuOK):
		if line >= 0 && line < len(m.entries) {
			m.selected = line
		}
		m.input = action
		return abi.ModeExit, true
	case action.Has(abi.MenuCustomInput), action.Has(abi.MenuCancel):
		m.input = action
		return abi.ModeExit, true
	}
	return 0, false
}

// TokenMatch implements mode.Mode. Every pattern must match the text or
// the meta field.
func (m *Mode) TokenMatch(patterns []*pattern.Pattern, line int) bool {
	if line < 0 || line >= len(m.entries) {
		return false
	}
	e := m.entries[line]
	for _, p := range patterns {
		if p == nil {
			break
		}
		if p.Match(e.Text) {
			continue
		}
		if e.Meta != "" && !p.Invert && p.Match(e.Meta) {
			continue
		}
		return false
	}
	return true
}

// IconQuery implements mode.Mode.
func (m *Mode) IconQuery(line int) (string, bool) {
	if line < 0 || line >= len(m.entries) || m.entries[line].Icon == "" {
		return "", false
	}
	return m.entries[line].Icon, true
}

// Selected returns the accepted line, if any.
func (m *Mode) Selected() (Entry, bool) {
	if m.selected < 0 {
		return Entry{}, false
	}
	return m.entries[m.selected], true
}

// LastAction returns the last action that ended the dialog.
func (m *Mode) LastAction() abi.MenuReturn {
	return m.input
}

// Close implements io.Closer.
func (m *Mode) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether the host destroyed this mode.
func (m *Mode) Closed() bool {
	return m.closed
}
