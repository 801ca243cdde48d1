package mode

import (
	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/pattern"
)

// Mode is implemented by list providers.
//
// Lines are zero-based. Between two host calls the provider must not change
// the set of valid lines; every method is called from the host's loop, one
// at a time.
//
// A provider that also implements io.Closer is closed when the host
// destroys its state.
type Mode interface {
	// NumEntries returns the current number of rows.
	NumEntries() int

	// DisplayValue returns the text and render flags of a row. ok is false
	// when line is out of range.
	DisplayValue(line int) (text string, state abi.EntryState, ok bool)

	// Result handles an action on a row. Returning ok=false leaves the
	// host's default handling in place.
	Result(action abi.MenuReturn, line int) (next abi.ModeMode, ok bool)

	// TokenMatch reports whether a row satisfies the tokens. How tokens
	// combine is up to the provider; pattern.MatchAll gives the host's
	// usual all-tokens behavior. The slice is only valid during the call.
	TokenMatch(patterns []*pattern.Pattern, line int) bool

	// IconQuery returns the icon name to resolve for a row, if any.
	IconQuery(line int) (query string, ok bool)
}

// Descriptor describes a mode type: its identity and how to construct it.
type Descriptor[T Mode] struct {
	// Init constructs the provider. An error means the mode is unavailable.
	Init func() (T, error)

	// Name identifies the mode on the host's command line.
	Name string

	// DisplayName is shown in the host's prompt. Defaults to Name.
	DisplayName string

	// NameKey is the configuration key. Defaults to "display-" + Name.
	NameKey string

	Type abi.ModeType
}
