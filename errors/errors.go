package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInit    Phase = "init"    // provider construction
	PhaseDestroy Phase = "destroy" // state teardown
	PhaseDisplay Phase = "display" // display value transfer
	PhaseResult  Phase = "result"  // action handling
	PhaseMatch   Phase = "match"   // pattern matching
	PhaseIcon    Phase = "icon"    // icon resolution
	PhaseMemory  Phase = "memory"  // host memory access
	PhaseHost    Phase = "host"    // host driving a table
	PhaseParse   Phase = "parse"   // matcher token compilation
)

// Kind categorizes the error
type Kind string

const (
	KindInitFailed     Kind = "init_failed"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindAllocation     Kind = "allocation"
	KindInvalidHandle  Kind = "invalid_handle"
	KindNilPointer     Kind = "nil_pointer"
	KindOverflow       Kind = "overflow"
	KindInvalidPattern Kind = "invalid_pattern"
	KindInvalidInput   Kind = "invalid_input"
	KindNotInitialized Kind = "not_initialized"
	KindReentrant      Kind = "reentrant_call"
	KindClosed         Kind = "closed"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Mode   string
	Slot   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Mode != "" || e.Slot != "" {
		b.WriteString(" in ")
		switch {
		case e.Mode != "" && e.Slot != "":
			b.WriteString(e.Mode)
			b.WriteByte('.')
			b.WriteString(e.Slot)
		case e.Mode != "":
			b.WriteString(e.Mode)
		default:
			b.WriteString(e.Slot)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Mode sets the mode name
func (b *Builder) Mode(name string) *Builder {
	b.err.Mode = name
	return b
}

// Slot sets the dispatch slot name
func (b *Builder) Slot(name string) *Builder {
	b.err.Slot = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InitFailed creates an error for a provider whose constructor failed
func InitFailed(mode string, cause error) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindInitFailed,
		Mode:   mode,
		Detail: "provider init returned an error",
		Cause:  cause,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// InvalidHandle creates an error for a state handle the table does not know
func InvalidHandle(phase Phase, mode string, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Mode:   mode,
		Detail: fmt.Sprintf("state handle %d is not live", handle),
		Value:  handle,
	}
}

// Reentrant creates an error for a slot entered while another call is outstanding
func Reentrant(mode, slot, active string) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindReentrant,
		Mode:   mode,
		Slot:   slot,
		Detail: fmt.Sprintf("entered while %s is still running", active),
	}
}

// InvalidPattern creates an error for a matcher token that does not compile
func InvalidPattern(token string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidPattern,
		Detail: fmt.Sprintf("compile token %q", token),
		Value:  token,
		Cause:  cause,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: what + " is nil",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, limit string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, limit),
		Value:  value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Closed creates an error for use after close
func Closed(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", component),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
