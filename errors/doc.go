// Package errors provides structured error types for the mode adapter.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the mode name, the dispatch slot involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDisplay, errors.KindAllocation).
//		Mode("windows").
//		Slot("get_display_value").
//		Detail("cannot allocate %d bytes", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InitFailed("windows", cause)
//	err := errors.OutOfBounds(errors.PhaseMemory, 70000, 65536)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
