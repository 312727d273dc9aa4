/*
Package shared holds the building blocks every bounded context of the service relies on:
aggregate markers, error categories with stack capture, and the in-process domain event bus.

Domain errors follow two rules:
 1. A sentinel error below identifies the category, so callers use errors.Is.
 2. The concrete error of each context captures the call stack when it is built
    (CaptureStack) and exposes it through Stacker; the stack is only formatted when
    the API layer logs it.

Domain errors never carry transport concepts such as HTTP status codes.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput input rejected by a domain rule
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState operation not permitted in the current lifecycle state
	ErrInvalidState = errors.New("invalid state")
)

// CaptureStack records the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack and the error constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders at most eleven frames, runtime frames excluded.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// Stacker is implemented by errors that can report where they were raised.
type Stacker interface {
	Stack() []string
}
