// Package sitreperr defines the error taxonomy shared by every collector
// and client: monitors convert underlying failures into one of these kinds
// before the error crosses the monitor boundary.
package sitreperr

import "fmt"

// Kind classifies an error by how the application shell should react to it.
type Kind string

const (
	// KindBackendUnavailable means the backend is unreachable entirely —
	// the owning monitor's tab is hidden rather than showing an error.
	KindBackendUnavailable Kind = "backend_unavailable"
	// KindTransientIO means a single call failed; the next tick retries.
	KindTransientIO Kind = "transient_io"
	// KindParseError means a row of backend output was malformed; the row
	// is skipped and a warning recorded.
	KindParseError Kind = "parse_error"
	// KindActionFailed means a destructive action returned non-zero; shown
	// as a status message, never retried automatically.
	KindActionFailed Kind = "action_failed"
	// KindTerminalError is fatal: it propagates out of the event loop and
	// triggers controlled shutdown after the terminal is restored.
	KindTerminalError Kind = "terminal_error"
	// KindUserCancelled means a pending action was rejected or expired;
	// handled silently, never surfaced as an error message.
	KindUserCancelled Kind = "user_cancelled"
)

// Error is the typed error every monitor-facing operation returns.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around an existing cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether target is a *Error of the same Kind, enabling
// errors.Is(err, sitreperr.New(sitreperr.KindActionFailed, "")) style checks
// when only the kind matters.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}
