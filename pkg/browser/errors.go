package browser

import (
	"errors"
	"fmt"
)

// Kind classifies a driver-side fault. Every Kind is fatal to the scenario
// that hit it and is reported separately from assertion failures.
type Kind int

const (
	KindEnvironment Kind = iota + 1
	KindNavigation
	KindLocate
	KindTimeout
	KindModalBlocking
)

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrEnvironment   = errors.New("browser environment unavailable")
	ErrNavigation    = errors.New("navigation failed")
	ErrLocate        = errors.New("element not located")
	ErrTimeout       = errors.New("wait timed out")
	ErrModalBlocking = errors.New("native dialog is blocking the page")
)

// ErrNoDialog is returned by Session.Dialog when no dialog is open.
var ErrNoDialog = errors.New("no dialog is open")

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindNavigation:
		return "navigation"
	case KindLocate:
		return "locate"
	case KindTimeout:
		return "timeout"
	case KindModalBlocking:
		return "modal-blocking"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindEnvironment:
		return ErrEnvironment
	case KindNavigation:
		return ErrNavigation
	case KindLocate:
		return ErrLocate
	case KindTimeout:
		return ErrTimeout
	case KindModalBlocking:
		return ErrModalBlocking
	}
	return nil
}

// Error is a classified driver fault.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "navigate"
	Msg  string // optional detail, e.g. the selector
	Err  error  // underlying driver error, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": "
	if s := e.Kind.sentinel(); s != nil {
		msg += s.Error()
	} else {
		msg += e.Kind.String()
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func newError(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}
