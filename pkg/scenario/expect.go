package scenario

import (
	"errors"
	"fmt"
	"strings"
)

// AssertionFailure reports an observed value that differs from the
// expected literal. It is the only error that means "the expectation was
// wrong" rather than "the page or driver misbehaved".
type AssertionFailure struct {
	What string
	Want any
	Got  any
}

func (f *AssertionFailure) Error() string {
	return fmt.Sprintf("%s: got %#v, want %#v", f.What, f.Got, f.Want)
}

// IsAssertionFailure reports whether err's chain holds an AssertionFailure.
func IsAssertionFailure(err error) bool {
	var af *AssertionFailure
	return errors.As(err, &af)
}

func expectEqual[T comparable](what string, want, got T) error {
	if got != want {
		return &AssertionFailure{What: what, Want: want, Got: got}
	}
	return nil
}

func expectSuffix(what, suffix, got string) error {
	if !strings.HasSuffix(got, suffix) {
		return &AssertionFailure{What: what, Want: "…" + suffix, Got: got}
	}
	return nil
}
