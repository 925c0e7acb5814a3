// Package errorkit contains the error primitives used across fuzzkit.
package errorkit

import (
	"errors"
	"fmt"
)

// Error is a string based error type, so error kinds can be declared as consts:
//
//	const ErrSomething errorkit.Error = "something is an error"
//
// A const error kind stays comparable with errors.Is even after Wrap or F
// attached situational detail to it.
type Error string

func (err Error) Error() string { return string(err) }

// Wrap bundles another error value under this error kind.
// The result matches both the kind and the wrapped error with errors.Is / errors.As.
func (err Error) Wrap(oth error) error {
	if oth == nil {
		return err
	}
	return wrapper{Owner: err, Wrapped: oth}
}

// F attaches formatted detail to the error kind.
func (err Error) F(format string, a ...any) error { return err.Wrap(fmt.Errorf(format, a...)) }

type wrapper struct {
	Owner   Error
	Wrapped error // must be not nil
}

func (w wrapper) Error() string {
	return fmt.Sprintf("[%s] %s", w.Owner, w.Wrapped.Error())
}

func (w wrapper) As(target any) bool {
	return errors.As(w.Owner, target) || errors.As(w.Wrapped, target)
}

func (w wrapper) Is(target error) bool {
	return errors.Is(w.Owner, target) || errors.Is(w.Wrapped, target)
}
