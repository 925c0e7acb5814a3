package fuzzkit

import "go.llib.dev/fuzzkit/internal/errorkit"

// The closed set of error kinds the engine can fail with.
// Every error returned by fuzzkit wraps one of these,
// so callers can branch with errors.Is at the call site.
const (
	// ErrPropertyNotFound is returned when a property registration names a property
	// that the current property resolver cannot find on the given type.
	ErrPropertyNotFound errorkit.Error = "fuzzkit: property not found"
	// ErrRuleNotFound is returned when rule resolution exhausts the configured
	// resolver chain without finding a fuzzing rule for the current property.
	ErrRuleNotFound errorkit.Error = "fuzzkit: no fuzzing rule found"
	// ErrDuplicateRule is returned by the add-semantics registration calls
	// when a rule is already registered for the given type or property.
	ErrDuplicateRule errorkit.Error = "fuzzkit: duplicate rule registration"
	// ErrAmbiguousEquality is returned when values of two distinct but mutually
	// assignable types are compared and their registered equality rules differ.
	ErrAmbiguousEquality errorkit.Error = "fuzzkit: ambiguous equality configuration"
	// ErrRetryExhausted is returned when the different-value wrapper ran out of
	// attempts without producing a value that differs from the current one.
	ErrRetryExhausted errorkit.Error = "fuzzkit: retry attempts exhausted"
	// ErrAccessDenied is returned when a property value cannot be read or written,
	// for example reading through an accessor property that has no getter.
	ErrAccessDenied errorkit.Error = "fuzzkit: property access denied"
	// ErrInvalidTarget is returned when the fuzzed value is not a non-nil pointer to a struct.
	ErrInvalidTarget errorkit.Error = "fuzzkit: invalid fuzz target"
	// ErrInvalidArgument is returned on nil or otherwise unusable configuration arguments.
	ErrInvalidArgument errorkit.Error = "fuzzkit: invalid argument"
)
