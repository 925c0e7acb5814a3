package fuzzkit

// Setter commits a new value into the property the active Context points at.
type Setter func(value any) error

// Rule produces and commits a new value for a single property.
//
// A rule is expected to call the setter at most once.
// The engine treats rules as stateless, though an implementation is free to
// carry state of its own, for example a counter handing out a fixed sequence.
type Rule func(ctx *Context, set Setter) error

// ValueGenerator produces a new value for the property the context points at.
// It may consult the context for the current value.
type ValueGenerator func(ctx *Context) (any, error)

// NopRule is a rule that leaves the property untouched.
var NopRule Rule = func(ctx *Context, set Setter) error { return nil }

// RuleFromValue creates a rule that assigns the value returned by fn,
// ignoring the fuzzing context.
func RuleFromValue(fn func() any) Rule {
	return func(ctx *Context, set Setter) error { return set(fn()) }
}

// RuleFromGenerator creates a rule that assigns the value produced by gen.
func RuleFromGenerator(gen ValueGenerator) Rule {
	return func(ctx *Context, set Setter) error {
		value, err := gen(ctx)
		if err != nil {
			return err
		}
		return set(value)
	}
}
