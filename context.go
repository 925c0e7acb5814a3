package fuzzkit

import "reflect"

// Context is the single-property-scoped view a Rule receives while fuzzing.
//
// One Context is created per Fuzz call and rebound to each property in turn,
// so references to it must not be retained beyond the rule invocation.
type Context struct {
	fuzzer          *Fuzzer
	target          reflect.Value
	includeEmbedded bool

	prop Property

	// current value is read lazily and at most once per property binding
	value     any
	valueErr  error
	valueRead bool
}

// Fuzzer returns the orchestrator driving the current pass.
func (ctx *Context) Fuzzer() *Fuzzer { return ctx.fuzzer }

// Property returns the property that is currently being fuzzed.
func (ctx *Context) Property() Property { return ctx.prop }

// IncludeEmbedded reports whether the active pass resolves promoted members
// of anonymous embedded structs as well.
func (ctx *Context) IncludeEmbedded() bool { return ctx.includeEmbedded }

// CurrentValue reads the current value of the property being fuzzed.
// The value is read on first use and memoized until the context moves on
// to the next property.
func (ctx *Context) CurrentValue() (any, error) {
	if !ctx.valueRead {
		ctx.value, ctx.valueErr = ctx.prop.Get(ctx.target)
		ctx.valueRead = true
	}
	return ctx.value, ctx.valueErr
}

// bind moves the context on to the next property of the pass.
func (ctx *Context) bind(prop Property) {
	ctx.prop = prop
	ctx.value = nil
	ctx.valueErr = nil
	ctx.valueRead = false
}
