package fuzzkit

import (
	"errors"
	"reflect"
)

// RuleResolver decides which Rule applies to the property the context points at.
//
// A resolver that cannot find a rule should return ErrRuleNotFound,
// or a nil Rule with a nil error to defer to a wrapping resolver.
// The orchestrator treats a nil result from the outermost resolver as fatal.
type RuleResolver interface {
	ResolveRule(ctx *Context) (Rule, error)
}

// RuleResolverFunc lets an ordinary function act as a RuleResolver.
type RuleResolverFunc func(ctx *Context) (Rule, error)

func (fn RuleResolverFunc) ResolveRule(ctx *Context) (Rule, error) { return fn(ctx) }

// DefaultRuleResolver is the two tier lookup the Fuzzer starts out with:
// first the property rules by (declaring type, property name),
// then the type rules by the property's declared type.
var DefaultRuleResolver RuleResolver = RuleResolverFunc(func(ctx *Context) (Rule, error) {
	if rule, ok := ctx.Fuzzer().lookupRule(ctx.Property()); ok {
		return rule, nil
	}
	return nil, ErrRuleNotFound.F("for %s", ctx.Property())
})

// Constructor creates a fresh value of some type, ready to be fuzzed.
// The returned value must be a pointer to the value under construction.
type Constructor func() (any, error)

// ConstructorRegistry answers whether a type can be constructed without arguments,
// abstracting the reflection based default so a factory-function registry can be
// substituted for types that need special setup.
type ConstructorRegistry interface {
	// LookupConstructor returns the constructor of typ, if typ is constructible.
	LookupConstructor(typ reflect.Type) (Constructor, bool)
}

// Constructors is a ConstructorRegistry backed by explicitly registered factory functions.
// Types without a registered factory fall back to reflection when the zero value will do.
type Constructors struct {
	factories map[reflect.Type]Constructor
}

// Register adds a factory function for typ.
// A later registration for the same type replaces the earlier one.
func (c *Constructors) Register(typ reflect.Type, factory Constructor) {
	if c.factories == nil {
		c.factories = map[reflect.Type]Constructor{}
	}
	c.factories[typ] = factory
}

func (c *Constructors) LookupConstructor(typ reflect.Type) (Constructor, bool) {
	if c != nil && c.factories != nil {
		if factory, ok := c.factories[typ]; ok {
			return factory, true
		}
	}
	return reflectConstructor(typ)
}

// reflectConstructor constructs plain struct types through reflect.New.
// Everything else - interfaces, maps, slices, channels, funcs, primitives,
// and opaque structs without any exported field like time.Time -
// has no meaningful zero-argument construction and defers.
func reflectConstructor(typ reflect.Type) (Constructor, bool) {
	switch typ.Kind() {
	case reflect.Struct:
		if !hasExportedField(typ) {
			return nil, false
		}
		return func() (any, error) {
			return reflect.New(typ).Interface(), nil
		}, true
	case reflect.Ptr:
		if typ.Elem().Kind() != reflect.Struct || !hasExportedField(typ.Elem()) {
			return nil, false
		}
		return func() (any, error) {
			return reflect.New(typ.Elem()).Interface(), nil
		}, true
	default:
		return nil, false
	}
}

// hasExportedField reports whether the struct type has at least one exported field.
// A struct that keeps its whole representation private is an opaque value,
// not an object graph to recurse into.
func hasExportedField(typ reflect.Type) bool {
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).IsExported() {
			return true
		}
	}
	return false
}

// RecursiveRuleResolver decorates another RuleResolver so that a lookup miss on a
// property with a constructible type turns into a rule that builds a fresh value,
// fuzzes it recursively, and assigns it.
//
// This lets a single fuzz pass populate deep object graphs without per type rule
// registration, at the cost of requiring every reachable type to be constructible.
// There is no cycle detection: a self-referential graph without a base-case rule
// recurses until the call stack is exhausted.
type RecursiveRuleResolver struct {
	// Next is the wrapped resolver consulted first.
	Next RuleResolver
	// Registry answers constructibility. Defaults to a reflection based registry
	// that constructs plain struct and pointer-to-struct types.
	Registry ConstructorRegistry
}

func (r RecursiveRuleResolver) ResolveRule(ctx *Context) (Rule, error) {
	next := r.Next
	if next == nil {
		next = DefaultRuleResolver
	}
	rule, err := next.ResolveRule(ctx)
	if err == nil && rule != nil {
		return rule, nil
	}
	if err != nil && !errors.Is(err, ErrRuleNotFound) {
		return nil, err
	}
	constructor, ok := r.lookup(ctx.Property().Type())
	if !ok {
		if err != nil {
			return nil, err
		}
		return nil, nil
	}
	ptrType := ctx.Property().Type().Kind() == reflect.Ptr
	return func(ctx *Context, set Setter) error {
		value, err := constructor()
		if err != nil {
			return err
		}
		if err := ctx.Fuzzer().Fuzz(value, ctx.IncludeEmbedded()); err != nil {
			return err
		}
		if ptrType {
			return set(value)
		}
		return set(reflect.ValueOf(value).Elem().Interface())
	}, nil
}

func (r RecursiveRuleResolver) lookup(typ reflect.Type) (Constructor, bool) {
	if r.Registry != nil {
		return r.Registry.LookupConstructor(typ)
	}
	return reflectConstructor(typ)
}
