// Package fuzzkit assigns new values ("fuzzes") to the properties of object graphs
// through configurable rules, to support property-based and mutation-sensitivity testing.
//
// A Fuzzer discovers the assignable properties of a struct with a PropertyResolver,
// picks a generation rule for each with a RuleResolver,
// and commits the generated values back into the target.
package fuzzkit

import (
	"reflect"

	"go.llib.dev/fuzzkit/internal/reflects"
	"go.uber.org/zap"
)

// Fuzzer drives full mutation passes over objects and owns the rule registrations.
//
// A Fuzzer and its rule tables are not safe for concurrent use:
// passes are strictly sequential and share mutable state with the registration API.
type Fuzzer struct {
	typeRules     map[reflect.Type]Rule
	propertyRules map[propertyMatch]Rule

	propertyResolver PropertyResolver
	ruleResolver     RuleResolver

	logger *zap.Logger
	debug  bool
}

// propertyMatch identifies a property-specific rule registration.
type propertyMatch struct {
	typ  reflect.Type
	name string
}

// New creates a Fuzzer with the field based property resolver
// and the two tier default rule resolver.
func New() *Fuzzer {
	return &Fuzzer{
		typeRules:        map[reflect.Type]Rule{},
		propertyRules:    map[propertyMatch]Rule{},
		propertyResolver: FieldResolver{},
		ruleResolver:     DefaultRuleResolver,
		logger:           zap.NewNop(),
	}
}

// TypeOf returns the reflect.Type of T, a shorthand for rule registrations.
func TypeOf[T any]() reflect.Type { return reflects.TypeOf[T]() }

// Fuzz assigns a new value to every resolved property of obj.
//
// The obj argument must be a non-nil pointer to a struct.
// Promoted members of anonymous embedded structs are included by default,
// pass an explicit false to only fuzz the directly declared fields.
//
// The pass stops at the first failure, properties processed before the failing
// one keep their newly assigned values.
func (f *Fuzzer) Fuzz(obj any, includeEmbedded ...bool) error {
	include := true
	if 0 < len(includeEmbedded) {
		include = includeEmbedded[0]
	}
	target, err := f.target(obj)
	if err != nil {
		return err
	}
	if f.debug {
		f.logger.Debug("fuzzing object",
			zap.String("type", reflects.SymbolicName(obj)),
			zap.Bool("include-embedded", include))
	}
	props, err := f.propertyResolver.Properties(target.Type(), include)
	if err != nil {
		return err
	}
	ctx := &Context{fuzzer: f, target: target, includeEmbedded: include}
	for _, prop := range props {
		ctx.bind(prop)
		if f.debug {
			f.logger.Debug("assigning new value", zap.Stringer("property", prop))
		}
		rule, err := f.ruleResolver.ResolveRule(ctx)
		if err != nil {
			return err
		}
		if rule == nil {
			return ErrRuleNotFound.F("for %s", prop)
		}
		prop := prop
		if err := rule(ctx, func(value any) error { return prop.Set(target, value) }); err != nil {
			return err
		}
	}
	return nil
}

// MustFuzz fuzzes obj like Fuzzer.Fuzz and returns it for chaining.
// It panics on error, which makes it convenient in test arrangement code.
func MustFuzz[T any](f *Fuzzer, obj T, includeEmbedded ...bool) T {
	if err := f.Fuzz(obj, includeEmbedded...); err != nil {
		panic(err)
	}
	return obj
}

func (f *Fuzzer) target(obj any) (reflect.Value, error) {
	if obj == nil {
		return reflect.Value{}, ErrInvalidTarget.F("nil target")
	}
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, ErrInvalidTarget.F("non-nil struct pointer expected, got %T", obj)
	}
	elem := v.Elem()
	if elem.Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget.F("non-nil struct pointer expected, got %T", obj)
	}
	return elem, nil
}

// lookupRule performs the two tier lookup backing DefaultRuleResolver:
// exact property match first, declared type second.
func (f *Fuzzer) lookupRule(prop Property) (Rule, bool) {
	if rule, ok := f.propertyRules[propertyMatch{typ: prop.DeclaringType(), name: prop.Name()}]; ok {
		return rule, true
	}
	if rule, ok := f.typeRules[prop.Type()]; ok {
		return rule, true
	}
	return nil, false
}

// AddTypeRule registers a rule for every given type.
// Only one rule can exist per type, re-registration yields ErrDuplicateRule.
// Use SetTypeRule to overwrite an existing registration.
func (f *Fuzzer) AddTypeRule(rule Rule, types ...reflect.Type) error {
	if rule == nil {
		return ErrInvalidArgument.F("rule is required")
	}
	if len(types) == 0 {
		return ErrInvalidArgument.F("at least one type is required")
	}
	for _, typ := range types {
		if typ == nil {
			return ErrInvalidArgument.F("type is required")
		}
		if _, ok := f.typeRules[typ]; ok {
			return ErrDuplicateRule.F("type rule already registered for %s", typ)
		}
		f.typeRules[typ] = rule
	}
	return nil
}

// SetTypeRule registers a rule for a type, silently replacing any earlier registration.
func (f *Fuzzer) SetTypeRule(rule Rule, typ reflect.Type) error {
	if rule == nil || typ == nil {
		return ErrInvalidArgument.F("both rule and type are required")
	}
	f.typeRules[typ] = rule
	return nil
}

// AddPropertyRule registers a rule for a named property of a type.
// The property must exist according to the current property resolver,
// a registration naming a missing property yields ErrPropertyNotFound immediately.
// Only one rule can exist per property, re-registration yields ErrDuplicateRule.
func (f *Fuzzer) AddPropertyRule(typ reflect.Type, name string, rule Rule) error {
	key, err := f.newPropertyMatch(typ, name, rule)
	if err != nil {
		return err
	}
	if _, ok := f.propertyRules[key]; ok {
		return ErrDuplicateRule.F("property rule already registered for %s.%s", typ, name)
	}
	f.propertyRules[key] = rule
	return nil
}

// SetPropertyRule registers a rule for a named property of a type,
// silently replacing any earlier registration.
// The property existence validation of AddPropertyRule applies here too.
func (f *Fuzzer) SetPropertyRule(typ reflect.Type, name string, rule Rule) error {
	key, err := f.newPropertyMatch(typ, name, rule)
	if err != nil {
		return err
	}
	f.propertyRules[key] = rule
	return nil
}

func (f *Fuzzer) newPropertyMatch(typ reflect.Type, name string, rule Rule) (propertyMatch, error) {
	if rule == nil {
		return propertyMatch{}, ErrInvalidArgument.F("rule is required")
	}
	if typ == nil || name == "" {
		return propertyMatch{}, ErrInvalidArgument.F("both type and property name are required")
	}
	for _, include := range []bool{false, true} {
		props, err := f.propertyResolver.Properties(typ, include)
		if err != nil {
			return propertyMatch{}, err
		}
		for _, prop := range props {
			if prop.Name() == name && prop.DeclaringType() == typ {
				return propertyMatch{typ: typ, name: name}, nil
			}
		}
	}
	return propertyMatch{}, ErrPropertyNotFound.F("%s has no property named %q", typ, name)
}

// ClearRules removes all property and type rule registrations.
// Caches held by resolver decorators are unaffected, clear those separately.
func (f *Fuzzer) ClearRules() {
	f.ClearPropertyRules()
	f.ClearTypeRules()
}

// ClearPropertyRules removes all property rule registrations.
func (f *Fuzzer) ClearPropertyRules() {
	f.propertyRules = map[propertyMatch]Rule{}
}

// ClearTypeRules removes all type rule registrations.
func (f *Fuzzer) ClearTypeRules() {
	f.typeRules = map[reflect.Type]Rule{}
}

// SetPropertyResolver swaps the property discovery strategy.
func (f *Fuzzer) SetPropertyResolver(resolver PropertyResolver) error {
	if resolver == nil {
		return ErrInvalidArgument.F("property resolver is required")
	}
	f.propertyResolver = resolver
	return nil
}

// PropertyResolver returns the current property discovery strategy.
func (f *Fuzzer) PropertyResolver() PropertyResolver { return f.propertyResolver }

// SetRuleResolver swaps the rule lookup strategy.
func (f *Fuzzer) SetRuleResolver(resolver RuleResolver) error {
	if resolver == nil {
		return ErrInvalidArgument.F("rule resolver is required")
	}
	f.ruleResolver = resolver
	return nil
}

// RuleResolver returns the current rule lookup strategy.
func (f *Fuzzer) RuleResolver() RuleResolver { return f.ruleResolver }

// SetDebug toggles the per property trace output.
// The trace is purely observational and has no behavioral effect.
func (f *Fuzzer) SetDebug(debug bool) { f.debug = debug }

// SetLogger replaces the logger the debug trace is written to.
// The zero setup writes to a no-op logger.
func (f *Fuzzer) SetLogger(logger *zap.Logger) error {
	if logger == nil {
		return ErrInvalidArgument.F("logger is required")
	}
	f.logger = logger
	return nil
}
