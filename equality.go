package fuzzkit

import (
	"reflect"

	"go.llib.dev/fuzzkit/internal/reflects"
)

// EqualityFunc reports whether two values should be considered equal
// for the purposes of the different-value guarantee.
type EqualityFunc func(a, b any) bool

func alwaysUnequal(a, b any) bool { return false }

// DifferentValueGenerator wraps value generators so they never produce the value
// the property currently holds.
//
// Equality is decided by per type equality rules with a configurable default.
// Generation is retried up to the configured attempt budget, a generator with a
// non-negligible collision chance (say, picking from a two element set) therefore
// fails deterministically instead of hanging.
type DifferentValueGenerator struct {
	maxAttempts int
	rules       map[reflect.Type]EqualityFunc
	fallback    EqualityFunc
}

// NewDifferentValueGenerator creates a wrapper with the given attempt budget.
// It panics when maxAttempts is not positive.
func NewDifferentValueGenerator(maxAttempts int) *DifferentValueGenerator {
	if maxAttempts < 1 {
		panic(ErrInvalidArgument.F("maxAttempts must be positive, got %d", maxAttempts))
	}
	return &DifferentValueGenerator{
		maxAttempts: maxAttempts,
		rules:       map[reflect.Type]EqualityFunc{},
		fallback:    reflects.Equal,
	}
}

// AddEqualityRule registers a custom equality rule for a type.
// Only one rule can exist per type, re-registration yields ErrDuplicateRule.
func (g *DifferentValueGenerator) AddEqualityRule(typ reflect.Type, fn EqualityFunc) error {
	if typ == nil || fn == nil {
		return ErrInvalidArgument.F("both type and equality rule are required")
	}
	if _, ok := g.rules[typ]; ok {
		return ErrDuplicateRule.F("equality rule already registered for %s", typ)
	}
	g.rules[typ] = fn
	return nil
}

// SetDefaultEqualityRule replaces the predicate used when no per type rule matches.
// The initial default is deep value equality with Equal method support.
func (g *DifferentValueGenerator) SetDefaultEqualityRule(fn EqualityFunc) error {
	if fn == nil {
		return ErrInvalidArgument.F("equality rule is required")
	}
	g.fallback = fn
	return nil
}

// Wrap decorates gen so the returned generator only ever yields values that
// differ from the property's current value.
// When the attempt budget runs out, it fails with ErrRetryExhausted naming the
// exhausted attempt count and the value it was stuck on.
func (g *DifferentValueGenerator) Wrap(gen ValueGenerator) ValueGenerator {
	return func(ctx *Context) (any, error) {
		current, err := ctx.CurrentValue()
		if err != nil {
			return nil, err
		}
		for attempt := 0; attempt < g.maxAttempts; attempt++ {
			candidate, err := gen(ctx)
			if err != nil {
				return nil, err
			}
			equal, err := g.resolveEquality(current, candidate)
			if err != nil {
				return nil, err
			}
			if !equal(current, candidate) {
				return candidate, nil
			}
		}
		return nil, ErrRetryExhausted.F("no value different from %#v after %d attempts", current, g.maxAttempts)
	}
}

// resolveEquality picks the predicate for comparing a and b.
//
// Absent values are never equal to anything, a rule must produce a value even
// when replacing an absent one.
// Values of distinct but mutually assignable types with diverging equality rules
// are a configuration error, not something to silently default.
func (g *DifferentValueGenerator) resolveEquality(a, b any) (EqualityFunc, error) {
	if a == nil || b == nil {
		return alwaysUnequal, nil
	}
	var (
		aType = reflect.TypeOf(a)
		bType = reflect.TypeOf(b)
	)
	if aType == bType {
		if rule, ok := g.rules[aType]; ok {
			return rule, nil
		}
		return g.fallback, nil
	}
	var (
		aRule, aOK = g.rules[aType]
		bRule, bOK = g.rules[bType]
	)
	if aOK == bOK && sameEqualityRule(aRule, bRule) {
		if !aOK {
			return g.fallback, nil
		}
		return aRule, nil
	}
	if aType.AssignableTo(bType) || bType.AssignableTo(aType) {
		return nil, ErrAmbiguousEquality.F(
			"values of types %s and %s are assignable to each other but their equality rules differ; register the same rule for both types",
			aType, bType)
	}
	return alwaysUnequal, nil
}

// sameEqualityRule compares rule identity the way map registrations see it.
func sameEqualityRule(a, b EqualityFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
