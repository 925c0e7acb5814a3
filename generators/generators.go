// Package generators provides the default value generators for fuzzkit
// and wires them up as type rules.
package generators

import (
	"math"
	"time"

	"github.com/Pallinder/go-randomdata"
	uuid "github.com/satori/go.uuid"
	"go.llib.dev/testcase/random"

	"go.llib.dev/fuzzkit"
)

// DefaultCharset is the alphabet used for random strings unless a charset is given.
const DefaultCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// Randomizer bundles the random value helpers around a shared random source.
type Randomizer struct {
	rnd *random.Random
}

// New creates a Randomizer on top of the given random source.
// A nil source falls back to a crypto seeded one.
func New(rnd *random.Random) *Randomizer {
	if rnd == nil {
		rnd = random.New(random.CryptoSeed{})
	}
	return &Randomizer{rnd: rnd}
}

// Random exposes the underlying random source.
func (r *Randomizer) Random() *random.Random { return r.rnd }

func (r *Randomizer) Bool() bool { return r.rnd.Bool() }

func (r *Randomizer) Int() int { return r.rnd.Int() }

// IntBetween returns a random int in the [min, max] range.
func (r *Randomizer) IntBetween(min, max int) int { return r.rnd.IntB(min, max) }

func (r *Randomizer) Float32() float32 { return r.rnd.Float32() }

func (r *Randomizer) Float64() float64 { return r.rnd.Float64() }

// String returns a random string with a length in the [minLen, maxLen] range,
// drawn from DefaultCharset.
func (r *Randomizer) String(minLen, maxLen int) string {
	return r.StringWithCharset(minLen, maxLen, DefaultCharset)
}

// StringWithCharset returns a random string with a length in the [minLen, maxLen]
// range, drawn from the given charset.
func (r *Randomizer) StringWithCharset(minLen, maxLen int, charset string) string {
	return r.rnd.StringNC(r.rnd.IntB(minLen, maxLen), charset)
}

// StringMap returns a map with n random key-value pairs,
// the key and value lengths each within their given range.
func (r *Randomizer) StringMap(n, minKeyLen, maxKeyLen, minValueLen, maxValueLen int) map[string]string {
	m := make(map[string]string, n)
	for len(m) < n {
		m[r.String(minKeyLen, maxKeyLen)] = r.String(minValueLen, maxValueLen)
	}
	return m
}

func (r *Randomizer) Time() time.Time { return r.rnd.Time() }

func (r *Randomizer) Duration() time.Duration { return time.Duration(r.rnd.Int()) }

// UUID returns a random version 4 UUID.
func (r *Randomizer) UUID() uuid.UUID { return uuid.NewV4() }

// Name returns a human readable random name.
func (r *Randomizer) Name() string { return randomdata.SillyName() }

// Email returns a random email address looking string.
func (r *Randomizer) Email() string { return randomdata.Email() }

// Paragraph returns a random block of prose.
func (r *Randomizer) Paragraph() string { return randomdata.Paragraph() }

// Pick returns one of the given values.
func Pick[T any](r *Randomizer, vs ...T) T {
	return random.Pick(r.Random(), vs...)
}

// InstallDefaults registers a type rule on f for the common value types:
// booleans, the integer and float kinds, strings, byte slices,
// time.Time, time.Duration and uuid.UUID.
//
// Registration uses set semantics so installing over an existing setup replaces
// the affected type rules and nothing else.
//
// The optional wrap function decorates every generator before registration,
// pass (*fuzzkit.DifferentValueGenerator).Wrap to give each default rule the
// different-value guarantee.
func (r *Randomizer) InstallDefaults(f *fuzzkit.Fuzzer, wrap func(fuzzkit.ValueGenerator) fuzzkit.ValueGenerator) error {
	if f == nil {
		return fuzzkit.ErrInvalidArgument.F("fuzzer is required")
	}
	if wrap == nil {
		wrap = func(gen fuzzkit.ValueGenerator) fuzzkit.ValueGenerator { return gen }
	}
	for _, install := range []func() error{
		func() error { return setRule(f, wrap, r.Bool) },
		func() error { return setRule(f, wrap, r.Int) },
		func() error { return setRule(f, wrap, func() int8 { return int8(r.IntBetween(math.MinInt8, math.MaxInt8)) }) },
		func() error { return setRule(f, wrap, func() int16 { return int16(r.IntBetween(math.MinInt16, math.MaxInt16)) }) },
		func() error { return setRule(f, wrap, func() int32 { return int32(r.IntBetween(math.MinInt32, math.MaxInt32)) }) },
		func() error { return setRule(f, wrap, func() int64 { return int64(r.Int()) }) },
		func() error { return setRule(f, wrap, func() uint { return uint(r.Int()) }) },
		func() error { return setRule(f, wrap, func() uint8 { return uint8(r.IntBetween(0, math.MaxUint8)) }) },
		func() error { return setRule(f, wrap, func() uint16 { return uint16(r.IntBetween(0, math.MaxUint16)) }) },
		func() error { return setRule(f, wrap, func() uint32 { return uint32(r.IntBetween(0, math.MaxUint32)) }) },
		func() error { return setRule(f, wrap, func() uint64 { return uint64(r.Int()) }) },
		func() error { return setRule(f, wrap, r.Float32) },
		func() error { return setRule(f, wrap, r.Float64) },
		func() error { return setRule(f, wrap, func() string { return r.String(1, 32) }) },
		func() error { return setRule(f, wrap, func() []byte { return []byte(r.String(1, 32)) }) },
		func() error { return setRule(f, wrap, r.Time) },
		func() error { return setRule(f, wrap, r.Duration) },
		func() error { return setRule(f, wrap, r.UUID) },
	} {
		if err := install(); err != nil {
			return err
		}
	}
	return nil
}

func setRule[T any](f *fuzzkit.Fuzzer, wrap func(fuzzkit.ValueGenerator) fuzzkit.ValueGenerator, gen func() T) error {
	valueGen := wrap(func(ctx *fuzzkit.Context) (any, error) { return gen(), nil })
	return f.SetTypeRule(fuzzkit.RuleFromGenerator(valueGen), fuzzkit.TypeOf[T]())
}
