package fuzzkit_test

import (
	"reflect"
	"testing"

	"go.llib.dev/fuzzkit"
	"go.llib.dev/testcase/assert"
)

type BaseEntity struct {
	ID string
}

type Note struct {
	BaseEntity
	Title string
	Body  string
	_     [8]byte
}

func propertyNames(props []fuzzkit.Property) []string {
	var names []string
	for _, prop := range props {
		names = append(names, prop.Name())
	}
	return names
}

func TestFieldResolver(t *testing.T) {
	resolver := fuzzkit.FieldResolver{}

	t.Run("embedded members are included by request", func(t *testing.T) {
		props, err := resolver.Properties(fuzzkit.TypeOf[Note](), true)
		assert.NoError(t, err)
		assert.ContainExactly(t, []string{"ID", "Title", "Body"}, propertyNames(props))
	})

	t.Run("embedded members are excluded without the flag", func(t *testing.T) {
		props, err := resolver.Properties(fuzzkit.TypeOf[Note](), false)
		assert.NoError(t, err)
		assert.ContainExactly(t, []string{"Title", "Body"}, propertyNames(props))
	})

	t.Run("promoted members report the embedded struct as their declaring type", func(t *testing.T) {
		prop := resolveProperty(t, resolver, fuzzkit.TypeOf[Note](), "ID")
		assert.Equal(t, fuzzkit.TypeOf[BaseEntity](), prop.DeclaringType())
	})

	t.Run("discovery is idempotent", func(t *testing.T) {
		for _, include := range []bool{true, false} {
			first, err := resolver.Properties(fuzzkit.TypeOf[Note](), include)
			assert.NoError(t, err)
			second, err := resolver.Properties(fuzzkit.TypeOf[Note](), include)
			assert.NoError(t, err)
			assert.Equal(t, propertyNames(first), propertyNames(second))
		}
	})

	t.Run("non struct type is rejected", func(t *testing.T) {
		_, err := resolver.Properties(fuzzkit.TypeOf[int](), true)
		assert.ErrorIs(t, err, fuzzkit.ErrInvalidTarget)
	})
}

type AuditedAccount struct {
	Account
	tag string
}

func (a *AuditedAccount) GetTag() string  { return a.tag }
func (a *AuditedAccount) SetTag(v string) { a.tag = v }

func TestAccessorResolver(t *testing.T) {
	resolver := fuzzkit.AccessorResolver{}

	t.Run("setter is required, read-only candidates are skipped", func(t *testing.T) {
		props, err := resolver.Properties(fuzzkit.TypeOf[Account](), true)
		assert.NoError(t, err)
		assert.ContainExactly(t, []string{"Name", "Balance", "Secret"}, propertyNames(props))
	})

	t.Run("promoted accessor pairs are included by request", func(t *testing.T) {
		props, err := resolver.Properties(fuzzkit.TypeOf[AuditedAccount](), true)
		assert.NoError(t, err)
		assert.ContainExactly(t, []string{"Name", "Balance", "Secret", "Tag"}, propertyNames(props))
	})

	t.Run("promoted accessor pairs are excluded without the flag", func(t *testing.T) {
		props, err := resolver.Properties(fuzzkit.TypeOf[AuditedAccount](), false)
		assert.NoError(t, err)
		assert.ContainExactly(t, []string{"Tag"}, propertyNames(props))
	})

	t.Run("getter with a mismatching type is ignored", func(t *testing.T) {
		prop := resolveProperty(t, resolver, fuzzkit.TypeOf[Mismatched](), "Count")
		assert.False(t, prop.CanRead())
	})

	t.Run("setters whose names differ only in case yield a single property", func(t *testing.T) {
		props, err := resolver.Properties(fuzzkit.TypeOf[CaseClash](), true)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(props))
	})
}

type CaseClash struct{ code int }

func (c *CaseClash) SetCode(v int) { c.code = v }
func (c *CaseClash) Setcode(v int) { c.code = v }

type Mismatched struct{ count int }

func (m *Mismatched) GetCount() string { return "" }
func (m *Mismatched) SetCount(v int)   { m.count = v }

type countingResolver struct {
	delegate fuzzkit.PropertyResolver
	calls    int
}

func (r *countingResolver) Properties(typ reflect.Type, includeEmbedded bool) ([]fuzzkit.Property, error) {
	r.calls++
	return r.delegate.Properties(typ, includeEmbedded)
}

func TestCachingResolver(t *testing.T) {
	t.Run("delegate is only consulted once per type and flag", func(t *testing.T) {
		counting := &countingResolver{delegate: fuzzkit.FieldResolver{}}
		caching := fuzzkit.NewCachingResolver(counting)

		for i := 0; i < 3; i++ {
			props, err := caching.Properties(fuzzkit.TypeOf[Note](), true)
			assert.NoError(t, err)
			assert.NotEmpty(t, props)
		}
		assert.Equal(t, 1, counting.calls)

		_, err := caching.Properties(fuzzkit.TypeOf[Note](), false)
		assert.NoError(t, err)
		assert.Equal(t, 2, counting.calls)
	})

	t.Run("clearing the cache makes the delegate consulted again", func(t *testing.T) {
		counting := &countingResolver{delegate: fuzzkit.FieldResolver{}}
		caching := fuzzkit.NewCachingResolver(counting)

		_, err := caching.Properties(fuzzkit.TypeOf[Note](), true)
		assert.NoError(t, err)
		caching.ClearCache()
		_, err = caching.Properties(fuzzkit.TypeOf[Note](), true)
		assert.NoError(t, err)
		assert.Equal(t, 2, counting.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		counting := &countingResolver{delegate: fuzzkit.FieldResolver{}}
		caching := fuzzkit.NewCachingResolver(counting)

		for i := 0; i < 2; i++ {
			_, err := caching.Properties(fuzzkit.TypeOf[int](), true)
			assert.ErrorIs(t, err, fuzzkit.ErrInvalidTarget)
		}
		assert.Equal(t, 2, counting.calls)
	})

	t.Run("Delegate exposes the wrapped resolver", func(t *testing.T) {
		delegate := fuzzkit.FieldResolver{}
		assert.Equal[fuzzkit.PropertyResolver](t, delegate, fuzzkit.NewCachingResolver(delegate).Delegate())
	})
}
