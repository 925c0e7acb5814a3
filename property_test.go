package fuzzkit_test

import (
	"errors"
	"reflect"
	"testing"

	"go.llib.dev/fuzzkit"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"
)

type Order struct {
	ID      string
	Total   int
	comment string
}

type Account struct {
	name    string
	balance int
}

func (a *Account) GetName() string     { return a.name }
func (a *Account) SetName(name string) { a.name = name }

func (a *Account) Balance() int         { return a.balance }
func (a *Account) SetBalance(v int)     { a.balance = v }
func (a *Account) SetSecret(string)     {} // write-only, no getter
func (a *Account) Validate() error      { return nil }
func (a *Account) SetMany(a1, a2 int)   {} // not a setter, two values
func (a *Account) Get() int             { return 0 }
func (a *Account) Describe(string) bool { return false }

func resolveProperty(tb testing.TB, resolver fuzzkit.PropertyResolver, typ reflect.Type, name string) fuzzkit.Property {
	tb.Helper()
	props, err := resolver.Properties(typ, true)
	assert.NoError(tb, err)
	for _, prop := range props {
		if prop.Name() == name {
			return prop
		}
	}
	tb.Fatalf("property %q not found on %s", name, typ)
	return nil
}

func TestFieldProperty(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})

	t.Run("exported field can be read and written", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.FieldResolver{}, fuzzkit.TypeOf[Order](), "Total")
		assert.True(t, prop.CanRead())
		assert.Equal(t, fuzzkit.TypeOf[int](), prop.Type())
		assert.Equal(t, fuzzkit.TypeOf[Order](), prop.DeclaringType())

		var order Order
		target := reflect.ValueOf(&order).Elem()
		expected := rnd.Int()
		assert.NoError(t, prop.Set(target, expected))
		assert.Equal(t, expected, order.Total)

		got, err := prop.Get(target)
		assert.NoError(t, err)
		assert.Equal[any](t, expected, got)
	})

	t.Run("unexported field uses the accessibility override", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.FieldResolver{}, fuzzkit.TypeOf[Order](), "comment")

		var order Order
		target := reflect.ValueOf(&order).Elem()
		expected := rnd.String()
		assert.NoError(t, prop.Set(target, expected))
		assert.Equal(t, expected, order.comment)

		got, err := prop.Get(target)
		assert.NoError(t, err)
		assert.Equal[any](t, expected, got)
	})

	t.Run("nil assigns the zero value", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.FieldResolver{}, fuzzkit.TypeOf[Order](), "ID")

		order := Order{ID: rnd.String()}
		target := reflect.ValueOf(&order).Elem()
		assert.NoError(t, prop.Set(target, nil))
		assert.Equal(t, "", order.ID)
	})

	t.Run("convertible values are converted", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.FieldResolver{}, fuzzkit.TypeOf[Order](), "Total")

		var order Order
		target := reflect.ValueOf(&order).Elem()
		assert.NoError(t, prop.Set(target, int32(42)))
		assert.Equal(t, 42, order.Total)
	})

	t.Run("incompatible value type is rejected", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.FieldResolver{}, fuzzkit.TypeOf[Order](), "Total")

		var order Order
		target := reflect.ValueOf(&order).Elem()
		err := prop.Set(target, "not an int")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, fuzzkit.ErrInvalidArgument))
	})

	t.Run("wrong target type is rejected", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.FieldResolver{}, fuzzkit.TypeOf[Order](), "Total")

		var account Account
		err := prop.Set(reflect.ValueOf(&account).Elem(), 42)
		assert.True(t, errors.Is(err, fuzzkit.ErrInvalidTarget))
	})
}

func TestAccessorProperty(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})

	t.Run("Get prefixed accessor pair", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.AccessorResolver{}, fuzzkit.TypeOf[Account](), "Name")
		assert.True(t, prop.CanRead())
		assert.Equal(t, fuzzkit.TypeOf[string](), prop.Type())

		var account Account
		target := reflect.ValueOf(&account).Elem()
		expected := rnd.String()
		assert.NoError(t, prop.Set(target, expected))
		assert.Equal(t, expected, account.name)

		got, err := prop.Get(target)
		assert.NoError(t, err)
		assert.Equal[any](t, expected, got)
	})

	t.Run("Go style accessor pair without the Get prefix", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.AccessorResolver{}, fuzzkit.TypeOf[Account](), "Balance")
		assert.True(t, prop.CanRead())

		var account Account
		target := reflect.ValueOf(&account).Elem()
		expected := rnd.Int()
		assert.NoError(t, prop.Set(target, expected))

		got, err := prop.Get(target)
		assert.NoError(t, err)
		assert.Equal[any](t, expected, got)
	})

	t.Run("write-only property can be set but not read", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.AccessorResolver{}, fuzzkit.TypeOf[Account](), "Secret")
		assert.False(t, prop.CanRead())

		var account Account
		target := reflect.ValueOf(&account).Elem()
		assert.NoError(t, prop.Set(target, rnd.String()))

		_, err := prop.Get(target)
		assert.True(t, errors.Is(err, fuzzkit.ErrAccessDenied))
	})

	t.Run("non-addressable target is rejected", func(t *testing.T) {
		prop := resolveProperty(t, fuzzkit.AccessorResolver{}, fuzzkit.TypeOf[Account](), "Name")
		err := prop.Set(reflect.ValueOf(Account{}), rnd.String())
		assert.True(t, errors.Is(err, fuzzkit.ErrAccessDenied))
	})
}
