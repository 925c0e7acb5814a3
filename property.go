package fuzzkit

import (
	"fmt"
	"reflect"

	"go.llib.dev/fuzzkit/internal/reflects"
)

// Property is a uniform read/write handle over a single mutable slot of a struct,
// either a struct field or a Get/Set accessor method pair.
//
// Every Property is writable.
// A Property without read support can still be assigned,
// but reading it back reports ErrAccessDenied.
type Property interface {
	// Name is the name the property is known by on its declaring type.
	Name() string
	// Type is the declared (static) type of the property.
	Type() reflect.Type
	// DeclaringType is the struct type the property belongs to.
	DeclaringType() reflect.Type
	// CanRead reports whether Get is supported.
	CanRead() bool
	// Get reads the property's current value from target.
	// Target is the addressable struct value the property was resolved for.
	Get(target reflect.Value) (any, error)
	// Set assigns value to the property on target.
	Set(target reflect.Value, value any) error

	fmt.Stringer
}

// fieldProperty is a Property backed by a struct field,
// possibly reached through a chain of anonymous embedded structs.
type fieldProperty struct {
	// structType is the root struct type the property was resolved for
	structType reflect.Type
	// declaring is the struct type that declares the field,
	// for promoted fields this is the embedded struct, not the root
	declaring reflect.Type
	field     reflect.StructField
	index     []int
}

func (p fieldProperty) Name() string { return p.field.Name }

func (p fieldProperty) Type() reflect.Type { return p.field.Type }

func (p fieldProperty) DeclaringType() reflect.Type { return p.declaring }

func (p fieldProperty) CanRead() bool { return true }

func (p fieldProperty) Get(target reflect.Value) (any, error) {
	fv, err := p.fieldValue(target)
	if err != nil {
		return nil, err
	}
	if !fv.CanInterface() {
		av, ok := reflects.Accessible(fv)
		if !ok {
			return nil, ErrAccessDenied.F("reading %s", p)
		}
		fv = av
	}
	return fv.Interface(), nil
}

func (p fieldProperty) Set(target reflect.Value, value any) error {
	fv, err := p.fieldValue(target)
	if err != nil {
		return err
	}
	if !fv.CanSet() {
		av, ok := reflects.Accessible(fv)
		if !ok {
			return ErrAccessDenied.F("writing %s", p)
		}
		fv = av
	}
	nv, err := valueFor(value, fv.Type(), p)
	if err != nil {
		return err
	}
	fv.Set(nv)
	return nil
}

func (p fieldProperty) fieldValue(target reflect.Value) (reflect.Value, error) {
	target = reflects.BaseValue(target)
	if !target.IsValid() || target.Type() != p.structType {
		return reflect.Value{}, ErrInvalidTarget.F("%s expects a %s target", p, p.structType)
	}
	fv := target
	for _, i := range p.index {
		fv = fv.Field(i)
	}
	return fv, nil
}

func (p fieldProperty) String() string {
	return fmt.Sprintf("field %q with type %s of %s", p.field.Name, p.field.Type, p.declaring)
}

// accessorProperty is a Property backed by a setter method and an optional getter method.
// The methods belong to the pointer type of the declaring struct.
type accessorProperty struct {
	structType reflect.Type
	name       string
	getter     *reflect.Method
	setter     reflect.Method
}

func (p accessorProperty) Name() string { return p.name }

func (p accessorProperty) Type() reflect.Type {
	// first input is the receiver
	return p.setter.Type.In(1)
}

func (p accessorProperty) DeclaringType() reflect.Type { return p.structType }

func (p accessorProperty) CanRead() bool { return p.getter != nil }

func (p accessorProperty) Get(target reflect.Value) (any, error) {
	if p.getter == nil {
		return nil, ErrAccessDenied.F("%s has no getter method", p)
	}
	recv, err := p.receiver(target)
	if err != nil {
		return nil, err
	}
	out := p.getter.Func.Call([]reflect.Value{recv})
	return out[0].Interface(), nil
}

func (p accessorProperty) Set(target reflect.Value, value any) error {
	recv, err := p.receiver(target)
	if err != nil {
		return err
	}
	nv, err := valueFor(value, p.Type(), p)
	if err != nil {
		return err
	}
	p.setter.Func.Call([]reflect.Value{recv, nv})
	return nil
}

func (p accessorProperty) receiver(target reflect.Value) (reflect.Value, error) {
	target = reflects.BaseValue(target)
	if !target.IsValid() || target.Type() != p.structType {
		return reflect.Value{}, ErrInvalidTarget.F("%s expects a %s target", p, p.structType)
	}
	if !target.CanAddr() {
		return reflect.Value{}, ErrAccessDenied.F("%s needs an addressable target", p)
	}
	return target.Addr(), nil
}

func (p accessorProperty) String() string {
	return fmt.Sprintf("accessor property %q with type %s of %s", p.name, p.Type(), p.structType)
}

// valueFor turns a rule supplied value into a reflect.Value usable for the property's type.
func valueFor(value any, T reflect.Type, p Property) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(T), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(T) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(T) {
		return rv.Convert(T), nil
	}
	return reflect.Value{}, ErrInvalidArgument.F("cannot assign value of type %T to %s", value, p)
}
