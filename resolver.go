package fuzzkit

import (
	"reflect"
	"strings"
)

// PropertyResolver enumerates the fuzzable properties of a struct type.
//
// Resolution is deterministic for a given (type, includeEmbedded) pair,
// but the ordering follows whatever order the reflection API reports,
// no stronger cross-call guarantee is made.
type PropertyResolver interface {
	// Properties returns the properties of typ that should receive new values.
	//
	// With includeEmbedded the promoted members of anonymous embedded structs
	// are resolved as well, which is how inherited members surface in Go.
	Properties(typ reflect.Type, includeEmbedded bool) ([]Property, error)
}

// PropertyResolverFunc lets an ordinary function act as a PropertyResolver.
type PropertyResolverFunc func(typ reflect.Type, includeEmbedded bool) ([]Property, error)

func (fn PropertyResolverFunc) Properties(typ reflect.Type, includeEmbedded bool) ([]Property, error) {
	return fn(typ, includeEmbedded)
}

// FieldResolver resolves struct fields as properties.
//
// Blank ("_") fields are never included.
// Unexported fields are included, their access goes through an accessibility override.
type FieldResolver struct{}

func (r FieldResolver) Properties(typ reflect.Type, includeEmbedded bool) ([]Property, error) {
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, ErrInvalidTarget.F("struct type expected, got %s", typ)
	}
	return r.collect(typ, typ, nil, includeEmbedded), nil
}

func (r FieldResolver) collect(root, typ reflect.Type, index []int, includeEmbedded bool) []Property {
	var props []Property
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Name == "_" {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if !includeEmbedded {
				continue
			}
			path := append(append([]int(nil), index...), i)
			props = append(props, r.collect(root, field.Type, path, includeEmbedded)...)
			continue
		}
		props = append(props, fieldProperty{
			structType: root,
			declaring:  typ,
			field:      field,
			index:      append(append([]int(nil), index...), i),
		})
	}
	return props
}

// AccessorResolver resolves getter/setter method pairs as properties.
//
// A property is emitted for every exported method pair in the form of
//
//	SetX(v T)  +  GetX() T   or   SetX(v T)  +  X() T
//
// where the X suffix is matched case-insensitively.
// The setter is required, candidates without one are skipped entirely.
// A missing getter still yields a property, it just cannot be read back.
type AccessorResolver struct{}

func (r AccessorResolver) Properties(typ reflect.Type, includeEmbedded bool) ([]Property, error) {
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, ErrInvalidTarget.F("struct type expected, got %s", typ)
	}
	ptr := reflect.PtrTo(typ)
	var (
		promoted = map[string]struct{}{}
		getters  = map[string]reflect.Method{}
		setters  = map[string]reflect.Method{}
		order    []string
	)
	if !includeEmbedded {
		promoted = r.promotedMethodNames(typ)
	}
	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		if _, ok := promoted[m.Name]; ok {
			continue
		}
		switch {
		case r.isSetter(m):
			key := strings.ToLower(strings.TrimPrefix(m.Name, "Set"))
			if _, ok := setters[key]; !ok {
				order = append(order, key)
			}
			setters[key] = m
		case r.isGetter(m):
			key := strings.ToLower(strings.TrimPrefix(m.Name, "Get"))
			getters[key] = m
		}
	}
	var props []Property
	for _, key := range order {
		setter := setters[key]
		prop := accessorProperty{
			structType: typ,
			name:       strings.TrimPrefix(setter.Name, "Set"),
			setter:     setter,
		}
		if getter, ok := getters[key]; ok && getter.Type.Out(0) == setter.Type.In(1) {
			prop.getter = &getter
		}
		props = append(props, prop)
	}
	return props, nil
}

// promotedMethodNames approximates the set of methods that reached typ's method set
// through an anonymous embedded field.
// A method declared directly on typ that shadows an embedded one with an identical
// signature cannot be told apart through reflection and is treated as promoted.
func (r AccessorResolver) promotedMethodNames(typ reflect.Type) map[string]struct{} {
	names := map[string]struct{}{}
	outer := reflect.PtrTo(typ)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.Anonymous {
			continue
		}
		embedded := field.Type
		if embedded.Kind() != reflect.Ptr {
			embedded = reflect.PtrTo(embedded)
		}
		for j := 0; j < embedded.NumMethod(); j++ {
			m := embedded.Method(j)
			om, ok := outer.MethodByName(m.Name)
			if !ok {
				continue
			}
			if sameSignature(om.Type, m.Type) {
				names[m.Name] = struct{}{}
			}
		}
	}
	return names
}

// sameSignature compares two method types ignoring their receiver argument.
func sameSignature(a, b reflect.Type) bool {
	if a.NumIn() != b.NumIn() || a.NumOut() != b.NumOut() {
		return false
	}
	for i := 1; i < a.NumIn(); i++ {
		if a.In(i) != b.In(i) {
			return false
		}
	}
	for i := 0; i < a.NumOut(); i++ {
		if a.Out(i) != b.Out(i) {
			return false
		}
	}
	return true
}

func (r AccessorResolver) isSetter(m reflect.Method) bool {
	return strings.HasPrefix(m.Name, "Set") &&
		len(m.Name) > len("Set") &&
		m.Type.NumIn() == 2 && // receiver + value
		m.Type.NumOut() == 0
}

func (r AccessorResolver) isGetter(m reflect.Method) bool {
	if strings.HasPrefix(m.Name, "Set") {
		return false
	}
	return m.Type.NumIn() == 1 && m.Type.NumOut() == 1
}

// CachingResolver decorates a PropertyResolver with memoization per (type, includeEmbedded) pair.
//
// Cache entries never expire on their own, use ClearCache to drop them.
// The cache is a plain map, the decorator is meant for single goroutine use.
type CachingResolver struct {
	delegate PropertyResolver
	cache    map[propertyCacheKey][]Property
}

type propertyCacheKey struct {
	typ             reflect.Type
	includeEmbedded bool
}

// NewCachingResolver wraps another PropertyResolver to add caching of resolved properties.
func NewCachingResolver(delegate PropertyResolver) *CachingResolver {
	if delegate == nil {
		delegate = FieldResolver{}
	}
	return &CachingResolver{
		delegate: delegate,
		cache:    map[propertyCacheKey][]Property{},
	}
}

func (r *CachingResolver) Properties(typ reflect.Type, includeEmbedded bool) ([]Property, error) {
	key := propertyCacheKey{typ: typ, includeEmbedded: includeEmbedded}
	if props, ok := r.cache[key]; ok {
		return props, nil
	}
	props, err := r.delegate.Properties(typ, includeEmbedded)
	if err != nil {
		return nil, err
	}
	r.cache[key] = props
	return props, nil
}

// ClearCache drops all memoized property lists.
func (r *CachingResolver) ClearCache() {
	r.cache = map[propertyCacheKey][]Property{}
}

// Delegate returns the property resolver wrapped by this instance.
func (r *CachingResolver) Delegate() PropertyResolver { return r.delegate }
