package reflects

import (
	"reflect"
)

// Equal compares two values deeply.
// When the values' type has an `Equal` method in the form of `T.Equal(T) bool`,
// the method is preferred over deep structural comparison,
// so types like time.Time compare by their own notion of equality.
func Equal(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	var (
		xv = reflect.ValueOf(x)
		yv = reflect.ValueOf(y)
	)
	if xv.Type() != yv.Type() {
		return false
	}
	if eq, ok := equalMethodOf(xv.Type()); ok {
		return eq(xv, yv)
	}
	return reflect.DeepEqual(x, y)
}

type equalFunc func(x, y reflect.Value) bool

func equalMethodOf(T reflect.Type) (equalFunc, bool) {
	m, ok := T.MethodByName("Equal")
	if !ok {
		m, ok = T.MethodByName("IsEqual")
		if !ok {
			return nil, false
		}
	}
	mType := m.Func.Type()
	if mType.NumIn() != 2 {
		return nil, false
	}
	if mType.In(0) != T || mType.In(1) != T {
		// expected a method in the form of T.Equal(oth T) bool
		return nil, false
	}
	if mType.NumOut() != 1 || mType.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return func(x, y reflect.Value) bool {
		return m.Func.Call([]reflect.Value{x, y})[0].Bool()
	}, true
}
