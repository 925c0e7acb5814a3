package reflects

import (
	"reflect"
	"unsafe"
)

// Accessible returns a read-write view of val even when val belongs to an unexported struct field.
// The returned value aliases the same memory as val.
// It reports false when no such view can be made, which happens when val is not addressable.
func Accessible(val reflect.Value) (reflect.Value, bool) {
	if !val.IsValid() {
		return val, false
	}
	if val.CanSet() {
		return val, true
	}
	if !val.CanAddr() {
		return val, false
	}
	return reflect.NewAt(val.Type(), unsafe.Pointer(val.UnsafeAddr())).Elem(), true
}
