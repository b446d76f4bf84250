package node

import (
	"bytes"
	"math"
	"reflect"
)

// KeyOf returns a comparable map key for an identity value, and false when
// the identity is absent (nil pointer or zero value). Integer identities are
// widened to int64, so an int32 source key matches an int64 or uint target
// key. Unsigned values above the int64 range stay uint64.
func KeyOf(v reflect.Value) (any, bool) {
	for v.IsValid() && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}

		v = v.Elem()
	}

	if !v.IsValid() || v.IsZero() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n := v.Uint(); n <= math.MaxInt64 {
			return int64(n), true
		}

		return v.Uint(), true
	case reflect.String:
		return v.String(), true
	}

	if !v.Type().Comparable() {
		return nil, false
	}

	return v.Interface(), true
}

// UsableAsKey reports whether values of t can serve as identities.
func UsableAsKey(t reflect.Type) bool {
	return Base(t).Comparable()
}

// TokenIsZero reports whether a concurrency token is absent.
func TokenIsZero(v reflect.Value) bool {
	for v.IsValid() && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return true
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return true
	}

	if v.Kind() == reflect.Slice {
		return v.Len() == 0
	}

	return v.IsZero()
}

// TokensEqual compares two concurrency tokens: byte slices byte for byte,
// integers and strings by value after widening, anything else with
// reflect.DeepEqual.
func TokensEqual(a, b reflect.Value) bool {
	aZero, bZero := TokenIsZero(a), TokenIsZero(b)
	if aZero || bZero {
		return aZero && bZero
	}

	a, b = deref(a), deref(b)

	if a.Kind() == reflect.Slice && b.Kind() == reflect.Slice &&
		a.Type().Elem().Kind() == reflect.Uint8 && b.Type().Elem().Kind() == reflect.Uint8 {
		return bytes.Equal(a.Bytes(), b.Bytes())
	}

	ka, okA := KeyOf(a)
	kb, okB := KeyOf(b)

	if okA && okB {
		return ka == kb
	}

	return reflect.DeepEqual(a.Interface(), b.Interface())
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}

	return v
}
