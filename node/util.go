package node

import "reflect"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func isError(t reflect.Type) bool {
	return t != nil && t.Implements(errorType)
}

func isDoublePointer(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Ptr
}

// Base strips every pointer level from t.
func Base(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}
