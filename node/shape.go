package node

import "reflect"

// EntityPredicate reports whether a struct type is an entity type.
type EntityPredicate func(t reflect.Type) bool

// Shape classifies a property type. For navigations it also returns the
// entity struct type the property points to.
//   - *E   -> ShapeReference, E
//   - []*E -> ShapeCollection, E
//   - anything else -> ShapeScalar
func Shape(t reflect.Type, isEntity EntityPredicate) (ShapeEnum, reflect.Type) {
	if t == nil {
		return ShapeUnknown, nil
	}

	switch t.Kind() {
	case reflect.Ptr:
		if elem := t.Elem(); elem.Kind() == reflect.Struct && isEntity(elem) {
			return ShapeReference, elem
		}
	case reflect.Slice:
		if elem := t.Elem(); elem.Kind() == reflect.Ptr &&
			elem.Elem().Kind() == reflect.Struct && isEntity(elem.Elem()) {
			return ShapeCollection, elem.Elem()
		}
	}

	return ShapeScalar, nil
}

// ValueStructOfEntity reports whether t is a struct or slice of structs by
// value whose struct is an entity. Such properties cannot be tracked by
// identity and are rejected at build time.
func ValueStructOfEntity(t reflect.Type, isEntity EntityPredicate) bool {
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct && isEntity(t)
}
