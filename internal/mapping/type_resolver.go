package mapping

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"graph-mapper/internal/analyze"
	"graph-mapper/internal/match"
	"graph-mapper/internal/plan"
)

// TypeSet is the set of struct types a configuration file may name.
type TypeSet struct {
	types map[reflect.Type]struct{}
}

// CollectTypes gathers the given roots and every named struct type reachable
// through their properties (pointers, slices, arrays, maps and embedded
// structs included).
func CollectTypes(roots ...reflect.Type) *TypeSet {
	ts := &TypeSet{types: make(map[reflect.Type]struct{})}
	for _, root := range roots {
		ts.collect(root)
	}

	return ts
}

func (ts *TypeSet) collect(t reflect.Type) {
	for t != nil && t.Kind() != reflect.Struct {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array:
			t = t.Elem()
		case reflect.Map:
			ts.collect(t.Key())
			t = t.Elem()
		default:
			return
		}
	}

	if t == nil || t.Name() == "" {
		return
	}

	if _, seen := ts.types[t]; seen {
		return
	}

	ts.types[t] = struct{}{}

	for i := range t.NumField() {
		ts.collect(t.Field(i).Type)
	}
}

// Names lists the short names ("pkg.Name") of every type, sorted.
func (ts *TypeSet) Names() []string {
	out := make([]string, 0, len(ts.types))
	for t := range ts.types {
		out = append(out, analyze.IDOf(t).Short())
	}

	sort.Strings(out)

	return out
}

// ResolveTypeID resolves a type ID string like:
// - "store.Order" (short)
// - "graph-mapper/store.Order" (full)
// - "Order" (name only).
//
// A name matching several types is an error.
func (ts *TypeSet) ResolveTypeID(typeIDStr string) (reflect.Type, error) {
	typeIDStr = strings.TrimSpace(typeIDStr)
	if typeIDStr == "" {
		return nil, fmt.Errorf("%w: empty type name", plan.ErrInvalidConfiguration)
	}

	pkgStr, name := "", typeIDStr
	if lastDot := strings.LastIndex(typeIDStr, "."); lastDot >= 0 {
		pkgStr, name = typeIDStr[:lastDot], typeIDStr[lastDot+1:]
	}

	var found []reflect.Type

	for t := range ts.types {
		if t.Name() != name {
			continue
		}

		path := t.PkgPath()

		switch {
		case pkgStr == "":
		case path == pkgStr:
			// exact match (for fully qualified import path) wins outright
			return t, nil
		case strings.HasSuffix(path, "/"+pkgStr):
		default:
			continue
		}

		found = append(found, t)
	}

	switch len(found) {
	case 0:
		var hint string
		if suggestions := match.Suggest(typeIDStr, ts.Names(), 3); len(suggestions) > 0 {
			hint = " (did you mean " + strings.Join(suggestions, ", ") + "?)"
		}

		return nil, fmt.Errorf("%w: type %q not found%s", plan.ErrInvalidConfiguration, typeIDStr, hint)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: type %q is ambiguous", plan.ErrInvalidConfiguration, typeIDStr)
	}
}
