package analyze

import (
	"reflect"
	"strings"

	"graph-mapper/internal/common"
)

// TypePath builds a readable navigation path.
// Examples:
//   - "Order" for a root entity
//   - "Order.Customer" for a reference
//   - "Order.Items[]" for a collection
//   - "Order.Items[].Product" for a reference within collection elements
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice appends a slice indicator "[]" to the path.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}
	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = newParts[len(newParts)-1] + "[]"
	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	if p == nil {
		return ""
	}

	return strings.Join(p.parts, ".")
}

// TypeString renders a property type with short package aliases, e.g.
// "[]*warehouse.OrderItem".
func TypeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + TypeString(t.Elem())
	case reflect.Slice:
		return "[]" + TypeString(t.Elem())
	case reflect.Map:
		return "map[" + TypeString(t.Key()) + "]" + TypeString(t.Elem())
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return common.PkgAlias(t.PkgPath()) + "." + t.Name()
	}

	return t.String()
}
