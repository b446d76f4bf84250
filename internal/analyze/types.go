package analyze

import (
	"reflect"

	"graph-mapper/internal/common"
	"graph-mapper/node"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "graph-mapper/store"
	Name    string // e.g., "Order"
}

// IDOf returns the TypeID of t, dereferencing pointers first.
func IDOf(t reflect.Type) TypeID {
	t = node.Base(t)
	if t == nil {
		return TypeID{}
	}

	return TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short renders the ID as "alias.Name".
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// TypeInfo describes an analyzed struct type.
type TypeInfo struct {
	ID       TypeID
	Type     reflect.Type // the struct type, never a pointer
	Fields   []FieldInfo
	Identity *FieldInfo // nil when the type is not an entity
	Token    *FieldInfo // optional concurrency token
}

// IsEntity reports whether the type carries an identity property.
func (t *TypeInfo) IsEntity() bool {
	return t.Identity != nil
}

// Field returns the property with the given name.
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}

	return nil, false
}

// FieldNames lists every property name in declaration order.
func (t *TypeInfo) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i := range t.Fields {
		names[i] = t.Fields[i].Name
	}

	return names
}

// Navigations returns the reference and collection properties.
func (t *TypeInfo) Navigations() []*FieldInfo {
	var out []*FieldInfo

	for i := range t.Fields {
		if t.Fields[i].Shape.IsNavigation() {
			out = append(out, &t.Fields[i])
		}
	}

	return out
}

// FieldInfo describes a struct property.
type FieldInfo struct {
	Name   string
	Index  []int // path for reflect.Value.FieldByIndex
	Type   reflect.Type
	Tag    reflect.StructTag
	Shape  node.ShapeEnum
	Elem   reflect.Type // entity struct type of a navigation
	Struct reflect.StructField
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		for i := range len(tag) {
			if tag[i] == ',' {
				return tag[:i]
			}
		}

		return tag
	}

	return f.Name
}

// TypeGraph holds every analyzed struct type.
type TypeGraph struct {
	Types map[reflect.Type]*TypeInfo
	// Packages maps package paths to the types analyzed from them.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[reflect.Type]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a struct type, or nil if not analyzed.
func (g *TypeGraph) GetType(t reflect.Type) *TypeInfo {
	return g.Types[node.Base(t)]
}

// Lookup finds an analyzed type by ID.
func (g *TypeGraph) Lookup(id TypeID) *TypeInfo {
	for t, info := range g.Types {
		if t.PkgPath() == id.PkgPath && t.Name() == id.Name {
			return info
		}
	}

	return nil
}

// PackageInfo holds information about a package seen during analysis.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package alias
	Types []TypeID // Analyzed types defined in this package
}
