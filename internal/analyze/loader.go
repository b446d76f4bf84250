package analyze

import (
	"errors"
	"fmt"
	"reflect"

	"graph-mapper/internal/common"
	"graph-mapper/node"
)

var (
	ErrNotStruct        = errors.New("type is not a struct")
	ErrUnusableIdentity = errors.New("identity property type is not comparable")
)

// Naming returns the identity and concurrency token property names for a
// struct type.
type Naming func(t reflect.Type) (identity, token string)

// DefaultNaming uses "ID" and "Version" for every type.
func DefaultNaming(reflect.Type) (identity, token string) {
	return "ID", "Version"
}

// Analyzer reflects struct types into a type graph. It is not safe for
// concurrent use.
type Analyzer struct {
	graph  *TypeGraph
	naming Naming
}

// NewAnalyzer creates a new Analyzer. A nil naming uses DefaultNaming.
func NewAnalyzer(naming Naming) *Analyzer {
	if naming == nil {
		naming = DefaultNaming
	}

	return &Analyzer{
		graph:  NewTypeGraph(),
		naming: naming,
	}
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// IsEntity reports whether struct type t has its identity property.
func (a *Analyzer) IsEntity(t reflect.Type) bool {
	t = node.Base(t)
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}

	identity, _ := a.naming(t)
	f, ok := t.FieldByName(identity)

	return ok && f.IsExported()
}

// Analyze returns the TypeInfo for t (a struct or pointer to struct). Results
// are cached in the graph.
func (a *Analyzer) Analyze(t reflect.Type) (*TypeInfo, error) {
	t = node.Base(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	if cached, ok := a.graph.Types[t]; ok {
		return cached, nil
	}

	info := &TypeInfo{ID: IDOf(t), Type: t}
	identity, token := a.naming(t)

	for _, sf := range node.ExportedFields(t) {
		shape, elem := node.Shape(sf.Type, a.IsEntity)
		info.Fields = append(info.Fields, FieldInfo{
			Name:   sf.Name,
			Index:  sf.Index,
			Type:   sf.Type,
			Tag:    sf.Tag,
			Shape:  shape,
			Elem:   elem,
			Struct: sf,
		})
	}

	for i := range info.Fields {
		f := &info.Fields[i]

		switch f.Name {
		case identity:
			if !node.UsableAsKey(f.Type) {
				return nil, fmt.Errorf("%w: %s.%s is %v", ErrUnusableIdentity, info.ID.Short(), f.Name, f.Type)
			}

			info.Identity = f
		case token:
			info.Token = f
		}
	}

	a.graph.Types[t] = info
	a.register(info)

	return info, nil
}

// Reachable analyzes t and every entity type reachable from it through
// navigations, in breadth-first order.
func (a *Analyzer) Reachable(t reflect.Type) ([]*TypeInfo, error) {
	root, err := a.Analyze(t)
	if err != nil {
		return nil, err
	}

	out := []*TypeInfo{root}
	seen := map[reflect.Type]bool{root.Type: true}

	for i := 0; i < len(out); i++ {
		for _, nav := range out[i].Navigations() {
			if seen[nav.Elem] {
				continue
			}

			seen[nav.Elem] = true

			child, err := a.Analyze(nav.Elem)
			if err != nil {
				return nil, err
			}

			out = append(out, child)
		}
	}

	return out, nil
}

func (a *Analyzer) register(info *TypeInfo) {
	path := info.Type.PkgPath()

	pkg, ok := a.graph.Packages[path]
	if !ok {
		pkg = &PackageInfo{Path: path, Name: common.PkgAlias(path)}
		a.graph.Packages[path] = pkg
	}

	pkg.Types = append(pkg.Types, info.ID)
}
