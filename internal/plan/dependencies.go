package plan

import (
	"graph-mapper/internal/analyze"
	"graph-mapper/internal/match"
	"graph-mapper/node"
)

// linkNavigation fills the properties tying a child target to its parent:
// the back reference and foreign key on the child, and for references the
// owner key on the parent.
func (r *Resolver) linkNavigation(nav *ResolvedNavigation, parent, child *analyze.TypeInfo) {
	nav.BackReference = backReference(parent, child, nav.Target)

	linkName := parent.Type.Name()
	if nav.BackReference != nil {
		linkName = nav.BackReference.Name
	}

	nav.ForeignKey = keyField(child, linkName, parent.Identity)

	if nav.Shape == node.ShapeReference {
		nav.OwnerKey = keyField(parent, nav.Target.Name, child.Identity)
	}
}

// backReference finds the reference property of child that points to the
// parent type. When several exist the one named after the parent wins.
func backReference(parent, child *analyze.TypeInfo, via *analyze.FieldInfo) *analyze.FieldInfo {
	var candidates []*analyze.FieldInfo

	for _, f := range child.Navigations() {
		if f.Shape != node.ShapeReference || f.Elem != parent.Type {
			continue
		}

		// a self reference reached through itself is not a back reference
		if parent.Type == child.Type && f.Name == via.Name {
			continue
		}

		candidates = append(candidates, f)
	}

	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	want := match.NormalizeIdent(parent.Type.Name())
	for _, f := range candidates {
		if match.NormalizeIdent(f.Name) == want {
			return f
		}
	}

	return nil
}

// keyField finds the scalar of owner holding the identity of the linked
// entity: "<link><Identity>" exactly, else any scalar whose name minus an
// "ID" suffix normalizes to the link name.
func keyField(owner *analyze.TypeInfo, link string, identity *analyze.FieldInfo) *analyze.FieldInfo {
	if identity == nil {
		return nil
	}

	if f, ok := owner.Field(link + identity.Name); ok && usableKey(f, identity) {
		return f
	}

	want := match.NormalizeIdent(link)

	for i := range owner.Fields {
		f := &owner.Fields[i]
		if f == owner.Identity || f.Shape != node.ShapeScalar {
			continue
		}

		if match.StripKeySuffix(f.Name) == want && usableKey(f, identity) {
			return f
		}
	}

	return nil
}

func usableKey(f, identity *analyze.FieldInfo) bool {
	return f.Shape == node.ShapeScalar && node.Base(identity.Type).ConvertibleTo(node.Base(f.Type))
}
