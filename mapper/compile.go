package mapper

import (
	"fmt"
	"reflect"
	"slices"

	"graph-mapper/internal/analyze"
	"graph-mapper/internal/plan"
	"graph-mapper/node"
	"graph-mapper/primitive"
)

type pairKey = node.StructPair

// pairMapper is the compiled form of one resolved type pair. Every property
// is reached through a precomputed index path.
type pairMapper struct {
	name     string
	src, dst reflect.Type
	mode     Mode

	srcIdentity, dstIdentity []int
	srcToken, dstToken       []int

	scalars []scalarCopy
	custom  []plan.CustomMapping
	navs    []navigation
}

type scalarCopy struct {
	name     string
	src, dst []int
	convert  primitive.Converter
}

type navigation struct {
	name     string
	shape    node.ShapeEnum
	src, dst []int
	elem     *pairMapper
	keep     bool

	// nil when the child has no such property
	backRef  []int
	fk       []int
	ownerKey []int

	// inverse marks a reference that is the back reference of a collection
	// of the referenced pair. linkBack and detach maintain it.
	inverse bool
}

func compile(p *plan.Plan) map[pairKey]*pairMapper {
	pairs := make(map[pairKey]*pairMapper, len(p.Order))

	for _, key := range p.Order {
		rp := p.Pairs[key]
		pm := &pairMapper{
			name:        rp.String(),
			src:         rp.Source.Type,
			dst:         rp.Target.Type,
			mode:        rp.Mode,
			srcIdentity: index(rp.Source.Identity),
			dstIdentity: index(rp.Target.Identity),
			srcToken:    index(rp.Source.Token),
			dstToken:    index(rp.Target.Token),
			custom:      rp.Custom,
		}

		for _, sp := range rp.Scalars {
			pm.scalars = append(pm.scalars, scalarCopy{
				name:    sp.Target.Name,
				src:     sp.Source.Index,
				dst:     sp.Target.Index,
				convert: sp.Convert,
			})
		}

		pairs[key] = pm
	}

	// navigations link compiled pairs, so they need every pair first
	for _, key := range p.Order {
		rp, pm := p.Pairs[key], pairs[key]

		for _, nav := range rp.Navigations {
			pm.navs = append(pm.navs, navigation{
				name:     nav.Target.Name,
				shape:    nav.Shape,
				src:      nav.Source.Index,
				dst:      nav.Target.Index,
				elem:     pairs[nav.Elem],
				keep:     nav.KeepOnRemoved,
				backRef:  index(nav.BackReference),
				fk:       index(nav.ForeignKey),
				ownerKey: index(nav.OwnerKey),
			})
		}
	}

	for _, pm := range pairs {
		for _, nav := range pm.navs {
			if nav.shape == node.ShapeCollection && nav.backRef != nil && nav.elem != nil {
				nav.elem.markInverse(pm.dst, nav.backRef)
			}
		}
	}

	return pairs
}

func (pm *pairMapper) markInverse(parent reflect.Type, backRef []int) {
	for i := range pm.navs {
		nav := &pm.navs[i]
		if nav.shape == node.ShapeReference && nav.elem.dst == parent && slices.Equal(nav.dst, backRef) {
			nav.inverse = true
		}
	}
}

func index(f *analyze.FieldInfo) []int {
	if f == nil {
		return nil
	}

	return f.Index
}

// copyScalars copies every scalar property from the src struct to the dst
// struct. Both values are addressable structs.
func (pm *pairMapper) copyScalars(src, dst reflect.Value) error {
	for _, sc := range pm.scalars {
		sv := src.FieldByIndex(sc.src)
		dv := dst.FieldByIndex(sc.dst)

		if sc.convert == nil {
			dv.Set(sv)
			continue
		}

		out, err := sc.convert(sv)
		if err != nil {
			return fmt.Errorf("property %s: %w", sc.name, err)
		}

		dv.Set(out)
	}

	return nil
}

// sourceKey returns the identity key of a source entity pointer.
func (pm *pairMapper) sourceKey(src reflect.Value) (any, bool) {
	return node.KeyOf(src.Elem().FieldByIndex(pm.srcIdentity))
}

// sourceIdentity returns the dereferenced source identity, nil when absent.
func (pm *pairMapper) sourceIdentity(src reflect.Value) any {
	v := src.Elem().FieldByIndex(pm.srcIdentity)
	if _, ok := node.KeyOf(v); !ok {
		return nil
	}

	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return v.Interface()
}

// targetKey returns the identity key of a target entity pointer.
func (pm *pairMapper) targetKey(dst reflect.Value) (any, bool) {
	return node.KeyOf(dst.Elem().FieldByIndex(pm.dstIdentity))
}

// checkToken compares the source token with the stored one.
func (pm *pairMapper) checkToken(src, dst reflect.Value) error {
	if pm.dstToken == nil {
		return nil
	}

	stored := dst.Elem().FieldByIndex(pm.dstToken)
	if node.TokenIsZero(stored) {
		return ErrMissingConcurrencyToken
	}

	if pm.srcToken == nil || !node.TokensEqual(src.Elem().FieldByIndex(pm.srcToken), stored) {
		return ErrConcurrencyToken
	}

	return nil
}
