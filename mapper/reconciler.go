package mapper

import (
	"context"
	"reflect"

	"graph-mapper/internal/analyze"
	"graph-mapper/node"
)

func (s *Session) reconcileChildren(ctx context.Context, pm *pairMapper, src, dst reflect.Value, path *analyze.TypePath) error {
	for i := range pm.navs {
		nav := &pm.navs[i]

		var err error
		if nav.shape == node.ShapeCollection {
			err = s.reconcileCollection(ctx, pm, nav, src, dst, path.Field(nav.name).Slice())
		} else {
			err = s.reconcileReference(ctx, pm, nav, src, dst, path.Field(nav.name))
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// reconcileCollection makes the target collection mirror the source one.
// Matched children are updated in place, new ones inserted, and the ones the
// source no longer holds are unlinked or deleted.
func (s *Session) reconcileCollection(ctx context.Context, pm *pairMapper, nav *navigation, src, dst reflect.Value, path *analyze.TypePath) error {
	elem := nav.elem
	srcList := src.Elem().FieldByIndex(nav.src)
	dstField := dst.Elem().FieldByIndex(nav.dst)
	// a copy of the slice header, dstField is replaced at the end
	currentList := reflect.ValueOf(dstField.Interface())

	candidates := make(map[any]reflect.Value, currentList.Len())
	for i := range currentList.Len() {
		c := currentList.Index(i)
		if c.IsNil() {
			continue
		}

		if key, ok := elem.targetKey(c); ok {
			candidates[key] = c
		}
	}

	result := reflect.MakeSlice(dstField.Type(), 0, srcList.Len())
	kept := make(map[any]struct{}, srcList.Len())

	for i := range srcList.Len() {
		sc := srcList.Index(i)
		if sc.IsNil() {
			continue
		}

		tc, err := s.resolve(ctx, elem, sc, candidates, Query{}, path)
		if err != nil {
			return err
		}

		if err := s.walk(ctx, elem, sc, tc, path); err != nil {
			return err
		}

		s.linkBack(pm, nav, dst, tc)

		if _, dup := kept[tc.Interface()]; !dup {
			kept[tc.Interface()] = struct{}{}
			result = reflect.Append(result, tc)
		}
	}

	for i := range currentList.Len() {
		c := currentList.Index(i)
		if c.IsNil() {
			continue
		}

		if _, ok := kept[c.Interface()]; ok {
			continue
		}

		if s.opts.keepUnmatched {
			result = reflect.Append(result, c)
			continue
		}

		if err := s.detach(ctx, pm, nav, dst, c, path); err != nil {
			return err
		}
	}

	if result.Len() > 0 || !dstField.IsNil() {
		dstField.Set(result)
	}

	return nil
}

// reconcileReference maps a single-valued navigation.
func (s *Session) reconcileReference(ctx context.Context, pm *pairMapper, nav *navigation, src, dst reflect.Value, path *analyze.TypePath) error {
	elem := nav.elem
	sv := src.Elem().FieldByIndex(nav.src)
	dv := dst.Elem().FieldByIndex(nav.dst)
	current := reflect.ValueOf(dv.Interface())

	if sv.IsNil() {
		if current.IsNil() || nav.keep || s.opts.keepUnmatched {
			return nil
		}

		// a link back up the walk, or one kept by the owning collection
		if nav.inverse || s.onLineage(current) {
			return nil
		}

		dv.SetZero()
		s.setOwnerKey(pm, nav, dst, reflect.Value{})

		return s.remove(ctx, elem, current, path)
	}

	var candidates map[any]reflect.Value
	if !current.IsNil() {
		if key, ok := elem.targetKey(current); ok {
			candidates = map[any]reflect.Value{key: current}
		}
	}

	tc, err := s.resolve(ctx, elem, sv, candidates, Query{}, path)
	if err != nil {
		return err
	}

	if err := s.walk(ctx, elem, sv, tc, path); err != nil {
		return err
	}

	if !current.IsNil() && current.Pointer() != tc.Pointer() && !s.opts.keepUnmatched {
		if err := s.detach(ctx, pm, nav, dst, current, path); err != nil {
			return err
		}
	}

	dv.Set(tc)
	s.setOwnerKey(pm, nav, dst, tc)

	return nil
}

// linkBack points a collection child at its parent when it does not point
// anywhere yet, and fills its foreign key from the parent identity.
func (s *Session) linkBack(pm *pairMapper, nav *navigation, parent, child reflect.Value) {
	if nav.backRef != nil {
		if br := child.Elem().FieldByIndex(nav.backRef); br.IsNil() {
			br.Set(parent)
		}
	}

	if nav.fk != nil {
		fk := child.Elem().FieldByIndex(nav.fk)
		if id := parent.Elem().FieldByIndex(pm.dstIdentity); fk.IsZero() && !id.IsZero() {
			setKey(fk, id)
		}
	}
}

func (s *Session) setOwnerKey(pm *pairMapper, nav *navigation, parent, child reflect.Value) {
	if nav.ownerKey == nil {
		return
	}

	owner := parent.Elem().FieldByIndex(nav.ownerKey)
	if !child.IsValid() {
		owner.SetZero()
		return
	}

	setKey(owner, child.Elem().FieldByIndex(nav.elem.dstIdentity))
}

// detach takes child out of the navigation: unlinked when the policy keeps
// it or the session reached it elsewhere, otherwise deleted.
func (s *Session) detach(ctx context.Context, pm *pairMapper, nav *navigation, parent, child reflect.Value, path *analyze.TypePath) error {
	if !nav.keep && !s.tracker(nav.elem.dst).isVisited(nav.elem, child) {
		return s.remove(ctx, nav.elem, child, path)
	}

	if nav.backRef != nil {
		if br := child.Elem().FieldByIndex(nav.backRef); !br.IsNil() && br.Pointer() == parent.Pointer() {
			br.SetZero()
		}
	}

	if nav.fk != nil {
		fk := child.Elem().FieldByIndex(nav.fk)
		parentKey, hasKey := pm.targetKey(parent)
		if key, ok := node.KeyOf(fk); ok && hasKey && key == parentKey {
			fk.SetZero()
		}
	}

	s.m.logger.DebugContext(ctx, "entity unlinked", "source", pm.dst.String(), "target", nav.elem.dst.String(), "path", path.String())

	return nil
}

func (s *Session) remove(ctx context.Context, pm *pairMapper, child reflect.Value, path *analyze.TypePath) error {
	if !s.storage() {
		return nil
	}

	if err := s.store.Remove(ctx, child.Interface()); err != nil {
		return &EntityError{Err: err, Type: pm.dst, Identity: identityOf(pm, child), Path: path.String()}
	}

	s.m.logger.DebugContext(ctx, "entity registered for deletion", "target", pm.dst.String(), "path", path.String())

	return nil
}

func identityOf(pm *pairMapper, dst reflect.Value) any {
	key, ok := pm.targetKey(dst)
	if !ok {
		return nil
	}

	return key
}

// setKey assigns an identity to a key field, converting between key types.
func setKey(field, id reflect.Value) {
	for id.Kind() == reflect.Ptr {
		if id.IsNil() {
			field.SetZero()
			return
		}

		id = id.Elem()
	}

	ft := field.Type()
	if ft.Kind() == reflect.Ptr {
		v := reflect.New(ft.Elem())
		v.Elem().Set(id.Convert(ft.Elem()))
		field.Set(v)

		return
	}

	field.Set(id.Convert(ft))
}
