package mapper

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.opentelemetry.io/otel/attribute"

	"graph-mapper/internal/analyze"
)

// walk maps src onto dst, both pointers to the struct types of pm. A target
// already visited in the session is left as is.
func (s *Session) walk(ctx context.Context, pm *pairMapper, src, dst reflect.Value, path *analyze.TypePath) error {
	if err := ctx.Err(); err != nil {
		return s.fail(err, pm, src, path)
	}

	tr := s.tracker(pm.dst)
	if tr.isVisited(pm, dst) {
		return nil
	}

	if err := pm.copyScalars(src.Elem(), dst.Elem()); err != nil {
		return s.fail(err, pm, src, path)
	}

	for _, cm := range pm.custom {
		cm.Apply(src.Interface(), dst.Interface())
	}

	// before the children, so that a cycle back to dst stops here
	tr.mark(pm, src, dst)

	s.lineage = append(s.lineage, dst)
	defer func() { s.lineage = s.lineage[:len(s.lineage)-1] }()

	return s.reconcileChildren(ctx, pm, src, dst, path)
}

// resolve finds or creates the target for src. candidates indexes the
// current children of the navigation being reconciled, by identity key.
func (s *Session) resolve(ctx context.Context, pm *pairMapper, src reflect.Value, candidates map[any]reflect.Value, q Query, path *analyze.TypePath) (reflect.Value, error) {
	tr := s.tracker(pm.dst)
	if dst, ok := tr.bySource[src.Interface()]; ok {
		return dst, nil
	}

	if s.storage() && pm.mode == ModeMemoryOnly {
		return reflect.Value{}, s.fail(fmt.Errorf("%w: %s is memory only", ErrUnregisteredMapping, pm.name), pm, src, path)
	}

	key, hasID := pm.sourceKey(src)
	if !hasID {
		if s.storage() && pm.mode == ModeUpdate {
			return reflect.Value{}, s.fail(ErrUpdateWithoutIdentity, pm, src, path)
		}

		return s.createFor(ctx, pm, src, path)
	}

	dst, found := candidates[key]
	if !found {
		dst, found = tr.byID[key]
	}

	if found && tr.isCreated(dst) {
		return dst, nil
	}

	if !found && s.storage() {
		var err error
		if dst, found, err = s.find(ctx, pm, src, q); err != nil {
			return reflect.Value{}, s.fail(err, pm, src, path)
		}
	}

	if !found {
		if s.storage() && pm.mode != ModeInsert {
			return reflect.Value{}, s.fail(ErrEntityNotFound, pm, src, path)
		}

		return s.createFor(ctx, pm, src, path)
	}

	if !s.storage() {
		return dst, nil
	}

	if pm.mode == ModeInsert {
		return reflect.Value{}, s.fail(ErrInsertWithExistingIdentity, pm, src, path)
	}

	if !tr.isVisited(pm, dst) {
		if err := pm.checkToken(src, dst); err != nil {
			return reflect.Value{}, s.fail(err, pm, src, path)
		}
	}

	return dst, nil
}

func (s *Session) createFor(ctx context.Context, pm *pairMapper, src reflect.Value, path *analyze.TypePath) (reflect.Value, error) {
	dst, err := s.create(ctx, pm, path.String())
	if err != nil {
		return reflect.Value{}, s.fail(err, pm, src, path)
	}

	return dst, nil
}

// find fetches the persisted target with the identity of src.
func (s *Session) find(ctx context.Context, pm *pairMapper, src reflect.Value, q Query) (dst reflect.Value, found bool, err error) {
	id := pm.sourceIdentity(src)

	ctx, span := s.m.startSpan(ctx, "mapper.store.Find",
		attribute.String("mapper.target", pm.dst.String()),
		attribute.String("mapper.identity", fmt.Sprint(id)),
		attribute.StringSlice("mapper.includes", q.Includes),
	)
	defer func() {
		span.SetAttributes(attribute.Bool("mapper.found", found))
		endSpan(span, err)
	}()

	res, err := s.store.Find(ctx, pm.dst, id, q)
	if err != nil || res == nil {
		return reflect.Value{}, false, err
	}

	v := reflect.ValueOf(res)
	if v.Type() != reflect.PointerTo(pm.dst) {
		return reflect.Value{}, false, fmt.Errorf("store returned %T, want *%s", res, pm.dst)
	}

	if v.IsNil() {
		return reflect.Value{}, false, nil
	}

	return v, true, nil
}

// fail wraps err in an EntityError unless a nested call already did.
func (s *Session) fail(err error, pm *pairMapper, src reflect.Value, path *analyze.TypePath) error {
	var ee *EntityError
	if errors.As(err, &ee) {
		return err
	}

	return &EntityError{
		Err:      err,
		Type:     pm.dst,
		Identity: pm.sourceIdentity(src),
		Path:     path.String(),
	}
}
