package mapper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"graph-mapper/internal/analyze"
	"graph-mapper/internal/common"
)

// ErrNoStore is returned by MapToStorageIn for a memory-only session.
var ErrNoStore = errors.New("session has no store")

// Mapper holds the compiled type pairs. It is immutable and safe for
// concurrent use.
type Mapper struct {
	pairs    map[pairKey]*pairMapper
	logger   *slog.Logger
	tracer   trace.Tracer
	warnings []string
}

// Pairs lists the compiled pairs, e.g. "store.Order->warehouse.Order".
func (m *Mapper) Pairs() []string {
	out := make([]string, 0, len(m.pairs))
	for _, pm := range m.pairs {
		out = append(out, pm.name)
	}

	sort.Strings(out)

	return out
}

// Warnings lists the configuration problems tolerated at build.
func (m *Mapper) Warnings() []string {
	return append([]string(nil), m.warnings...)
}

func (m *Mapper) lookup(src, dst reflect.Type) (*pairMapper, error) {
	pm, ok := m.pairs[pairKey{Src: src, Dst: dst}]
	if !ok {
		return nil, &EntityError{
			Err:  fmt.Errorf("%w: %s->%s", ErrUnregisteredMapping, common.ShortTypeName(src), common.ShortTypeName(dst)),
			Type: dst,
			Path: dst.Name(),
		}
	}

	return pm, nil
}

// Map maps src onto dst in memory, creating dst when it is nil. Children are
// matched by identity against what dst already holds.
func Map[S, T any](m *Mapper, src *S, dst *T, opts ...MapOption) (*T, error) {
	return MapIn(m.NewSession(), src, dst, opts...)
}

// MapIn is Map within an explicit session. Targets mapped by earlier calls in
// the same session are reused and not mapped again.
func MapIn[S, T any](s *Session, src *S, dst *T, opts ...MapOption) (*T, error) {
	pm, err := s.m.lookup(typeOf[S](), typeOf[T]())
	if err != nil {
		return nil, err
	}

	if src == nil {
		return dst, nil
	}

	s.opts = newCallOptions(opts)
	ctx := context.Background()
	path := analyze.NewTypePath(pm.dst.Name())
	srcV := reflect.ValueOf(src)

	var dstV reflect.Value
	if dst != nil {
		dstV = reflect.ValueOf(dst)
	} else if dstV, err = s.resolve(ctx, pm, srcV, nil, s.opts.query, path); err != nil {
		return nil, err
	}

	if err := s.walk(ctx, pm, srcV, dstV, path); err != nil {
		return nil, err
	}

	return dstV.Interface().(*T), nil
}

// MapToStorage maps src onto the entity store holds for its identity, or
// onto a new entity registered for insertion. Nothing is committed.
func MapToStorage[S, T any](ctx context.Context, m *Mapper, store Store, src *S, opts ...MapOption) (*T, error) {
	return MapToStorageIn[S, T](ctx, m.NewStorageSession(store), src, opts...)
}

// MapToStorageIn is MapToStorage within an explicit storage session.
func MapToStorageIn[S, T any](ctx context.Context, s *Session, src *S, opts ...MapOption) (res *T, err error) {
	if !s.storage() {
		return nil, ErrNoStore
	}

	pm, err := s.m.lookup(typeOf[S](), typeOf[T]())
	if err != nil {
		return nil, err
	}

	if src == nil {
		return nil, nil
	}

	ctx, span := s.m.startSpan(ctx, "mapper.MapToStorage",
		attribute.String("mapper.pair", pm.name),
		attribute.String("mapper.mode", pm.mode.String()),
	)
	defer func() { endSpan(span, err) }()

	s.opts = newCallOptions(opts)
	path := analyze.NewTypePath(pm.dst.Name())
	srcV := reflect.ValueOf(src)

	dstV, err := s.resolve(ctx, pm, srcV, nil, s.opts.query, path)
	if err != nil {
		return nil, err
	}

	if err := s.walk(ctx, pm, srcV, dstV, path); err != nil {
		return nil, err
	}

	return dstV.Interface().(*T), nil
}

// MapAll maps every source to storage concurrently, each in a session of its
// own, so sources sharing a new child insert it once each. The first failure
// cancels the rest. store must be safe for concurrent use.
func MapAll[S, T any](ctx context.Context, m *Mapper, store Store, srcs []*S, opts ...MapOption) ([]*T, error) {
	out := make([]*T, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, src := range srcs {
		g.Go(func() error {
			res, err := MapToStorage[S, T](ctx, m, store, src, opts...)
			if err != nil {
				return err
			}

			out[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
