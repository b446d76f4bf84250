package mapper

import (
	"context"
	"reflect"
)

// Session carries the identity state of one or more mapping calls. Every
// target instance is scalar-mapped at most once per session, so cyclic and
// diamond-shaped graphs terminate and shared source instances converge on one
// target. A Session is not safe for concurrent use.
type Session struct {
	m     *Mapper
	store Store
	opts  callOptions

	trackers map[reflect.Type]*tracker
	// targets whose children are being reconciled, root first
	lineage []reflect.Value
}

// tracker holds the session state of one target struct type.
type tracker struct {
	// visited targets, by identity key or, while they have none, by pointer
	visited map[any]struct{}
	// byID resolves an identity to the target mapped for it
	byID map[any]reflect.Value
	// bySource resolves a source pointer to its target
	bySource map[any]reflect.Value
	// created holds targets constructed in this session
	created map[any]struct{}
}

// NewSession creates a memory-only session.
func (m *Mapper) NewSession() *Session {
	return &Session{m: m, trackers: make(map[reflect.Type]*tracker)}
}

// NewStorageSession creates a session reconciling against store.
func (m *Mapper) NewStorageSession(store Store) *Session {
	s := m.NewSession()
	s.store = store

	return s
}

func (s *Session) tracker(t reflect.Type) *tracker {
	tr, ok := s.trackers[t]
	if !ok {
		tr = &tracker{
			visited:  make(map[any]struct{}),
			byID:     make(map[any]reflect.Value),
			bySource: make(map[any]reflect.Value),
			created:  make(map[any]struct{}),
		}
		s.trackers[t] = tr
	}

	return tr
}

func visitKey(pm *pairMapper, dst reflect.Value) any {
	if key, ok := pm.targetKey(dst); ok {
		return key
	}

	return dst.Interface()
}

func (tr *tracker) isVisited(pm *pairMapper, dst reflect.Value) bool {
	_, ok := tr.visited[visitKey(pm, dst)]
	return ok
}

func (tr *tracker) mark(pm *pairMapper, src, dst reflect.Value) {
	tr.visited[visitKey(pm, dst)] = struct{}{}
	tr.bySource[src.Interface()] = dst

	if key, ok := pm.targetKey(dst); ok {
		tr.byID[key] = dst
	}
}

// onLineage reports whether dst is one of the targets the walk descended
// through to reach the current one.
func (s *Session) onLineage(dst reflect.Value) bool {
	for _, v := range s.lineage {
		if v.Pointer() == dst.Pointer() {
			return true
		}
	}

	return false
}

func (tr *tracker) isCreated(dst reflect.Value) bool {
	_, ok := tr.created[dst.Interface()]
	return ok
}

func (s *Session) storage() bool {
	return s.store != nil
}

// create constructs a new target and, against storage, registers it for
// insertion.
func (s *Session) create(ctx context.Context, pm *pairMapper, path string) (reflect.Value, error) {
	dst := reflect.New(pm.dst)
	s.tracker(pm.dst).created[dst.Interface()] = struct{}{}

	if !s.storage() {
		return dst, nil
	}

	if err := s.store.Add(ctx, dst.Interface()); err != nil {
		return reflect.Value{}, err
	}

	s.m.logger.DebugContext(ctx, "entity registered for insertion", "source", pm.src.String(), "target", pm.dst.String(), "path", path)

	return dst, nil
}
