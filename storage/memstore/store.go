// Package memstore is an in-memory storage context for the mapper. It keeps
// committed entities per type and the inserts and deletes registered since
// the last Commit.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"graph-mapper/internal/plan"
	"graph-mapper/mapper"
	"graph-mapper/node"
)

var (
	ErrNotEntity  = errors.New("not a pointer to an entity struct")
	ErrNoIdentity = errors.New("entity has no identity")
)

var uuidType = reflect.TypeFor[uuid.UUID]()

// Option configures a Store.
type Option func(*Store)

// WithPropertyNames sets the identity and token property names. The defaults
// match the mapper defaults.
func WithPropertyNames(identity, token string) Option {
	return func(s *Store) {
		s.identity, s.token = identity, token
	}
}

// Store implements mapper.Store. Find hands out the committed entity itself,
// so mapping mutates it in place, and every navigation is always loaded.
type Store struct {
	identity, token string

	mu      sync.Mutex
	tables  map[reflect.Type]map[any]any
	seq     map[reflect.Type]int64
	added   []any
	removed []any
	loaded  map[any]struct{}
}

var _ mapper.Store = (*Store)(nil)

func New(opts ...Option) *Store {
	s := &Store{
		identity: plan.DefaultIdentityName,
		token:    plan.DefaultTokenName,
		tables:   make(map[reflect.Type]map[any]any),
		seq:      make(map[reflect.Type]int64),
		loaded:   make(map[any]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Seed stores entities as committed, assigning missing identities and tokens.
func (s *Store) Seed(entities ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entities {
		if err := s.insert(e); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) Find(ctx context.Context, t reflect.Type, identity any, _ mapper.Query) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, ok := node.KeyOf(reflect.ValueOf(identity))
	if !ok {
		return nil, fmt.Errorf("find %s: %w", t, ErrNoIdentity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tables[t][key]
	if !ok {
		return nil, nil
	}

	s.loaded[e] = struct{}{}

	return e, nil
}

func (s *Store) Add(ctx context.Context, entity any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := structOf(entity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.added = append(s.added, entity)

	return nil
}

// Remove registers entity for deletion, or cancels its pending insertion.
func (s *Store) Remove(ctx context.Context, entity any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := structOf(entity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.added {
		if e == entity {
			s.added = append(s.added[:i], s.added[i+1:]...)
			return nil
		}
	}

	for _, e := range s.removed {
		if e == entity {
			return nil
		}
	}

	s.removed = append(s.removed, entity)

	return nil
}

// Commit applies the pending inserts and deletes. Inserted entities get an
// identity when they have none and a fresh token. Entities handed out by Find
// since the last Commit get a fresh token too.
func (s *Store) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.removed {
		v, _ := structOf(e)
		if key, ok := node.KeyOf(v.FieldByName(s.identity)); ok {
			delete(s.tables[v.Type()], key)
		}

		delete(s.loaded, e)
	}

	for e := range s.loaded {
		v, _ := structOf(e)
		renewToken(v.FieldByName(s.token))
	}

	for _, e := range s.added {
		if err := s.insert(e); err != nil {
			return err
		}
	}

	s.added, s.removed = nil, nil
	s.loaded = make(map[any]struct{})

	return nil
}

// Pending reports the number of registered inserts and deletes.
func (s *Store) Pending() (added, removed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.added), len(s.removed)
}

// Added returns the entities registered for insertion.
func (s *Store) Added() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]any(nil), s.added...)
}

// Removed returns the entities registered for deletion.
func (s *Store) Removed() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]any(nil), s.removed...)
}

// Len returns the number of committed entities of type T.
func Len[T any](s *Store) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tables[reflect.TypeFor[T]()])
}

// Get returns the committed T with the given identity.
func Get[T any](s *Store, identity any) (*T, bool) {
	key, ok := node.KeyOf(reflect.ValueOf(identity))
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tables[reflect.TypeFor[T]()][key]
	if !ok {
		return nil, false
	}

	return e.(*T), true
}

func (s *Store) insert(entity any) error {
	v, err := structOf(entity)
	if err != nil {
		return err
	}

	t := v.Type()

	id := v.FieldByName(s.identity)
	if !id.IsValid() {
		return fmt.Errorf("%s: %w", t, ErrNoIdentity)
	}

	key, ok := node.KeyOf(id)
	if !ok {
		if key, err = s.assignIdentity(t, id); err != nil {
			return err
		}
	} else if n, isInt := key.(int64); isInt && n > s.seq[t] {
		s.seq[t] = n
	}

	if token := v.FieldByName(s.token); token.IsValid() && node.TokenIsZero(token) {
		renewToken(token)
	}

	table, ok := s.tables[t]
	if !ok {
		table = make(map[any]any)
		s.tables[t] = table
	}

	table[key] = entity

	return nil
}

func (s *Store) assignIdentity(t reflect.Type, id reflect.Value) (any, error) {
	switch {
	case id.Type() == uuidType:
		id.Set(reflect.ValueOf(uuid.New()))
	case id.Kind() == reflect.String:
		id.SetString(uuid.NewString())
	case id.CanInt():
		s.seq[t]++
		id.SetInt(s.seq[t])
	case id.CanUint():
		s.seq[t]++
		id.SetUint(uint64(s.seq[t]))
	default:
		return nil, fmt.Errorf("%s: cannot generate a %s identity", t, id.Type())
	}

	key, _ := node.KeyOf(id)

	return key, nil
}

// renewToken stores a new value in a token field. Fields of other kinds are
// left alone.
func renewToken(token reflect.Value) {
	if !token.IsValid() {
		return
	}

	switch {
	case token.Type() == uuidType:
		token.Set(reflect.ValueOf(uuid.New()))
	case token.Kind() == reflect.Slice && token.Type().Elem().Kind() == reflect.Uint8:
		id := uuid.New()
		token.SetBytes(append([]byte(nil), id[:]...))
	case token.Kind() == reflect.String:
		token.SetString(uuid.NewString())
	case token.CanInt():
		token.SetInt(token.Int() + 1)
	case token.CanUint():
		token.SetUint(token.Uint() + 1)
	}
}

func structOf(entity any) (reflect.Value, error) {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%T: %w", entity, ErrNotEntity)
	}

	return v.Elem(), nil
}
