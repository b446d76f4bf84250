package mapper

import (
	"context"
	"reflect"
)

// Query augments the lookup of a persisted entity.
type Query struct {
	// Includes names navigation paths the store should load along with the
	// entity, e.g. "Items" or "Items.Order".
	Includes []string
}

// Store is the storage context entities are reconciled against. The mapper
// only registers side effects; committing them is up to the caller.
type Store interface {
	// Find returns the persisted entity (a pointer to t) with the given
	// identity, or nil and no error when there is none.
	Find(ctx context.Context, t reflect.Type, identity any, q Query) (any, error)
	// Add registers a new entity for insertion.
	Add(ctx context.Context, entity any) error
	// Remove registers an entity for deletion.
	Remove(ctx context.Context, entity any) error
}
