// Package mapper maps graphs of detached objects onto graphs of persisted
// entities.
//
// Pairs of struct types are registered on a Builder, optionally configured in
// three layers (global, per type, per pair) or from YAML files, and compiled
// once by Build into an immutable Mapper:
//
//	b := mapper.NewBuilder(mapper.WithLogger(logger))
//	mapper.RegisterGraph[store.Order, warehouse.Order](b)
//	mapper.ConfigureType[warehouse.Tag](b).SetKeepEntityOnMappingRemoved(true)
//	m, err := b.Build()
//
// Map copies a graph in memory. MapToStorage reconciles it against a Store:
// entities with an identity are fetched and updated, the rest are registered
// for insertion, and children the source no longer holds are unlinked or
// registered for deletion. Committing is up to the caller.
package mapper
