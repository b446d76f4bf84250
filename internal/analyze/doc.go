// Package analyze reflects struct types into a type graph.
//
// Each struct becomes a TypeInfo listing its exported properties with their
// index paths and shapes (scalar, reference, collection). A type whose
// identity property exists is an entity; its optional concurrency token is
// resolved alongside it.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: properties, identity and token of one struct
//   - TypePath: readable navigation path used in error messages
package analyze
