// Package mapping provides the YAML schema, parsing, normalization and
// validation of mapping configuration files, and merges a file into the
// programmatic configuration layers.
//
// # Schema Overview
//
//	version: "1"
//	defaults:
//	  identity: ID
//	  concurrency_token: Version
//	  mode: upsert            # upsert | insert | update | memory_only
//	  keep_on_removed: false
//	  throw_on_redundant: true
//	  exclude: [CreatedAt]
//	types:
//	  - type: warehouse.Tag
//	    keep_on_removed: true
//	pairs:
//	  - source: store.Order
//	    target: warehouse.Order
//	    mode: update
//	    exclude: [Notes]
//	    properties:
//	      Tags: { keep_on_removed: true }
//
// # Type names
//
// Types are written as "pkg.Name", as a full "import/path.Name", or as a
// bare "Name" when that is unambiguous among the registered types.
//
// # Layering
//
// Values set in a file override the programmatic layer they land on;
// exclusion lists are appended. Unknown keys are rejected at parse time.
package mapping
