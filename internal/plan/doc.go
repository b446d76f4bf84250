// Package plan resolves mapping configuration into a Plan consumed by the
// mapper at build time.
//
// Resolution pipeline:
//  1. Merge configuration layers: type pair > type > global defaults
//  2. Reflect every registered pair (and, for graph registrations, every
//     pair reachable through navigations) into a type graph
//  3. For each pair:
//     - Pair target properties with source properties by tag or name
//     - Select a conversion for every scalar property
//     - Resolve the removal policy of every navigation
//  4. Validate exclusions, custom mappers, property overrides and
//     navigation completeness, emitting diagnostics
package plan
