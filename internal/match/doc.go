// Package match provides identifier normalization and edit-distance helpers
// used to pair source and target properties and to suggest corrections for
// misspelled property names in configuration.
//
// Key functions:
//   - NormalizeIdent: case- and separator-insensitive identifier form
//   - Levenshtein: edit distance between strings
//   - Suggest: closest known names for an unknown one
package match
