// Package diagnostic collects build-time errors and warnings produced while
// resolving type-pair configurations.
//
// Every diagnostic carries a stable code (e.g. "key_property_excluded"), the
// type pair and property it concerns, optional suggestions, and for errors
// the sentinel that callers match with errors.Is.
package diagnostic
