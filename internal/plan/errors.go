package plan

import "errors"

var (
	ErrKeyPropertyExcluded    = errors.New("identity or concurrency token property cannot be excluded")
	ErrUselessExclusion       = errors.New("excluded property does not exist")
	ErrCustomMappingConflict  = errors.New("property is both excluded and custom-mapped")
	ErrUnregisteredMapping    = errors.New("no mapping registered for type pair")
	ErrRedundantConfiguration = errors.New("configuration refers to a property or type that is never mapped")
	ErrIncompatibleProperty   = errors.New("property types are incompatible")
	ErrInvalidConfiguration   = errors.New("invalid configuration")
)

// Diagnostic codes.
const (
	CodeKeyPropertyExcluded    = "key_property_excluded"
	CodeUselessExclusion       = "useless_exclusion"
	CodeCustomMappingConflict  = "custom_mapping_conflict"
	CodeUnregisteredMapping    = "unregistered_mapping"
	CodeRedundantConfiguration = "redundant_configuration"
	CodeIncompatibleProperty   = "incompatible_property"
	CodeInvalidConfiguration   = "invalid_configuration"
	CodeUnmappedTarget         = "unmapped_target"
)
