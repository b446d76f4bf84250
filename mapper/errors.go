package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"graph-mapper/internal/common"
	"graph-mapper/internal/plan"
)

// Build-time errors. Build returns them joined, each reachable with
// errors.Is.
var (
	ErrKeyPropertyExcluded    = plan.ErrKeyPropertyExcluded
	ErrUselessExclusion       = plan.ErrUselessExclusion
	ErrCustomMappingConflict  = plan.ErrCustomMappingConflict
	ErrRedundantConfiguration = plan.ErrRedundantConfiguration
	ErrIncompatibleProperty   = plan.ErrIncompatibleProperty
	ErrInvalidConfiguration   = plan.ErrInvalidConfiguration
	// ErrUnregisteredMapping is raised at build time for navigations and at
	// walk time for unregistered top-level pairs.
	ErrUnregisteredMapping = plan.ErrUnregisteredMapping
)

// Walk-time errors, wrapped in *EntityError.
var (
	ErrEntityNotFound             = errors.New("entity not found")
	ErrConcurrencyToken           = errors.New("concurrency token mismatch")
	ErrMissingConcurrencyToken    = errors.New("stored entity has no concurrency token")
	ErrUpdateWithoutIdentity      = errors.New("update requested without identity")
	ErrInsertWithExistingIdentity = errors.New("insert requested for an existing identity")
)

var valueConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// EntityError reports a walk-time failure for one entity.
type EntityError struct {
	Err error
	// Type is the target entity type.
	Type reflect.Type
	// Identity is the source identity, nil when absent.
	Identity any
	// Path is the navigation path from the root, e.g. "Order.Items[]".
	Path string
}

func (e *EntityError) Error() string {
	var b strings.Builder

	b.WriteString(common.ShortTypeName(e.Type))

	if e.Identity != nil {
		fmt.Fprintf(&b, "(%s)", strings.TrimSpace(valueConfig.Sprint(e.Identity)))
	}

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	b.WriteString(": ")
	b.WriteString(e.Err.Error())

	return b.String()
}

func (e *EntityError) Unwrap() error {
	return e.Err
}
