package node

import "graph-mapper/internal/common"

// ShapeEnum classifies a property by how the walker treats it.
type ShapeEnum int

const (
	ShapeUnknown    ShapeEnum = iota
	ShapeScalar               // copied (and converted) as a value
	ShapeReference            // *Entity
	ShapeCollection           // []*Entity
)

// String returns a human-readable shape name.
func (s ShapeEnum) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeReference:
		return "reference"
	case ShapeCollection:
		return "collection"
	default:
		return common.UnknownStr
	}
}

// IsNavigation reports whether the shape links to other entities.
func (s ShapeEnum) IsNavigation() bool {
	return s == ShapeReference || s == ShapeCollection
}
