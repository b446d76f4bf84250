package plan

import (
	"fmt"

	"graph-mapper/internal/analyze"
	"graph-mapper/internal/common"
	"graph-mapper/internal/diagnostic"
	"graph-mapper/node"
	"graph-mapper/primitive"
)

// Plan is the output of the resolution pipeline.
type Plan struct {
	// Pairs holds every compiled type pair.
	Pairs map[node.StructPair]*ResolvedTypePair
	// Order lists the pairs in resolution order.
	Order []node.StructPair
	// TypeGraph holds all analyzed types.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Lookup returns the resolved pair, or nil.
func (p *Plan) Lookup(pair node.StructPair) *ResolvedTypePair {
	return p.Pairs[pair]
}

// ResolvedTypePair is the fully resolved mapping between two entity types.
type ResolvedTypePair struct {
	Source *analyze.TypeInfo
	Target *analyze.TypeInfo
	Mode   Mode
	// Scalars are copied in order.
	Scalars []ResolvedProperty
	// Navigations are reconciled in order after the scalars.
	Navigations []ResolvedNavigation
	// Custom mappers run after the default copy.
	Custom   []CustomMapping
	Excluded common.Set
	// Unmapped lists target properties with no source counterpart.
	Unmapped []string
}

// Key returns the (source, target) struct pair.
func (p *ResolvedTypePair) Key() node.StructPair {
	return node.StructPair{Src: p.Source.Type, Dst: p.Target.Type}
}

// String renders the pair as "store.Order->warehouse.Order".
func (p *ResolvedTypePair) String() string {
	return pairName(p.Key())
}

// ResolvedProperty is one scalar property copy.
type ResolvedProperty struct {
	Source, Target *analyze.FieldInfo
	Strategy       ConversionStrategy
	// Convert is nil for StrategyDirectAssign.
	Convert  primitive.Converter
	Category primitive.CategoryEnum
	// MatchedBy names the pairing rule, see node.MatchField.
	MatchedBy string
}

// ResolvedNavigation is one reference or collection property.
type ResolvedNavigation struct {
	Source, Target *analyze.FieldInfo
	Shape          node.ShapeEnum
	// Elem is the pair used for the children.
	Elem          node.StructPair
	KeepOnRemoved bool
	// BackReference is the property of the child target pointing back to the
	// parent target, if any.
	BackReference *analyze.FieldInfo
	// ForeignKey is the child target scalar holding the parent identity.
	ForeignKey *analyze.FieldInfo
	// OwnerKey is the parent target scalar holding the identity of a
	// referenced child (reference navigations only).
	OwnerKey *analyze.FieldInfo
}

// ConversionStrategy describes how a scalar value is carried over.
type ConversionStrategy int

const (
	// StrategyDirectAssign - direct assignment (types are assignable).
	StrategyDirectAssign ConversionStrategy = iota
	// StrategyConverter - call a registered converter.
	StrategyConverter
	// StrategyConvert - automatic conversion of a primitive category.
	StrategyConvert
	// StrategyPointerDeref - dereference pointer with nil check.
	StrategyPointerDeref
	// StrategyPointerWrap - take address to create pointer.
	StrategyPointerWrap
)

// String returns a human-readable strategy name.
func (s ConversionStrategy) String() string {
	switch s {
	case StrategyDirectAssign:
		return "direct_assign"
	case StrategyConverter:
		return "converter"
	case StrategyConvert:
		return "convert"
	case StrategyPointerDeref:
		return "pointer_deref"
	case StrategyPointerWrap:
		return "pointer_wrap"
	default:
		return common.UnknownStr
	}
}

func pairName(pair node.StructPair) string {
	return fmt.Sprintf("%s->%s", common.ShortTypeName(pair.Src), common.ShortTypeName(pair.Dst))
}
