package plan

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"graph-mapper/internal/analyze"
	"graph-mapper/internal/common"
	"graph-mapper/internal/diagnostic"
	"graph-mapper/internal/match"
	"graph-mapper/node"
)

// maxSuggestions bounds "did you mean" lists.
const maxSuggestions = 3

// Resolver performs the resolution pipeline.
type Resolver struct {
	cfg      *Config
	analyzer *analyze.Analyzer
	diags    diagnostic.Diagnostics
	// resolved caches pairs so each is resolved and diagnosed once
	resolved   map[node.StructPair]*ResolvedTypePair
	registered map[node.StructPair]bool
	order      []node.StructPair
}

// NewResolver creates a new Resolver over cfg. cfg must not change while
// resolving.
func NewResolver(cfg *Config) *Resolver {
	return &Resolver{
		cfg:        cfg,
		analyzer:   analyze.NewAnalyzer(cfg.Naming),
		resolved:   make(map[node.StructPair]*ResolvedTypePair),
		registered: make(map[node.StructPair]bool),
	}
}

// Resolve runs the full resolution pipeline. The returned Plan carries every
// diagnostic; the error joins the error diagnostics and is nil when there are
// none.
func (r *Resolver) Resolve() (*Plan, error) {
	for _, reg := range r.cfg.Registrations {
		r.registered[reg.Pair] = true
	}

	// graph registrations first, so that explicit pairs see every pair they
	// contribute
	var graph node.Dealer

	for _, reg := range r.cfg.Registrations {
		if reg.Graph {
			graph.Needs(reg.Pair.Src, reg.Pair.Dst)
		}
	}

	for src, dst, ok := graph.NextNeeds(); ok; src, dst, ok = graph.NextNeeds() {
		rp := r.resolvePair(node.StructPair{Src: src, Dst: dst})
		if rp == nil {
			continue
		}

		for _, nav := range rp.Navigations {
			r.registered[nav.Elem] = true
			graph.Needs(nav.Elem.Src, nav.Elem.Dst)
		}
	}

	var all node.Dealer

	for _, reg := range r.cfg.Registrations {
		all.Needs(reg.Pair.Src, reg.Pair.Dst)
	}

	for src, dst, ok := all.NextNeeds(); ok; src, dst, ok = all.NextNeeds() {
		rp := r.resolvePair(node.StructPair{Src: src, Dst: dst})
		if rp == nil {
			continue
		}

		for _, nav := range rp.Navigations {
			if !r.registered[nav.Elem] {
				r.diags.AddError(ErrUnregisteredMapping, CodeUnregisteredMapping,
					fmt.Sprintf("navigation needs %s, which is not registered", pairName(nav.Elem)),
					rp.String(), nav.Target.Name)

				continue
			}

			all.Needs(nav.Elem.Src, nav.Elem.Dst)
		}
	}

	r.validateTypeLayers()
	r.validateGlobalLayer()
	r.validatePairLayers()

	plan := &Plan{
		Pairs:       make(map[node.StructPair]*ResolvedTypePair, len(r.order)),
		Order:       r.order,
		TypeGraph:   r.analyzer.Graph(),
		Diagnostics: r.diags,
	}

	for _, key := range r.order {
		plan.Pairs[key] = r.resolved[key]
	}

	return plan, r.diags.Error()
}

// resolvePair resolves one pair, or returns nil if its types cannot be
// analyzed.
func (r *Resolver) resolvePair(key node.StructPair) *ResolvedTypePair {
	if rp, ok := r.resolved[key]; ok {
		return rp
	}

	r.resolved[key] = nil

	src, errS := r.entity(key.Src)
	dst, errT := r.entity(key.Dst)

	if err := errors.Join(errS, errT); err != nil {
		r.diags.AddError(ErrInvalidConfiguration, CodeInvalidConfiguration, err.Error(), pairName(key), "")
		return nil
	}

	rp := &ResolvedTypePair{
		Source:   src,
		Target:   dst,
		Mode:     r.cfg.modeFor(key),
		Excluded: r.cfg.exclusionsFor(key),
	}

	if pc, ok := r.cfg.Pairs[key]; ok {
		rp.Custom = pc.Custom
	}

	r.checkKeyExclusions(rp)

	custom := common.NewSet()
	for _, cm := range rp.Custom {
		custom.Add(cm.Property)
	}

	for i := range dst.Fields {
		r.resolveProperty(rp, &dst.Fields[i], custom.Has(dst.Fields[i].Name))
	}

	r.resolved[key] = rp
	r.order = append(r.order, key)

	return rp
}

// entity analyzes t and requires it to have an identity.
func (r *Resolver) entity(t reflect.Type) (*analyze.TypeInfo, error) {
	info, err := r.analyzer.Analyze(t)
	if err != nil {
		return nil, err
	}

	if !info.IsEntity() {
		identity, _ := r.cfg.Naming(t)
		return nil, fmt.Errorf("%s has no identity property %q", info.ID.Short(), identity)
	}

	return info, nil
}

// resolveProperty pairs one target property with its source counterpart.
// A custom-mapped property gets no default handling, the custom mapper
// alone writes it.
func (r *Resolver) resolveProperty(rp *ResolvedTypePair, tf *analyze.FieldInfo, customMapped bool) {
	if customMapped || rp.Excluded.Has(tf.Name) || node.Ignored(tf.Struct) {
		return
	}

	m := node.MatchField(rp.Source.Type, tf.Struct)
	if !m.Found || rp.Excluded.Has(m.SrcName) {
		rp.Unmapped = append(rp.Unmapped, tf.Name)
		r.diags.AddInfo(CodeUnmappedTarget, "no source property", rp.String(), tf.Name)

		return
	}

	sf, _ := rp.Source.Field(m.SrcName)

	switch {
	case sf.Shape.IsNavigation() || tf.Shape.IsNavigation():
		r.resolveNavigation(rp, sf, tf)
	case node.ValueStructOfEntity(tf.Type, r.analyzer.IsEntity) || node.ValueStructOfEntity(sf.Type, r.analyzer.IsEntity):
		r.diags.AddError(ErrIncompatibleProperty, CodeIncompatibleProperty,
			"entities held by value cannot be tracked, use a pointer", rp.String(), tf.Name)
	default:
		strategy, conv, cat, ok := r.selectConversion(sf.Type, tf.Type)
		if !ok {
			r.diags.AddError(ErrIncompatibleProperty, CodeIncompatibleProperty,
				fmt.Sprintf("no conversion from %s to %s", analyze.TypeString(sf.Type), analyze.TypeString(tf.Type)),
				rp.String(), tf.Name)

			return
		}

		rp.Scalars = append(rp.Scalars, ResolvedProperty{
			Source:    sf,
			Target:    tf,
			Strategy:  strategy,
			Convert:   conv,
			Category:  cat,
			MatchedBy: m.By,
		})
	}
}

func (r *Resolver) resolveNavigation(rp *ResolvedTypePair, sf, tf *analyze.FieldInfo) {
	if sf.Shape != tf.Shape {
		r.diags.AddError(ErrIncompatibleProperty, CodeIncompatibleProperty,
			fmt.Sprintf("%s %s cannot map to %s %s", sf.Shape, sf.Name, tf.Shape, tf.Name),
			rp.String(), tf.Name)

		return
	}

	child, err := r.analyzer.Analyze(tf.Elem)
	if err != nil {
		r.diags.AddError(ErrInvalidConfiguration, CodeInvalidConfiguration, err.Error(), rp.String(), tf.Name)
		return
	}

	nav := ResolvedNavigation{
		Source:        sf,
		Target:        tf,
		Shape:         tf.Shape,
		Elem:          node.StructPair{Src: sf.Elem, Dst: tf.Elem},
		KeepOnRemoved: r.cfg.keepFor(rp.Key(), tf.Name, tf.Elem),
	}
	r.linkNavigation(&nav, rp.Target, child)

	rp.Navigations = append(rp.Navigations, nav)
}

// checkKeyExclusions rejects exclusions naming the identity or token of
// either side.
func (r *Resolver) checkKeyExclusions(rp *ResolvedTypePair) {
	keys := common.NewSet()

	for _, info := range []*analyze.TypeInfo{rp.Source, rp.Target} {
		if info.Identity != nil {
			keys.Add(info.Identity.Name)
		}

		if info.Token != nil {
			keys.Add(info.Token.Name)
		}
	}

	for _, name := range sortedNames(rp.Excluded) {
		if keys.Has(name) {
			r.diags.AddError(ErrKeyPropertyExcluded, CodeKeyPropertyExcluded,
				fmt.Sprintf("%q is an identity or concurrency token property", name), rp.String(), name)
		}
	}
}

// validatePairLayers checks pair-level exclusions, custom mappers and
// per-property policies against the pair properties.
func (r *Resolver) validatePairLayers() {
	throw := r.cfg.Global.ThrowOnRedundant

	for _, key := range sortedPairs(r.cfg.Pairs) {
		pc := r.cfg.Pairs[key]
		rp := r.resolved[key]

		if rp == nil {
			if _, attempted := r.resolved[key]; !attempted {
				r.diags.Report(throw, ErrRedundantConfiguration, CodeRedundantConfiguration,
					"configured pair is never registered", pairName(key), "")
			}

			continue
		}

		names := sortedNames(common.NewSet(append(rp.Source.FieldNames(), rp.Target.FieldNames()...)...))

		for _, name := range pc.Exclude {
			if _, inSrc := rp.Source.Field(name); inSrc {
				continue
			}

			if _, inDst := rp.Target.Field(name); inDst {
				continue
			}

			r.diags.Report(throw, ErrUselessExclusion, CodeUselessExclusion,
				fmt.Sprintf("excluded property %q is not a property of either type", name),
				rp.String(), name, match.Suggest(name, names, maxSuggestions)...)
		}

		for _, cm := range pc.Custom {
			if _, ok := rp.Target.Field(cm.Property); !ok {
				r.diags.Report(throw, ErrRedundantConfiguration, CodeRedundantConfiguration,
					fmt.Sprintf("custom mapper targets unknown property %q", cm.Property),
					rp.String(), cm.Property, match.Suggest(cm.Property, rp.Target.FieldNames(), maxSuggestions)...)
			}

			if rp.Excluded.Has(cm.Property) {
				r.diags.AddError(ErrCustomMappingConflict, CodeCustomMappingConflict,
					fmt.Sprintf("%q is excluded and custom-mapped", cm.Property), rp.String(), cm.Property)
			}
		}

		for _, name := range sortedKeys(pc.PropertyKeep) {
			if f, ok := rp.Target.Field(name); ok && f.Shape.IsNavigation() {
				continue
			}

			var navs []string
			for _, f := range rp.Target.Navigations() {
				navs = append(navs, f.Name)
			}

			r.diags.Report(throw, ErrRedundantConfiguration, CodeRedundantConfiguration,
				fmt.Sprintf("removal policy set for %q, which is not a navigation", name),
				rp.String(), name, match.Suggest(name, navs, maxSuggestions)...)
		}
	}
}

// validateTypeLayers checks type-level exclusions against the type and
// reports types that take part in no pair.
func (r *Resolver) validateTypeLayers() {
	throw := r.cfg.Global.ThrowOnRedundant
	used := r.usedTypes()

	for _, t := range sortedTypes(r.cfg.Types) {
		tc := r.cfg.Types[t]
		name := common.ShortTypeName(t)

		if !used[t] {
			if len(tc.Exclude) > 0 {
				r.diags.Report(throw, ErrUselessExclusion, CodeUselessExclusion,
					"type with exclusions takes part in no registered pair", name, "")
			} else {
				r.diags.Report(throw, ErrRedundantConfiguration, CodeRedundantConfiguration,
					"configured type takes part in no registered pair", name, "")
			}

			continue
		}

		info := r.analyzer.Graph().GetType(t)

		for _, ex := range tc.Exclude {
			if _, ok := info.Field(ex); ok {
				continue
			}

			r.diags.Report(throw, ErrUselessExclusion, CodeUselessExclusion,
				fmt.Sprintf("excluded property %q is not a property of %s", ex, name),
				name, ex, match.Suggest(ex, info.FieldNames(), maxSuggestions)...)
		}
	}
}

// validateGlobalLayer requires every global exclusion to name a property of
// at least one mapped type.
func (r *Resolver) validateGlobalLayer() {
	if len(r.cfg.Global.Exclude) == 0 {
		return
	}

	names := common.NewSet()

	for t := range r.usedTypes() {
		if info := r.analyzer.Graph().GetType(t); info != nil {
			names.Add(info.FieldNames()...)
		}
	}

	for _, ex := range r.cfg.Global.Exclude {
		if names.Has(ex) {
			continue
		}

		r.diags.Report(r.cfg.Global.ThrowOnRedundant, ErrUselessExclusion, CodeUselessExclusion,
			fmt.Sprintf("excluded property %q is not a property of any mapped type", ex),
			"", ex, match.Suggest(ex, sortedNames(names), maxSuggestions)...)
	}
}

func (r *Resolver) usedTypes() map[reflect.Type]bool {
	used := make(map[reflect.Type]bool)

	for key, rp := range r.resolved {
		if rp != nil {
			used[key.Src] = true
			used[key.Dst] = true
		}
	}

	return used
}

func sortedNames(s common.Set) []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

func sortedTypes(m map[reflect.Type]*TypeConfig) []reflect.Type {
	out := make([]reflect.Type, 0, len(m))
	for t := range m {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

func sortedPairs(m map[node.StructPair]*PairConfig) []node.StructPair {
	out := make([]node.StructPair, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool { return pairName(out[i]) < pairName(out[j]) })

	return out
}
