package plan

import (
	"reflect"

	"graph-mapper/internal/common"
	"graph-mapper/node"
	"graph-mapper/primitive"
)

// Default property names.
const (
	DefaultIdentityName = "ID"
	DefaultTokenName    = "Version"
)

// GlobalConfig is the lowest configuration layer.
type GlobalConfig struct {
	IdentityName     string
	TokenName        string
	Mode             Mode
	KeepOnRemoved    bool
	ThrowOnRedundant bool
	Exclude          []string
}

// TypeConfig applies to every pair in which Type is the source or the
// target. Nil and zero values inherit from GlobalConfig.
type TypeConfig struct {
	Type          reflect.Type
	IdentityName  string
	TokenName     string
	Mode          Mode
	KeepOnRemoved *bool
	Exclude       []string
}

// CustomMapping runs after the default scalar copy of a pair. Apply receives
// the source and target entity pointers.
type CustomMapping struct {
	Property string
	Apply    func(src, dst any)
}

// PairConfig is the highest configuration layer.
type PairConfig struct {
	Pair          node.StructPair
	Mode          Mode
	KeepOnRemoved *bool
	PropertyKeep  map[string]bool
	Exclude       []string
	Custom        []CustomMapping
}

// Registration asks for a pair to be compiled. Graph registrations also
// register every pair reachable through navigations.
type Registration struct {
	Pair  node.StructPair
	Graph bool
}

// Config gathers every layer plus registrations and converters.
type Config struct {
	Global          GlobalConfig
	Types           map[reflect.Type]*TypeConfig
	Pairs           map[node.StructPair]*PairConfig
	Registrations   []Registration
	Converters      map[node.StructPair]primitive.Converter
	AutoConversions primitive.CategoryEnum
}

// NewConfig returns a Config with the default global layer.
func NewConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			IdentityName:     DefaultIdentityName,
			TokenName:        DefaultTokenName,
			Mode:             ModeUpsert,
			ThrowOnRedundant: true,
		},
		Types:           make(map[reflect.Type]*TypeConfig),
		Pairs:           make(map[node.StructPair]*PairConfig),
		Converters:      make(map[node.StructPair]primitive.Converter),
		AutoConversions: primitive.CategoryDefault,
	}
}

// Type returns the layer for t, creating it on first use.
func (c *Config) Type(t reflect.Type) *TypeConfig {
	t = node.Base(t)

	tc, ok := c.Types[t]
	if !ok {
		tc = &TypeConfig{Type: t}
		c.Types[t] = tc
	}

	return tc
}

// Pair returns the layer for (src, dst), creating it on first use.
func (c *Config) Pair(src, dst reflect.Type) *PairConfig {
	key := node.StructPair{Src: node.Base(src), Dst: node.Base(dst)}

	pc, ok := c.Pairs[key]
	if !ok {
		pc = &PairConfig{Pair: key, PropertyKeep: make(map[string]bool)}
		c.Pairs[key] = pc
	}

	return pc
}

// Register appends a registration.
func (c *Config) Register(src, dst reflect.Type, graph bool) {
	c.Registrations = append(c.Registrations, Registration{
		Pair:  node.StructPair{Src: node.Base(src), Dst: node.Base(dst)},
		Graph: graph,
	})
}

// Naming resolves identity and token names: type layer, then global.
func (c *Config) Naming(t reflect.Type) (identity, token string) {
	identity, token = c.Global.IdentityName, c.Global.TokenName
	if identity == "" {
		identity = DefaultIdentityName
	}

	if token == "" {
		token = DefaultTokenName
	}

	if tc, ok := c.Types[node.Base(t)]; ok {
		if tc.IdentityName != "" {
			identity = tc.IdentityName
		}

		if tc.TokenName != "" {
			token = tc.TokenName
		}
	}

	return identity, token
}

// modeFor resolves the mode of a pair: pair, then target type, then global.
func (c *Config) modeFor(pair node.StructPair) Mode {
	mode := c.Global.Mode.Or(ModeUpsert)

	if tc, ok := c.Types[pair.Dst]; ok {
		mode = tc.Mode.Or(mode)
	}

	if pc, ok := c.Pairs[pair]; ok {
		mode = pc.Mode.Or(mode)
	}

	return mode
}

// keepFor resolves the removal policy of a navigation: per-property, then
// pair, then the child target type, then global.
func (c *Config) keepFor(pair node.StructPair, property string, child reflect.Type) bool {
	if pc, ok := c.Pairs[pair]; ok {
		if keep, set := pc.PropertyKeep[property]; set {
			return keep
		}

		if pc.KeepOnRemoved != nil {
			return *pc.KeepOnRemoved
		}
	}

	if tc, ok := c.Types[child]; ok && tc.KeepOnRemoved != nil {
		return *tc.KeepOnRemoved
	}

	return c.Global.KeepOnRemoved
}

// exclusionsFor is the union of global, source type, target type and pair
// exclusions.
func (c *Config) exclusionsFor(pair node.StructPair) common.Set {
	layers := []common.Set{common.NewSet(c.Global.Exclude...)}

	for _, t := range []reflect.Type{pair.Src, pair.Dst} {
		if tc, ok := c.Types[t]; ok {
			layers = append(layers, common.NewSet(tc.Exclude...))
		}
	}

	if pc, ok := c.Pairs[pair]; ok {
		layers = append(layers, common.NewSet(pc.Exclude...))
	}

	return common.Union(layers...)
}
