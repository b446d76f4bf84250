package mapping

// MappingFile represents the root of a YAML mapping configuration file.
type MappingFile struct {
	// Version of the schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Defaults is the global configuration layer.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Types configures every pair a type takes part in.
	Types []TypeSettings `yaml:"types,omitempty"`

	// Pairs configures one source/target type pair.
	Pairs []PairSettings `yaml:"pairs,omitempty"`
}

// Defaults is the global layer. Unset values keep the builder defaults.
type Defaults struct {
	Identity         string        `yaml:"identity,omitempty"`
	ConcurrencyToken string        `yaml:"concurrency_token,omitempty"`
	Mode             string        `yaml:"mode,omitempty"`
	KeepOnRemoved    *bool         `yaml:"keep_on_removed,omitempty"`
	ThrowOnRedundant *bool         `yaml:"throw_on_redundant,omitempty"`
	Exclude          StringOrArray `yaml:"exclude,omitempty"`
}

// TypeSettings is the per-type layer.
type TypeSettings struct {
	// Type identifier (e.g., "warehouse.Tag" or full path).
	Type             string        `yaml:"type"`
	Identity         string        `yaml:"identity,omitempty"`
	ConcurrencyToken string        `yaml:"concurrency_token,omitempty"`
	Mode             string        `yaml:"mode,omitempty"`
	KeepOnRemoved    *bool         `yaml:"keep_on_removed,omitempty"`
	Exclude          StringOrArray `yaml:"exclude,omitempty"`
}

// PairSettings is the per-pair layer.
type PairSettings struct {
	// Source type identifier (e.g., "store.Order" or full path).
	Source string `yaml:"source"`

	// Target type identifier (e.g., "warehouse.Order" or full path).
	Target string `yaml:"target"`

	Mode          string        `yaml:"mode,omitempty"`
	KeepOnRemoved *bool         `yaml:"keep_on_removed,omitempty"`
	Exclude       StringOrArray `yaml:"exclude,omitempty"`

	// Properties holds per-navigation overrides keyed by target property.
	Properties map[string]PropertySettings `yaml:"properties,omitempty"`
}

// PropertySettings overrides one navigation of a pair.
type PropertySettings struct {
	KeepOnRemoved *bool `yaml:"keep_on_removed,omitempty"`
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string
