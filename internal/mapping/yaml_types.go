package mapping

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"graph-mapper/internal/common"
)

// UnmarshalYAML accepts `exclude: Notes` as well as `exclude: [Notes, Number]`.
// Names are trimmed; an empty scalar is an empty list.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	var names []string

	switch node.Kind {
	case yaml.ScalarNode:
		var one string
		if err := node.Decode(&one); err != nil {
			return err
		}

		if one = strings.TrimSpace(one); one != "" {
			names = []string{one}
		}
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return err
		}

		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}

	*s = names

	return nil
}

// MarshalYAML writes a single name as a scalar.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty reports whether the list holds no names.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains reports whether name is listed.
func (s StringOrArray) Contains(name string) bool {
	return slices.Contains(s, name)
}
