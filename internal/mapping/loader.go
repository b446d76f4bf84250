package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only schema version understood.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// Parse parses YAML data into a MappingFile. Unknown keys are rejected so
// that a misspelled option does not silently fall back to a default.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&mf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}
}

// Normalize puts a file in canonical form: types sorted by name, pairs by
// source then target, mode names lower-cased, exclusion lists sorted and
// deduplicated.
func Normalize(mf *MappingFile) {
	mf.Defaults.Mode = normalizeMode(mf.Defaults.Mode)
	mf.Defaults.Exclude = normalizeList(mf.Defaults.Exclude)

	for i := range mf.Types {
		mf.Types[i].Mode = normalizeMode(mf.Types[i].Mode)
		mf.Types[i].Exclude = normalizeList(mf.Types[i].Exclude)
	}

	for i := range mf.Pairs {
		mf.Pairs[i].Mode = normalizeMode(mf.Pairs[i].Mode)
		mf.Pairs[i].Exclude = normalizeList(mf.Pairs[i].Exclude)
	}

	sort.SliceStable(mf.Types, func(i, j int) bool { return mf.Types[i].Type < mf.Types[j].Type })
	sort.SliceStable(mf.Pairs, func(i, j int) bool {
		if mf.Pairs[i].Source != mf.Pairs[j].Source {
			return mf.Pairs[i].Source < mf.Pairs[j].Source
		}

		return mf.Pairs[i].Target < mf.Pairs[j].Target
	})
}

func normalizeMode(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}

func normalizeList(list StringOrArray) StringOrArray {
	if list.IsEmpty() {
		return nil
	}

	out := slices.Clone(list)
	slices.Sort(out)

	return slices.Compact(out)
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(mf); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
