package mapping

import (
	"fmt"
	"strings"

	"graph-mapper/internal/diagnostic"
	"graph-mapper/internal/plan"
)

// Validate checks the structure of a mapping file: schema version, mode
// spellings, required type names, duplicate entries and empty property
// names. Type names are resolved later, against the registered types.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError(plan.ErrInvalidConfiguration, "mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if mf.Version != CurrentVersion {
		res.AddError(plan.ErrInvalidConfiguration, "unsupported_version",
			fmt.Sprintf("unsupported version %q, want %q", mf.Version, CurrentVersion), "", "")
	}

	validateMode(res, mf.Defaults.Mode, "defaults")
	validateNames(res, mf.Defaults.Exclude, "defaults")

	seenTypes := map[string]struct{}{}

	for i := range mf.Types {
		ts := &mf.Types[i]
		where := fmt.Sprintf("types[%d]", i)

		if strings.TrimSpace(ts.Type) == "" {
			res.AddError(plan.ErrInvalidConfiguration, "missing_type", "type name is required", where, "type")
			continue
		}

		if _, ok := seenTypes[ts.Type]; ok {
			res.AddError(plan.ErrInvalidConfiguration, "duplicate_type",
				fmt.Sprintf("type %q is configured twice", ts.Type), where, ts.Type)
		}

		seenTypes[ts.Type] = struct{}{}

		validateMode(res, ts.Mode, ts.Type)
		validateNames(res, ts.Exclude, ts.Type)
	}

	seenPairs := map[string]struct{}{}

	for i := range mf.Pairs {
		ps := &mf.Pairs[i]
		tpStr := fmt.Sprintf("%s->%s", ps.Source, ps.Target)

		if strings.TrimSpace(ps.Source) == "" || strings.TrimSpace(ps.Target) == "" {
			res.AddError(plan.ErrInvalidConfiguration, "missing_type",
				"pair needs both source and target", fmt.Sprintf("pairs[%d]", i), "")

			continue
		}

		if _, ok := seenPairs[tpStr]; ok {
			res.AddError(plan.ErrInvalidConfiguration, "duplicate_pair",
				fmt.Sprintf("pair %s is configured twice", tpStr), tpStr, "")
		}

		seenPairs[tpStr] = struct{}{}

		validateMode(res, ps.Mode, tpStr)
		validateNames(res, ps.Exclude, tpStr)

		for name, prop := range ps.Properties {
			if strings.TrimSpace(name) == "" {
				res.AddError(plan.ErrInvalidConfiguration, "empty_property", "property name is empty", tpStr, "")
			}

			if prop.KeepOnRemoved == nil {
				res.AddWarning("empty_property_settings",
					fmt.Sprintf("property %q sets nothing", name), tpStr, name)
			}
		}
	}

	return res
}

func validateMode(res *diagnostic.Diagnostics, mode, where string) {
	if _, err := plan.ParseMode(mode); err != nil {
		res.AddError(plan.ErrInvalidConfiguration, "invalid_mode", err.Error(), where, "mode")
	}
}

func validateNames(res *diagnostic.Diagnostics, names StringOrArray, where string) {
	var seen StringOrArray

	for _, name := range names {
		switch {
		case strings.TrimSpace(name) == "":
			res.AddError(plan.ErrInvalidConfiguration, "empty_exclusion", "excluded property name is empty", where, "exclude")
		case seen.Contains(name):
			res.AddWarning("duplicate_exclusion", fmt.Sprintf("%q is excluded twice", name), where, "exclude")
		default:
			seen = append(seen, name)
		}
	}
}
