package mapping

import (
	"fmt"
	"sort"

	"graph-mapper/internal/diagnostic"
	"graph-mapper/internal/plan"
)

// Apply merges a validated mapping file into cfg, resolving type names in
// known. Values the file leaves unset keep what cfg already holds; exclusion
// lists are appended.
func Apply(mf *MappingFile, cfg *plan.Config, known *TypeSet) error {
	var diags diagnostic.Diagnostics

	applyGlobal(&diags, &mf.Defaults, &cfg.Global)

	for i := range mf.Types {
		ts := &mf.Types[i]

		t, err := known.ResolveTypeID(ts.Type)
		if err != nil {
			diags.AddError(plan.ErrInvalidConfiguration, plan.CodeInvalidConfiguration, err.Error(), ts.Type, "type")
			continue
		}

		tc := cfg.Type(t)
		if ts.Identity != "" {
			tc.IdentityName = ts.Identity
		}

		if ts.ConcurrencyToken != "" {
			tc.TokenName = ts.ConcurrencyToken
		}

		if mode := parseMode(&diags, ts.Mode, ts.Type); mode != plan.ModeInherit {
			tc.Mode = mode
		}

		if ts.KeepOnRemoved != nil {
			tc.KeepOnRemoved = ts.KeepOnRemoved
		}

		tc.Exclude = append(tc.Exclude, ts.Exclude...)
	}

	for i := range mf.Pairs {
		ps := &mf.Pairs[i]
		tpStr := fmt.Sprintf("%s->%s", ps.Source, ps.Target)

		src, errS := known.ResolveTypeID(ps.Source)
		if errS != nil {
			diags.AddError(plan.ErrInvalidConfiguration, plan.CodeInvalidConfiguration, errS.Error(), tpStr, "source")
		}

		dst, errT := known.ResolveTypeID(ps.Target)
		if errT != nil {
			diags.AddError(plan.ErrInvalidConfiguration, plan.CodeInvalidConfiguration, errT.Error(), tpStr, "target")
		}

		if errS != nil || errT != nil {
			continue
		}

		pc := cfg.Pair(src, dst)
		if mode := parseMode(&diags, ps.Mode, tpStr); mode != plan.ModeInherit {
			pc.Mode = mode
		}

		if ps.KeepOnRemoved != nil {
			pc.KeepOnRemoved = ps.KeepOnRemoved
		}

		pc.Exclude = append(pc.Exclude, ps.Exclude...)

		names := make([]string, 0, len(ps.Properties))
		for name := range ps.Properties {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			if keep := ps.Properties[name].KeepOnRemoved; keep != nil {
				pc.PropertyKeep[name] = *keep
			}
		}
	}

	return diags.Error()
}

func applyGlobal(diags *diagnostic.Diagnostics, d *Defaults, g *plan.GlobalConfig) {
	if d.Identity != "" {
		g.IdentityName = d.Identity
	}

	if d.ConcurrencyToken != "" {
		g.TokenName = d.ConcurrencyToken
	}

	if mode := parseMode(diags, d.Mode, "defaults"); mode != plan.ModeInherit {
		g.Mode = mode
	}

	if d.KeepOnRemoved != nil {
		g.KeepOnRemoved = *d.KeepOnRemoved
	}

	if d.ThrowOnRedundant != nil {
		g.ThrowOnRedundant = *d.ThrowOnRedundant
	}

	g.Exclude = append(g.Exclude, d.Exclude...)
}

func parseMode(diags *diagnostic.Diagnostics, s, where string) plan.Mode {
	mode, err := plan.ParseMode(s)
	if err != nil {
		diags.AddError(plan.ErrInvalidConfiguration, plan.CodeInvalidConfiguration, err.Error(), where, "mode")
	}

	return mode
}
