// Package rules implements the concrete lint/fix rules named in spec.md
// §8's scenarios, each grounded on the crawler/tree idiom of
// internal/route/tree.go's priority-ordered addLeaf/addSubtree insertion,
// adapted from route matching to lint evaluation: a rule declares what it
// wants to see (RootOnly or a SegmentSeeker over specific kinds) and the
// driver in pkg/engine brings matching segments to it, the same way the
// teacher's tree brings matching path segments to a registered route leaf.
package rules

import "github.com/sqllint/sqllint/pkg/engine"

// All returns every rule this repo ships, in a fixed, stable order (AL03,
// AL05, AM03, AM07, CP01, CP03, CV01, CV05, LT01, LT02, LT08, RF01, JJ01) so
// the `sqllint rules` CLI subcommand and config validation have a
// deterministic listing to work from.
func All(opts Options) []engine.Rule {
	return []engine.Rule{
		NewAL03(opts.AL03),
		NewAL05(),
		NewAM03(),
		NewAM07(),
		NewCP01(opts.CP01),
		NewCP03(opts.CP03),
		NewCV01(opts.CV01),
		NewCV05(),
		NewLT01(),
		NewLT02(opts.Indentation),
		NewLT08(),
		NewRF01(opts.RF01),
		NewJJ01(),
	}
}

// Options bundles the per-rule config every rule constructor in this
// package needs (pkg/config materializes these from the YAML document).
type Options struct {
	AL03        AL03Options
	CP01        CapitalisationOptions
	CP03        CapitalisationOptions
	CV01        CV01Options
	RF01        RF01Options
	Indentation IndentationOptions
}
