package rules

import (
	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// AL03Options is AL03's config; its one key is rules.allow_scalar in the
// config document.
type AL03Options struct {
	AllowScalar bool // rules.allow_scalar
}

// al03 flags a scalar sub-select used as a select_target without an alias,
// matching the crawler/tree idiom of internal/route/tree.go: it seeks a
// narrow set of kinds rather than walking the whole file itself.
type al03 struct {
	opts AL03Options
}

func NewAL03(opts AL03Options) engine.Rule { return &al03{opts: opts} }

func (r *al03) Code() string { return "AL03" }
func (r *al03) Name() string { return "ambiguous.column_references" }

func (r *al03) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{parse.KindSelectTarget}, RecurseIntoMatch: false}
}

func (r *al03) Eval(ctx *engine.RuleContext) []engine.Violation {
	if r.opts.AllowScalar {
		return nil
	}
	target := ctx.Segment
	hasAlias := false
	hasScalarSelect := false
	for _, c := range target.Segments() {
		if c.Kind() == parse.KindAliasExpression {
			hasAlias = true
		}
		if c.Kind() == parse.KindBracketed {
			if len(segment.RecursiveCrawl(c, []segment.Kind{parse.KindSelectStatement}, false, nil, true)) > 0 {
				hasScalarSelect = true
			}
		}
	}
	if hasScalarSelect && !hasAlias {
		return []engine.Violation{{
			RuleCode:    r.Code(),
			Description: "scalar sub-select in column list must have an explicit alias",
			Anchor:      target,
		}}
	}
	return nil
}
