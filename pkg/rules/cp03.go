package rules

import (
	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// cp03 applies the same policy as CP01, scoped to function-call names
// instead of reserved keywords — the two rules share evalCapitalisation but
// keep separate memory-bag entries (keyed by rule code) so a "consistent"
// policy decision for keywords never leaks into function-name casing.
type cp03 struct {
	opts CapitalisationOptions
}

func NewCP03(opts CapitalisationOptions) engine.Rule { return &cp03{opts: opts} }

func (r *cp03) Code() string { return "CP03" }
func (r *cp03) Name() string { return "capitalisation.functions" }

func (r *cp03) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{parse.KindFunction}, RecurseIntoMatch: false}
}

func (r *cp03) Eval(ctx *engine.RuleContext) []engine.Violation {
	nameLeaf := functionNameLeaf(ctx.Segment)
	if nameLeaf == nil {
		return nil
	}
	nameCtx := *ctx
	nameCtx.Segment = nameLeaf
	return evalCapitalisation(&nameCtx, r.Code(), r.opts)
}

func functionNameLeaf(fn segment.Segment) segment.Segment {
	for _, c := range fn.Segments() {
		if c.ClassTypes().HasAny(segment.ClassIdentifier) {
			return c
		}
	}
	return nil
}
