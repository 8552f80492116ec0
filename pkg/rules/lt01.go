package rules

import (
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/reflow"
	"github.com/sqllint/sqllint/pkg/segment"
)

// lt01 is the generic respacing pass (spec.md §4.3 "Respace"; scenarios
// S1/S2) — unlike every other rule here it isn't triggered by a specific
// construct, it runs the same Flatten/Respace pair over the whole file on
// every pass, tidying spacing around whatever the other rules just rewrote.
type lt01 struct{}

func NewLT01() engine.Rule { return &lt01{} }

func (r *lt01) Code() string { return "LT01" }
func (r *lt01) Name() string { return "layout.spacing" }

func (r *lt01) Crawler() engine.Crawler { return engine.RootOnly{} }

func (r *lt01) Eval(ctx *engine.RuleContext) []engine.Violation {
	seq := reflow.Flatten(ctx.Segment, constraintForGap)
	fixes := reflow.Respace(ctx.File.Arena, seq)
	if len(fixes) == 0 {
		return nil
	}
	violations := make([]engine.Violation, 0, len(fixes))
	for _, f := range fixes {
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: "spacing does not match the expected single space",
			Anchor:      f.Anchor,
			Fixes:       []segment.LintFix{f},
		})
	}
	return violations
}
