package rules

import (
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/reflow"
	"github.com/sqllint/sqllint/pkg/segment"
)

// IndentationOptions configures LT02's delegation into pkg/reflow.
type IndentationOptions struct {
	reflow.IndentConfig
	MaxLineLength int // core.max_line_length
}

// lt02 is deliberately thin: it registers the RootOnly crawl and forwards
// straight into the reflow engine's Flatten/Reindent pair (spec.md §4.3) —
// scenario S4. Respacing (S1/S2) is LT01's concern, run alongside this one
// in the Post phase; this rule owns only indentation and line length.
type lt02 struct {
	cfg IndentationOptions
}

func NewLT02(cfg IndentationOptions) engine.Rule { return &lt02{cfg: cfg} }

func (r *lt02) Code() string { return "LT02" }
func (r *lt02) Name() string { return "layout.indent" }

func (r *lt02) Crawler() engine.Crawler { return engine.RootOnly{} }

func (r *lt02) Eval(ctx *engine.RuleContext) []engine.Violation {
	seq := reflow.Flatten(ctx.Segment, constraintForGap)

	fixes := reflow.Reindent(ctx.File.Arena, seq, r.cfg.IndentConfig)
	violations := make([]engine.Violation, 0, len(fixes))
	for _, f := range fixes {
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: "line is not indented to the expected depth",
			Anchor:      f.Anchor,
			Fixes:       []segment.LintFix{f},
		})
	}

	// Line-length rebreak (spec.md §4.3 "Line length") runs against the same
	// flattened sequence: a line within budget contributes nothing.
	for _, f := range reflow.RebreakLongLines(ctx.File.Arena, seq, r.cfg.IndentConfig, r.cfg.MaxLineLength) {
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: "line exceeds the configured maximum length",
			Anchor:      f.Anchor,
			Fixes:       []segment.LintFix{f},
		})
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}

// constraintForGap is the single respacing-constraint classifier LT02 and
// the Post-phase respacer share: every ordinary gap collapses to a single
// space. A comment never appears in gap — Flatten gives it its own Block
// and forces ConstraintAny on the Points touching it directly.
func constraintForGap(gap []segment.Segment) reflow.Constraint {
	return reflow.ConstraintSingle
}
