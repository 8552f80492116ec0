package rules

import (
	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// lt08 flags (and fixes) a missing blank line between sibling CTEs in a
// WITH clause — scenario S3. A "blank line" means the whitespace run
// between the trailing comma of one CTE and the next contains at least two
// newline leaves.
type lt08 struct{}

func NewLT08() engine.Rule { return &lt08{} }

func (r *lt08) Code() string { return "LT08" }
func (r *lt08) Name() string { return "layout.cte_bracket" }

func (r *lt08) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{parse.KindWithCompoundStatement}, RecurseIntoMatch: false}
}

func (r *lt08) Eval(ctx *engine.RuleContext) []engine.Violation {
	children := ctx.Segment.Segments()
	var ctes []int
	for i, c := range children {
		if c.Kind() == parse.KindCommonTableExpression {
			ctes = append(ctes, i)
		}
	}
	if len(ctes) < 2 {
		return nil
	}

	var violations []engine.Violation
	for k := 0; k < len(ctes)-1; k++ {
		start, end := ctes[k]+1, ctes[k+1]
		// The separating comma is a direct sibling of the CTE nodes, but the
		// newline(s) that make the gap a blank line are lexed as the next
		// CTE's own leading trivia (it is a node, not a leaf, so it owns
		// whatever trivia preceded its first significant token) — so the gap
		// newline count has to look inside it rather than only at the flat
		// between-slice.
		between := children[start:end]
		leading := leadingTrivia(children[end])
		if newlineCount(between)+newlineCount(leading) >= 2 {
			continue
		}

		nl := ctx.File.Arena.NewLeaf(segment.KindNewline, "\n", nil)
		var anchor segment.Segment
		fixType := segment.CreateBefore
		switch {
		case len(leading) > 0:
			anchor = leading[0]
		case len(between) > 0:
			anchor, fixType = between[len(between)-1], segment.CreateAfter
		default:
			anchor = children[end]
		}
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: "expected a blank line between CTEs",
			Anchor:      anchor,
			Fixes: []segment.LintFix{{
				Type:        fixType,
				Anchor:      anchor,
				Replacement: []segment.Segment{nl},
			}},
		})
	}
	return violations
}

// leadingTrivia returns the run of whitespace/newline leaves at the very
// start of seg's leaf frontier — the trivia seg's own parser production
// absorbed ahead of its first significant token.
func leadingTrivia(seg segment.Segment) []segment.Segment {
	var out []segment.Segment
	for _, l := range segment.LeafFrontier(seg) {
		if l.Kind() != segment.KindWhitespace && l.Kind() != segment.KindNewline {
			break
		}
		out = append(out, l)
	}
	return out
}

func newlineCount(segs []segment.Segment) int {
	n := 0
	for _, s := range segs {
		if s.Kind() == segment.KindNewline {
			n++
		}
	}
	return n
}
