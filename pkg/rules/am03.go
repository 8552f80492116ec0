package rules

import (
	"strings"

	"github.com/sqllint/sqllint/internal/dialect"
	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// am03 makes every ORDER BY key's direction explicit once any key in the
// same clause already has one — scenario S9.
type am03 struct{}

func NewAM03() engine.Rule { return &am03{} }

func (r *am03) Code() string { return "AM03" }
func (r *am03) Name() string { return "ambiguous.order_by" }

func (r *am03) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{parse.KindOrderByClause}, RecurseIntoMatch: false}
}

func (r *am03) Eval(ctx *engine.RuleContext) []engine.Violation {
	var terms []segment.Segment
	for _, c := range ctx.Segment.Segments() {
		if c.Kind() == parse.KindOrderByTerm {
			terms = append(terms, c)
		}
	}
	anyExplicit := false
	for _, t := range terms {
		if directionOf(t) != "" {
			anyExplicit = true
			break
		}
	}
	if !anyExplicit {
		return nil
	}
	var violations []engine.Violation
	for _, t := range terms {
		if directionOf(t) != "" {
			continue
		}
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: "ORDER BY key is missing an explicit direction",
			Anchor:      t,
			Fixes:       []segment.LintFix{appendDirectionFix(ctx, t)},
		})
	}
	return violations
}

func directionOf(term segment.Segment) string {
	for _, c := range term.Segments() {
		if c.Kind() == segment.KindKeyword {
			u := strings.ToUpper(c.Raw())
			if dialect.IsReserved(u) && (u == "ASC" || u == "DESC") {
				return u
			}
		}
	}
	return ""
}

func appendDirectionFix(ctx *engine.RuleContext, term segment.Segment) segment.LintFix {
	children := term.Segments()
	anchor := term
	if len(children) > 0 {
		anchor = children[len(children)-1]
	}
	return segment.LintFix{
		Type:   segment.CreateAfter,
		Anchor: anchor,
		Replacement: []segment.Segment{
			ctx.File.Arena.NewLeaf(segment.KindWhitespace, " ", nil),
			ctx.File.Arena.NewLeaf(segment.KindKeyword, "ASC", nil),
		},
	}
}
