package rules

import (
	"fmt"

	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/analysis"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// al05 flags (and fixes) a table alias that the statement never references
// — scenario S6. Grounded on pkg/analysis.Scope/AliasReferenced, the shared
// scope resolver built for exactly this and the other alias-sensitive rules.
type al05 struct{}

func NewAL05() engine.Rule { return &al05{} }

func (r *al05) Code() string { return "AL05" }
func (r *al05) Name() string { return "aliasing.unused" }

func (r *al05) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{parse.KindSelectStatement}, RecurseIntoMatch: true}
}

func (r *al05) Eval(ctx *engine.RuleContext) []engine.Violation {
	stmt := ctx.Segment
	scope := analysis.BuildScope(stmt)
	var violations []engine.Violation
	for _, src := range scope.Sources {
		if src.Alias == "" {
			continue
		}
		if analysis.AliasReferenced(stmt, src.Alias, src.Segment) {
			continue
		}
		aliasSeg := findAliasExpression(src.Segment)
		if aliasSeg == nil {
			continue
		}
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: fmt.Sprintf("alias %q is never referenced", src.Alias),
			Anchor:      aliasSeg,
			Fixes:       []segment.LintFix{{Type: segment.Delete, Anchor: aliasSeg}},
		})
	}
	return violations
}

func findAliasExpression(fromExpr segment.Segment) segment.Segment {
	for _, c := range fromExpr.Segments() {
		if c.Kind() == parse.KindAliasExpression {
			return c
		}
	}
	return nil
}
