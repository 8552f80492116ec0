package rules

import (
	"fmt"

	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// am07 flags a UNION/INTERSECT/EXCEPT whose branches project different
// column counts — scenario S8. No fix is offered: reconciling column lists
// across set-operator branches isn't a mechanical edit.
type am07 struct{}

func NewAM07() engine.Rule { return &am07{} }

func (r *am07) Code() string { return "AM07" }
func (r *am07) Name() string { return "ambiguous.set_columns" }

func (r *am07) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{parse.KindQueryExpression}, RecurseIntoMatch: false}
}

func (r *am07) Eval(ctx *engine.RuleContext) []engine.Violation {
	var selects []segment.Segment
	for _, c := range ctx.Segment.Segments() {
		switch c.Kind() {
		case parse.KindSelectStatement:
			selects = append(selects, c)
		case parse.KindSetOperator:
			for _, gc := range c.Segments() {
				if gc.Kind() == parse.KindSelectStatement {
					selects = append(selects, gc)
				}
			}
		}
	}
	if len(selects) < 2 {
		return nil
	}
	first := columnCount(selects[0])
	for _, s := range selects[1:] {
		if n := columnCount(s); n != first {
			return []engine.Violation{{
				RuleCode:    r.Code(),
				Description: fmt.Sprintf("set-operator branches project %d and %d columns", first, n),
				Anchor:      ctx.Segment,
			}}
		}
	}
	return nil
}

func columnCount(sel segment.Segment) int {
	n := 0
	for _, c := range sel.Segments() {
		if c.Kind() == parse.KindSelectClause {
			for _, t := range c.Segments() {
				if t.Kind() == parse.KindSelectTarget {
					n++
				}
			}
		}
	}
	return n
}
