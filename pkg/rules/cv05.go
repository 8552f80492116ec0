package rules

import (
	"strings"

	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// cv05 rewrites `= NULL`/`!= NULL` to `IS [NOT] NULL`, replacing whatever
// lies between the operator and NULL with one space. It skips any
// comparison symbol with a set_clause ancestor — the
// decision recorded for the "set_clause_list skip-list" open question — so
// `UPDATE t SET x = NULL` is left alone while `WHERE x = NULL` is still
// flagged.
type cv05 struct{}

func NewCV05() engine.Rule { return &cv05{} }

func (r *cv05) Code() string { return "CV05" }
func (r *cv05) Name() string { return "convention.null_comparison" }

func (r *cv05) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{segment.KindSymbol}, RecurseIntoMatch: false}
}

func (r *cv05) Eval(ctx *engine.RuleContext) []engine.Violation {
	leaf := ctx.Segment
	raw := leaf.Raw()
	if raw != "=" && raw != "!=" && raw != "<>" {
		return nil
	}
	for _, step := range ctx.Path() {
		if step.Parent.Kind() == parse.KindSetClause {
			return nil
		}
	}
	parent := ctx.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Segments()
	idx := indexOf(siblings, leaf)
	if idx < 0 {
		return nil
	}
	nullLeaf, nullIdx := nextSignificant(siblings, idx+1)
	if nullLeaf == nil || !strings.EqualFold(nullLeaf.Raw(), "NULL") {
		return nil
	}

	negate := raw != "="
	replacement := []segment.Segment{ctx.File.Arena.NewLeaf(segment.KindKeyword, "IS", nil)}
	if negate {
		replacement = append(replacement,
			ctx.File.Arena.NewLeaf(segment.KindWhitespace, " ", nil),
			ctx.File.Arena.NewLeaf(segment.KindKeyword, "NOT", nil),
		)
	}
	replacement = append(replacement, ctx.File.Arena.NewLeaf(segment.KindWhitespace, " ", nil))

	var fixes []segment.LintFix
	fixes = append(fixes, segment.LintFix{Type: segment.Replace, Anchor: leaf, Replacement: replacement})
	for i := idx + 1; i < nullIdx; i++ {
		fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: siblings[i]})
	}

	return []engine.Violation{{
		RuleCode:    r.Code(),
		Description: "null comparisons must use IS [NOT] NULL",
		Anchor:      leaf,
		Fixes:       fixes,
	}}
}

func indexOf(segs []segment.Segment, target segment.Segment) int {
	for i, s := range segs {
		if s.ID() == target.ID() {
			return i
		}
	}
	return -1
}

func nextSignificant(segs []segment.Segment, from int) (segment.Segment, int) {
	for i := from; i < len(segs); i++ {
		if segs[i].ClassTypes().HasAny(segment.ClassCode) {
			return segs[i], i
		}
	}
	return nil, -1
}
