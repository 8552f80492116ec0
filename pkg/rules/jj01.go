package rules

import (
	"github.com/sqllint/sqllint/internal/templater"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
)

// jj01 flags/fixes a Jinja-style `{{expr}}` placeholder tag missing its
// inner padding space (`{{ expr }}`) — scenario S10. It reads the
// TemplatedFile's own slice records rather than the segment tree's grammar
// kinds, since a placeholder tag is a templating-layer construct the SQL
// grammar never names; the anchor leaf is recovered by matching the
// record's templated byte range against the leaf frontier's positions.
type jj01 struct{}

func NewJJ01() engine.Rule { return &jj01{} }

func (r *jj01) Code() string { return "JJ01" }
func (r *jj01) Name() string { return "jinja.padding" }

func (r *jj01) Crawler() engine.Crawler { return engine.RootOnly{} }

func (r *jj01) Eval(ctx *engine.RuleContext) []engine.Violation {
	if ctx.Templated == nil {
		return nil
	}
	templatedStr := ctx.Templated.TemplatedStr()
	var violations []engine.Violation
	for _, rec := range ctx.Templated.SlicedFile() {
		if rec.Type != templatefile.SliceTemplated {
			continue
		}
		tagRaw := templatedStr[rec.TemplatedSlice.Start:rec.TemplatedSlice.Stop]
		leading, trailing := templater.InnerPadding(tagRaw)
		if leading && trailing {
			continue
		}
		leaf := leafForTemplatedSlice(ctx.Segment, rec.TemplatedSlice)
		if leaf == nil {
			continue
		}
		padded := templater.PadTag(tagRaw)
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: "Jinja placeholder tag is missing inner padding",
			Anchor:      leaf,
			Fixes: []segment.LintFix{{
				Type:        segment.Replace,
				Anchor:      leaf,
				Replacement: []segment.Segment{ctx.File.Arena.NewLeaf(leaf.Kind(), padded, nil)},
			}},
		})
	}
	return violations
}

func leafForTemplatedSlice(root segment.Segment, sl segment.Slice) segment.Segment {
	for _, leaf := range segment.LeafFrontier(root) {
		if leaf.Position().TemplatedSlice == sl {
			return leaf
		}
	}
	return nil
}
