package rules

import (
	"fmt"

	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// NotEqualStyle is the enum config key `preferred_not_equal_style` accepts.
type NotEqualStyle string

const (
	NotEqualAnsi       NotEqualStyle = "ansi"       // <>
	NotEqualCStyle     NotEqualStyle = "c_style"     // !=
	NotEqualConsistent NotEqualStyle = "consistent"
)

type CV01Options struct {
	Preferred NotEqualStyle
}

// cv01 flags/fixes `!=` vs `<>` per the configured preference — scenario S5.
// "consistent" mirrors CP01's first-wins memory-bag approach: whichever
// style this file uses first decides what every later occurrence must
// match.
type cv01 struct {
	opts CV01Options
}

func NewCV01(opts CV01Options) engine.Rule { return &cv01{opts: opts} }

func (r *cv01) Code() string { return "CV01" }
func (r *cv01) Name() string { return "convention.not_equal" }

func (r *cv01) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{segment.KindSymbol}, RecurseIntoMatch: false}
}

func (r *cv01) Eval(ctx *engine.RuleContext) []engine.Violation {
	leaf := ctx.Segment
	raw := leaf.Raw()
	if raw != "!=" && raw != "<>" {
		return nil
	}
	want := r.desiredStyle(ctx, raw)
	if want == "" || want == raw {
		return nil
	}
	return []engine.Violation{{
		RuleCode:    r.Code(),
		Description: fmt.Sprintf("use %q instead of %q", want, raw),
		Anchor:      leaf,
		Fixes: []segment.LintFix{{
			Type:        segment.Replace,
			Anchor:      leaf,
			Replacement: []segment.Segment{ctx.File.Arena.NewLeaf(segment.KindSymbol, want, nil)},
		}},
	}}
}

// notEqualConsistentStyle is the memory-bag payload for NotEqualConsistent.
type notEqualConsistentStyle struct {
	Style string
}

func (r *cv01) desiredStyle(ctx *engine.RuleContext, raw string) string {
	switch r.opts.Preferred {
	case NotEqualAnsi:
		return "<>"
	case NotEqualCStyle:
		return "!="
	case NotEqualConsistent:
		var cc notEqualConsistentStyle
		if !ctx.Memory.Get(r.Code(), &cc) {
			ctx.Memory.Set(r.Code(), notEqualConsistentStyle{Style: raw})
			return raw
		}
		return cc.Style
	default:
		return ""
	}
}
