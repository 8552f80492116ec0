package rules

import (
	"fmt"
	"strings"

	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// CapitalisationPolicy is one of the enum values config key
// `capitalisation_policy` accepts (spec.md §9 "Configurable enums").
type CapitalisationPolicy string

const (
	PolicyUpper      CapitalisationPolicy = "upper"
	PolicyLower      CapitalisationPolicy = "lower"
	PolicyCapitalise CapitalisationPolicy = "capitalise"
	PolicyPascal     CapitalisationPolicy = "pascal" // single-word keywords/functions: same rendering as capitalise
	PolicyConsistent CapitalisationPolicy = "consistent"
)

// CapitalisationOptions configures CP01/CP03.
type CapitalisationOptions struct {
	Policy CapitalisationPolicy
}

// cp01 flags/fixes reserved-keyword casing. The "consistent" policy needs
// cross-segment memory: the first keyword seen in the file decides the
// casing every later keyword must match, tracked in the per-file memory bag
// the same way inject/inject.go's TypeMapper threads state across a
// request's middleware chain.
type cp01 struct {
	opts CapitalisationOptions
}

func NewCP01(opts CapitalisationOptions) engine.Rule { return &cp01{opts: opts} }

func (r *cp01) Code() string { return "CP01" }
func (r *cp01) Name() string { return "capitalisation.keywords" }

func (r *cp01) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{segment.KindKeyword}, RecurseIntoMatch: false}
}

func (r *cp01) Eval(ctx *engine.RuleContext) []engine.Violation {
	return evalCapitalisation(ctx, r.Code(), r.opts)
}

// consistentCase is the memory-bag payload recording the casing style the
// first keyword/function-name in the file established, for PolicyConsistent.
type consistentCase struct {
	Style string // "upper", "lower", or "capitalise"
}

func evalCapitalisation(ctx *engine.RuleContext, ruleCode string, opts CapitalisationOptions) []engine.Violation {
	leaf := ctx.Segment
	raw := leaf.Raw()
	want := desiredCasing(ctx, ruleCode, opts.Policy, raw)
	if want == raw || want == "" {
		return nil
	}
	return []engine.Violation{{
		RuleCode:    ruleCode,
		Description: fmt.Sprintf("%q should be written %q per the capitalisation policy", raw, want),
		Anchor:      leaf,
		Fixes: []segment.LintFix{{
			Type:        segment.Replace,
			Anchor:      leaf,
			Replacement: []segment.Segment{ctx.File.Arena.NewLeaf(leaf.Kind(), want, nil)},
		}},
	}}
}

func desiredCasing(ctx *engine.RuleContext, ruleCode string, policy CapitalisationPolicy, raw string) string {
	switch policy {
	case PolicyUpper:
		return strings.ToUpper(raw)
	case PolicyLower:
		return strings.ToLower(raw)
	case PolicyCapitalise, PolicyPascal:
		return capitalise(raw)
	case PolicyConsistent:
		var cc consistentCase
		if !ctx.Memory.Get(ruleCode, &cc) {
			cc = consistentCase{Style: styleOf(raw)}
			ctx.Memory.Set(ruleCode, cc)
			return raw
		}
		return renderStyle(raw, cc.Style)
	default:
		return ""
	}
}

func styleOf(raw string) string {
	switch {
	case raw == strings.ToUpper(raw):
		return "upper"
	case raw == strings.ToLower(raw):
		return "lower"
	case raw == capitalise(raw):
		return "capitalise"
	default:
		return "upper"
	}
}

func renderStyle(raw, style string) string {
	switch style {
	case "upper":
		return strings.ToUpper(raw)
	case "lower":
		return strings.ToLower(raw)
	case "capitalise":
		return capitalise(raw)
	default:
		return raw
	}
}

func capitalise(raw string) string {
	lower := strings.ToLower(raw)
	if lower == "" {
		return lower
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}
