package rules

import (
	"fmt"
	"regexp"

	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/analysis"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
)

// RF01Options is rf01's ignore-list configuration (config keys
// `ignore_words`/`ignore_words_regex`).
type RF01Options struct {
	IgnoreWords []string
	IgnoreRegex *regexp.Regexp
}

// rf01 flags a bare column reference when more than one FROM/JOIN source is
// in scope for its statement, since an unqualified name is then ambiguous
// about which source it comes from.
type rf01 struct {
	opts RF01Options
}

func NewRF01(opts RF01Options) engine.Rule { return &rf01{opts: opts} }

func (r *rf01) Code() string { return "RF01" }
func (r *rf01) Name() string { return "references.qualification" }

func (r *rf01) Crawler() engine.Crawler {
	return engine.SegmentSeeker{Types: []segment.Kind{parse.KindSelectStatement}, RecurseIntoMatch: true}
}

func (r *rf01) Eval(ctx *engine.RuleContext) []engine.Violation {
	stmt := ctx.Segment
	scope := analysis.BuildScope(stmt)
	if len(scope.Sources) < 2 {
		return nil
	}

	refs := segment.RecursiveCrawl(stmt, []segment.Kind{parse.KindColumnReference}, false, nil, true)
	var violations []engine.Violation
	for _, ref := range refs {
		parts := identifierLeaves(ref)
		if len(parts) != 1 {
			continue // already qualified, or a wildcard
		}
		name := parts[0].Raw()
		if r.ignored(name) {
			continue
		}
		violations = append(violations, engine.Violation{
			RuleCode:    r.Code(),
			Description: fmt.Sprintf("column %q should be qualified; more than one source is in scope", name),
			Anchor:      ref,
		})
	}
	return violations
}

func (r *rf01) ignored(name string) bool {
	for _, w := range r.opts.IgnoreWords {
		if w == name {
			return true
		}
	}
	return r.opts.IgnoreRegex != nil && r.opts.IgnoreRegex.MatchString(name)
}

func identifierLeaves(ref segment.Segment) []segment.Segment {
	var out []segment.Segment
	for _, c := range ref.Segments() {
		if c.ClassTypes().HasAny(segment.ClassIdentifier) {
			out = append(out, c)
		}
	}
	return out
}
