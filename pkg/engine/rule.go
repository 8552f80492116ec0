package engine

import (
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
)

// Crawler tells the driver how a Rule wants to be invoked (spec.md §4.2):
// once against the whole file, or once per segment matching a set of kinds.
type Crawler interface{ crawlerMarker() }

// RootOnly crawls the rule exactly once per file, handed the root segment.
type RootOnly struct{}

func (RootOnly) crawlerMarker() {}

// SegmentSeeker crawls the rule once per segment whose Kind is in Types,
// found via segment.RecursiveCrawl.
type SegmentSeeker struct {
	Types            []segment.Kind
	RecurseIntoMatch bool
}

func (SegmentSeeker) crawlerMarker() {}

// Violation is one lint finding: a human-readable description anchored to a
// segment, with an optional fix (spec.md §4.2 "LintResult").
type Violation struct {
	RuleCode    string
	Description string
	Anchor      segment.Segment
	Fixes       []segment.LintFix
}

// RuleContext is the per-invocation context a Rule.Eval call receives
// (spec.md §4.2 "RuleContext"): the segment being evaluated, the file it
// belongs to, the arena for constructing replacement segments, the
// templated-file view for literal-position gating, the per-file memory bag,
// and this rule's resolved config.
type RuleContext struct {
	Segment    segment.Segment
	File       *segment.File
	Templated  *templatefile.TemplatedFile
	Memory     *Memory
	RuleCode   string
	Config     map[string]any
	siblings   []segment.Segment
	parentPath []segment.PathStep
}

// Parent returns the immediate parent of Segment within File, or nil at the
// root.
func (c *RuleContext) Parent() segment.Segment {
	path := segment.PathTo(c.File.Root, c.Segment)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1].Parent
}

// Path returns the full root-to-Segment path (spec.md §4.1 "path_to").
func (c *RuleContext) Path() []segment.PathStep {
	return segment.PathTo(c.File.Root, c.Segment)
}

// Rule is one lint/fix check (spec.md §4.2). Eval is called once per
// Crawler-selected segment and returns zero or more Violations; a rule with
// no fix to offer for a violation leaves Fixes nil (spec.md's AM07 is a
// flag-only rule, for example).
type Rule interface {
	Code() string
	Name() string
	Crawler() Crawler
	Eval(ctx *RuleContext) []Violation
}
