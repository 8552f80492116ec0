package engine

import (
	"hash/fnv"

	"github.com/charmbracelet/log"

	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
)

// Loop limits for the Main and Post phases (spec.md §4.2 "LOOP_LIMIT"): Main
// rules (most lint rules) get up to 10 passes to converge; Post rules (the
// reflow/reindent pass) get up to 2, since a single respace-then-reindent
// round is normally enough and a second pass only catches knock-on effects
// of the first.
const (
	MainLoopLimit = 10
	PostLoopLimit = 2
)

// Reparser re-parses raw text into a fresh segment tree — satisfied by
// *internal/parse.Parser's Tree method without an adapter. The driver uses
// it to detect a fix round that leaves the file unparseable (spec.md §1
// non-goal "fixes that would render the file unparseable must be detected
// and discarded", §7 "fix-would-break"). A nil Reparser skips the check.
type Reparser interface {
	Tree(arena *segment.Arena, source string) (segment.Segment, bool)
}

// Driver runs the Main and Post rule phases over one file's segment tree to
// a fixed point, per spec.md §4.2's data-flow: crawl, collect violations,
// apply fixes, re-crawl, until nothing changes or a loop limit/oscillation
// is hit.
type Driver struct {
	Main     []Rule
	Post     []Rule
	Logger   *log.Logger
	Reparser Reparser
}

// Result is the outcome of running a file through the Driver.
type Result struct {
	Violations    []Violation // final, unfixed violations (lint mode) or leftover after Fix
	FixesMade     int
	Oscillated    bool
	FixWouldBreak bool // a round was discarded because it left the file unparseable (spec.md §7)
}

// Run lints file, applying fixes in place when fix is true. templated is
// used to gate fixes against non-literal (templated) regions and is passed
// through to every RuleContext.
func (d *Driver) Run(file *segment.File, templated *templatefile.TemplatedFile, mem *Memory, fix bool) Result {
	var result Result

	result.Violations = d.runPhase(file, templated, mem, d.Main, MainLoopLimit, fix, &result)
	result.Violations = append(result.Violations, d.runPhase(file, templated, mem, d.Post, PostLoopLimit, fix, &result)...)
	return result
}

func (d *Driver) runPhase(file *segment.File, templated *templatefile.TemplatedFile, mem *Memory, rules []Rule, limit int, fix bool, result *Result) []Violation {
	seenHashes := map[string]bool{}
	var lastViolations []Violation

	for iter := 0; iter < limit; iter++ {
		violations := d.crawl(file, templated, mem, rules)
		lastViolations = violations
		if !fix {
			return violations
		}
		if len(withFixes(violations)) == 0 {
			return violations
		}

		preRaw := file.Root.Raw()
		applied, conflicts := Apply(file, violations)
		if conflicts > 0 {
			d.Logger.Warn("fix conflict: multiple rules proposed different fixes for the same segment", "count", conflicts)
		}
		if applied == 0 {
			return violations
		}

		if d.Reparser != nil {
			if _, ok := d.Reparser.Tree(segment.NewArena(), file.Root.Raw()); !ok {
				revertArena := segment.NewArena()
				revertRoot, _ := d.Reparser.Tree(revertArena, preRaw)
				file.Root = revertRoot
				file.Arena = revertArena
				result.FixWouldBreak = true
				d.Logger.Warn("fix would render file unparseable, discarding round")
				return lastViolations
			}
		}
		result.FixesMade += applied

		h := hashState(file)
		if seenHashes[h] {
			result.Oscillated = true
			d.Logger.Warn("fix oscillation detected, stopping this phase early")
			return violations
		}
		seenHashes[h] = true
	}
	return lastViolations
}

func withFixes(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if len(v.Fixes) > 0 {
			out = append(out, v)
		}
	}
	return out
}

func (d *Driver) crawl(file *segment.File, templated *templatefile.TemplatedFile, mem *Memory, rules []Rule) []Violation {
	var out []Violation
	for _, rule := range rules {
		for _, target := range candidates(file, rule.Crawler()) {
			ctx := &RuleContext{
				Segment:   target,
				File:      file,
				Templated: templated,
				Memory:    mem,
				RuleCode:  rule.Code(),
			}
			out = append(out, evalSafely(d.Logger, rule, ctx)...)
		}
	}
	return out
}

func candidates(file *segment.File, c Crawler) []segment.Segment {
	switch v := c.(type) {
	case RootOnly:
		return []segment.Segment{file.Root}
	case SegmentSeeker:
		return segment.RecursiveCrawl(file.Root, v.Types, v.RecurseIntoMatch, nil, true)
	default:
		return nil
	}
}

// hashState hashes the file's current raw text together with a stable
// rendering of every leaf's kind and source-fix history, so a fix loop that
// keeps converting text A to B and back to A is detected as oscillating
// even though the raw text briefly repeats (spec.md §4.2 "oscillation
// detection... hash of raw text and accumulated source-fixes").
//
// This must hash leaf content, not leaf identity: every edit allocates a
// brand-new, monotonically increasing ID via Arena.NewLeaf regardless of
// whether the new text matches an earlier round's text, so a hash built
// from leaf.ID() would never repeat even when the rendered tree genuinely
// oscillates between the same two states.
func hashState(file *segment.File) string {
	h := fnv.New64a()
	h.Write([]byte(file.Root.Raw()))
	for _, seg := range segment.LeafFrontier(file.Root) {
		h.Write([]byte(seg.Kind()))
		h.Write([]byte{0})
		h.Write([]byte(seg.Raw()))
		h.Write([]byte{0})
		if leaf, ok := seg.(*segment.Leaf); ok {
			for _, sf := range leaf.SourceFixes() {
				h.Write([]byte(sf.EditText))
				h.Write([]byte{0})
			}
		}
	}
	return string(h.Sum(nil))
}
