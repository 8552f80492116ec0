package reflow

import (
	"strings"

	"github.com/sqllint/sqllint/pkg/segment"
)

// IndentConfig configures the reindent pass (spec.md §9 "indent_balance,
// untaken_indents"; config keys indentation.indent_unit/tab_space_size).
type IndentConfig struct {
	// Unit is the text one indent level renders as, e.g. four spaces or a
	// tab, per config key indentation.indent_unit.
	Unit string
	// AllowImplicitIndents lets a comment line inherit the indent of the
	// code line that follows it rather than the shallower indent in effect
	// when the comment was lexed — the decision recorded for the
	// "allow_implicit_indents × comment lines" open question.
	AllowImplicitIndents bool
}

// Reindent walks a flattened sequence and returns fixes correcting any
// newline-then-indentation Point whose whitespace doesn't match the indent
// depth in effect for the line that follows it (spec.md §4.3 "reindent";
// scenario S4). Apart from the first-line rule (firstLineFix), it never
// touches a Point that isn't a newline boundary — intra-line spacing is
// Respace's job.
func Reindent(arena *segment.Arena, seq []Element, cfg IndentConfig) []segment.LintFix {
	depths := WalkDepths(seq)
	var fixes []segment.LintFix

	if fix, ok := firstLineFix(seq); ok {
		fixes = append(fixes, fix...)
	}

	for i, el := range seq {
		if el.Kind != ElementPoint || !hasNewline(el.Point) {
			continue
		}
		if i+1 >= len(seq) {
			continue // trailing newline at EOF: nothing to indent
		}
		depth := depths[i+1].IndentBalance
		if depth < 0 {
			depth = 0
		}
		if cfg.AllowImplicitIndents && nextBlockIsComment(seq, i+1) {
			depth = commentOwnerDepth(seq, depths, i+1)
		}
		expected := strings.Repeat(cfg.Unit, depth)

		if fix, ok := indentFix(arena, el.Point, expected); ok {
			fixes = append(fixes, fix...)
		}
	}
	return fixes
}

// indentFix compares the whitespace following the last newline leaf in p
// against expected, returning a fix if they differ.
func indentFix(arena *segment.Arena, p Point, expected string) ([]segment.LintFix, bool) {
	lastNewline := -1
	for i, l := range p.Leaves {
		if l.Kind() == segment.KindNewline {
			lastNewline = i
		}
	}
	if lastNewline < 0 {
		return nil, false
	}
	tail := p.Leaves[lastNewline+1:]
	var actual strings.Builder
	for _, l := range tail {
		actual.WriteString(l.Raw())
	}
	if actual.String() == expected {
		return nil, false
	}

	var fixes []segment.LintFix
	switch {
	case len(tail) == 0 && expected != "":
		fixes = append(fixes, segment.LintFix{
			Type:        segment.CreateAfter,
			Anchor:      p.Leaves[lastNewline],
			Replacement: []segment.Segment{arena.NewLeaf(segment.KindWhitespace, expected, nil)},
		})
	case len(tail) > 0 && expected == "":
		for _, l := range tail {
			fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: l})
		}
	case len(tail) > 0:
		fixes = append(fixes, segment.LintFix{
			Type:        segment.Replace,
			Anchor:      tail[0],
			Replacement: []segment.Segment{arena.NewLeaf(segment.KindWhitespace, expected, nil)},
		})
		for _, l := range tail[1:] {
			fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: l})
		}
	}
	return fixes, true
}

// firstLineFix implements spec.md §4.3's "First-line rule": the very first
// point in the file, if it is not itself a line break, must be empty — any
// leading whitespace before the first code on line one is deleted outright
// (scenario S4), regardless of what depth ordinary reindent math would
// otherwise compute for it.
func firstLineFix(seq []Element) ([]segment.LintFix, bool) {
	if len(seq) == 0 || seq[0].Kind != ElementPoint {
		return nil, false
	}
	first := seq[0].Point
	if hasNewline(first) || len(first.Leaves) == 0 {
		return nil, false
	}
	fixes := make([]segment.LintFix, 0, len(first.Leaves))
	for _, l := range first.Leaves {
		fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: l})
	}
	return fixes, true
}

// RebreakLongLines finds, for every physical line exceeding maxLineLength,
// the candidate Point RebreakCandidate picks to break at (spec.md §4.3 "Line
// length") and returns the fixes that turn that Point's existing spacing
// into a newline followed by the line's own indent depth. A line within
// budget, or one with no eligible break Point, contributes nothing.
func RebreakLongLines(arena *segment.Arena, seq []Element, cfg IndentConfig, maxLineLength int) []segment.LintFix {
	if maxLineLength <= 0 {
		return nil
	}
	depths := WalkDepths(seq)
	lines := SplitLines(seq, depths)

	var fixes []segment.LintFix
	for _, line := range lines {
		idx, ok := RebreakCandidate(line, maxLineLength)
		if !ok {
			continue
		}
		el := line.Elements[idx]
		if el.Kind != ElementPoint {
			continue
		}
		depth := line.Depth.IndentBalance
		if depth < 0 {
			depth = 0
		}
		expected := strings.Repeat(cfg.Unit, depth)
		if fix, ok := rebreakPointFix(arena, line.Elements, idx, expected); ok {
			fixes = append(fixes, fix...)
		}
	}
	return fixes
}

// rebreakPointFix rewrites the Point at elements[idx] into "\n"+indent,
// anchoring on the point's own first leaf when it has one, or on the
// preceding block's trailing leaf via CreateAfter when the point is empty
// (a touch-constrained gap with literally nothing between two blocks).
func rebreakPointFix(arena *segment.Arena, elements []Element, idx int, indent string) ([]segment.LintFix, bool) {
	p := elements[idx].Point
	nl := arena.NewLeaf(segment.KindNewline, "\n", nil)
	replacement := []segment.Segment{nl}
	if indent != "" {
		replacement = append(replacement, arena.NewLeaf(segment.KindWhitespace, indent, nil))
	}

	if len(p.Leaves) > 0 {
		fixes := []segment.LintFix{{Type: segment.Replace, Anchor: p.Leaves[0], Replacement: replacement}}
		for _, l := range p.Leaves[1:] {
			fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: l})
		}
		return fixes, true
	}

	if idx == 0 {
		return nil, false
	}
	prev := elements[idx-1]
	if prev.Kind != ElementBlock || len(prev.Block.Leaves) == 0 {
		return nil, false
	}
	anchor := prev.Block.Leaves[len(prev.Block.Leaves)-1]
	return []segment.LintFix{{Type: segment.CreateAfter, Anchor: anchor, Replacement: replacement}}, true
}

func nextBlockIsComment(seq []Element, from int) bool {
	for i := from; i < len(seq); i++ {
		if seq[i].Kind == ElementBlock {
			return len(seq[i].Block.Leaves) > 0 && seq[i].Block.Leaves[0].Kind() == segment.KindComment
		}
	}
	return false
}

// commentOwnerDepth looks past a run of comment lines to the depth of the
// first non-comment line, so a comment inherits the indent of the code it
// documents rather than the (possibly shallower) indent in effect where it
// was written.
func commentOwnerDepth(seq []Element, depths []DepthInfo, from int) int {
	for i := from; i < len(seq); i++ {
		if seq[i].Kind != ElementPoint || !hasNewline(seq[i].Point) {
			continue
		}
		if i+1 >= len(seq) {
			break
		}
		if nextBlockIsComment(seq, i+1) {
			continue
		}
		return depths[i+1].IndentBalance
	}
	return depths[from].IndentBalance
}
