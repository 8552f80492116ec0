package reflow

import "github.com/sqllint/sqllint/pkg/segment"

// DepthInfo tracks indent balance while walking a flattened sequence
// (spec.md §4.3 "reindent... indent_balance, untaken_indents").
type DepthInfo struct {
	// IndentBalance is the net indent/dedent count at this point: how many
	// indentation levels deep the reindent pass believes the next line
	// should sit at.
	IndentBalance int
	// UntakenIndents counts indent meta segments seen since the last
	// newline that have not yet produced a line break — an indent that a
	// rule chose not to act on (e.g. a short select list kept on one line)
	// is still tracked so a later dedent on the same logical line doesn't
	// under-count.
	UntakenIndents int
}

// WalkDepths computes the DepthInfo in effect immediately before each
// Element of seq, by scanning the indent/dedent meta leaves folded into
// each Point.
func WalkDepths(seq []Element) []DepthInfo {
	out := make([]DepthInfo, len(seq))
	var balance, untaken int
	for i, el := range seq {
		out[i] = DepthInfo{IndentBalance: balance, UntakenIndents: untaken}
		if el.Kind != ElementPoint {
			continue
		}
		for _, leaf := range el.Point.Leaves {
			switch leaf.Kind() {
			case segment.KindIndent:
				balance++
				untaken++
			case segment.KindDedent:
				balance--
				if untaken > 0 {
					untaken--
				}
			case segment.KindNewline:
				untaken = 0
			}
		}
	}
	return out
}

// IndentPoint reports whether el is a Point eligible to carry a newline
// introduced or removed by the reindent pass (spec.md §4.3 "IndentPoint").
func IndentPoint(el Element) bool {
	return el.Kind == ElementPoint && el.Point.IsIndentCandidate
}

// IndentLine is one physical source line as seen by the reindent pass: the
// sequence elements it contains and the DepthInfo in effect at its start.
type IndentLine struct {
	Elements []Element
	Depth    DepthInfo
}

// SplitLines groups seq into IndentLines at each newline-bearing Point.
func SplitLines(seq []Element, depths []DepthInfo) []IndentLine {
	var lines []IndentLine
	var cur []Element
	curDepth := DepthInfo{}
	started := false
	for i, el := range seq {
		if !started {
			curDepth = depths[i]
			started = true
		}
		cur = append(cur, el)
		if el.Kind == ElementPoint && hasNewline(el.Point) {
			lines = append(lines, IndentLine{Elements: cur, Depth: curDepth})
			cur = nil
			started = false
		}
	}
	if len(cur) > 0 {
		lines = append(lines, IndentLine{Elements: cur, Depth: curDepth})
	}
	return lines
}

func hasNewline(p Point) bool {
	for _, l := range p.Leaves {
		if l.Kind() == segment.KindNewline {
			return true
		}
	}
	return false
}
