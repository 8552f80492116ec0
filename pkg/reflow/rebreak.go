package reflow

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// RebreakCandidate finds the best Point in line to break a line at once
// it's longer than maxLineLength (spec.md §4.3 "Line length"). It uses
// muesli/reflow/wordwrap to compute where a soft word-wrap of the rendered
// line would naturally fall, then walks the line's elements to find the
// last break-eligible Point starting at or before that column — a
// ConstraintSingle/ConstraintAny Point that isn't itself an indent
// candidate (those are the reindent pass's own newlines, not a rebreak
// target). Returns the element index of that Point and true, or (0, false)
// if the line doesn't need rebreaking or no eligible Point was found.
func RebreakCandidate(line IndentLine, maxLineLength int) (int, bool) {
	raw := rawOfLine(line)
	if maxLineLength <= 0 || len(raw) <= maxLineLength {
		return 0, false
	}

	wrapped := wordwrap.String(raw, maxLineLength)
	col := strings.IndexByte(wrapped, '\n')
	if col < 0 {
		col = len(raw)
	}

	best := -1
	offset := 0
	for i, el := range line.Elements {
		if el.Kind == ElementPoint && !el.Point.IsIndentCandidate &&
			(el.Point.Constraint == ConstraintSingle || el.Point.Constraint == ConstraintAny) {
			if offset <= col {
				best = i
			}
		}
		offset += len(elementRaw(el))
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func rawOfLine(line IndentLine) string {
	var b strings.Builder
	for _, el := range line.Elements {
		b.WriteString(elementRaw(el))
	}
	return b.String()
}

func elementRaw(el Element) string {
	if el.Kind == ElementBlock {
		return el.Block.Raw()
	}
	return el.Point.Raw()
}
