// Package reflow implements the respace/rebreak/reindent engine of spec.md
// §4.3: it turns a segment tree's leaf frontier into a line-oriented
// sequence of spacing/break "Points" interleaved with "Blocks" of
// non-whitespace content, and reconciles that sequence against each rule's
// respacing/rebreak/indentation constraints.
package reflow

import "github.com/sqllint/sqllint/pkg/segment"

// ElementKind distinguishes the two element kinds a flattened sequence is
// built from (spec.md §4.3 "Block/Point flattening").
type ElementKind int

const (
	ElementBlock ElementKind = iota
	ElementPoint
)

// Block is a run of contiguous non-whitespace leaves rendered as a unit
// (spec.md §4.3).
type Block struct {
	Leaves []segment.Segment
}

func (b Block) Raw() string {
	var out string
	for _, l := range b.Leaves {
		out += l.Raw()
	}
	return out
}

// Point is the whitespace/newline gap between two Blocks, together with the
// respacing/rebreak constraint that governs it (spec.md §4.3 "respacing
// constraints").
type Point struct {
	Leaves     []segment.Segment // the whitespace/newline and indent/dedent meta leaves making up this gap
	Constraint Constraint
	// IsIndentCandidate marks a Point immediately following an indent meta
	// segment or immediately preceding a dedent — these are where the
	// reindent pass may insert or remove a newline+indentation run.
	IsIndentCandidate bool
	// InsertBefore is set when Leaves is empty but the two adjoining Blocks
	// still need a space between them (e.g. a binary operator authored with
	// no surrounding whitespace at all, "1+2"); it anchors the leaf the
	// missing whitespace leaf should be inserted before.
	InsertBefore segment.Segment
}

func (p Point) Raw() string {
	var out string
	for _, l := range p.Leaves {
		out += l.Raw()
	}
	return out
}

// Constraint is one of the respacing constraints named in spec.md §4.3.
type Constraint int

const (
	ConstraintSingle Constraint = iota // exactly one space; a gap holding a newline is left to reindent
	ConstraintTouch                    // no space at all
	ConstraintAny                      // leave as authored
	ConstraintInline                   // single space, but never break to a new line here
	ConstraintAlign                    // align to a named anchor column (neither Respace nor Reindent acts on it)
)

// Element is one member of a flattened sequence: either a Block or a Point.
type Element struct {
	Kind  ElementKind
	Block Block
	Point Point
}

// Flatten walks root's leaf frontier and groups it into the alternating
// Block/Point sequence the rest of this package operates on. Indent/dedent
// meta leaves are absorbed into the following/preceding Point rather than
// becoming Blocks of their own, since they carry no text. A comment is a
// contiguous run of non-whitespace, non-newline, non-meta content just like
// any other code (spec.md §4.3's definition of a Block), so it becomes its
// own Block rather than being folded into the surrounding gap; the Points
// immediately on either side of it keep ConstraintAny so respacing leaves
// the whitespace touching a comment exactly as authored.
func Flatten(root segment.Segment, constraintFor func(gap []segment.Segment) Constraint) []Element {
	leaves := segment.LeafFrontier(root)
	var elements []Element
	var curBlock []segment.Segment
	var curGap []segment.Segment
	afterComment := false
	prevBlockWasOperator := false
	flushBlock := func() {
		if len(curBlock) > 0 {
			elements = append(elements, Element{Kind: ElementBlock, Block: Block{Leaves: curBlock}})
			prevBlockWasOperator = len(curBlock) == 1 && isPaddedOperator(curBlock[0])
			curBlock = nil
		}
	}
	// flushGap closes out curGap as a Point. needsSpace is set for a
	// zero-width gap that still wants exactly one space — a binary operator
	// authored with no surrounding whitespace at all ("1+2") — since such a
	// gap has no leaf of its own for Respace to rewrite; insertBefore anchors
	// where that space would be inserted.
	flushGap := func(indentCandidate, adjacentComment, needsSpace bool, insertBefore segment.Segment) {
		if len(curGap) > 0 || indentCandidate || needsSpace {
			constraint := constraintFor(curGap)
			if adjacentComment {
				constraint = ConstraintAny
			}
			point := Point{Leaves: curGap, Constraint: constraint, IsIndentCandidate: indentCandidate}
			if needsSpace && len(curGap) == 0 && !indentCandidate {
				point.Constraint = ConstraintSingle
				point.InsertBefore = insertBefore
			}
			elements = append(elements, Element{Kind: ElementPoint, Point: point})
			curGap = nil
		}
	}

	pendingIndentFlag := false
	for _, leaf := range leaves {
		switch leaf.Kind() {
		case segment.KindWhitespace, segment.KindNewline:
			flushBlock()
			curGap = append(curGap, leaf)
		case segment.KindIndent, segment.KindDedent:
			// Zero-width meta leaves contribute no text but still need to be
			// visible to WalkDepths, so they ride along in the gap like any
			// other trivia rather than being dropped once IsIndentCandidate
			// is set.
			flushBlock()
			curGap = append(curGap, leaf)
			pendingIndentFlag = true
		case segment.KindComment:
			flushBlock()
			flushGap(pendingIndentFlag, true, false, nil)
			pendingIndentFlag = false
			elements = append(elements, Element{Kind: ElementBlock, Block: Block{Leaves: []segment.Segment{leaf}}})
			afterComment = true
			prevBlockWasOperator = false
		default:
			flushBlock()
			needsSpace := len(curGap) == 0 && (prevBlockWasOperator || isPaddedOperator(leaf))
			flushGap(pendingIndentFlag, afterComment, needsSpace, leaf)
			pendingIndentFlag = false
			afterComment = false
			curBlock = append(curBlock, leaf)
		}
	}
	flushBlock()
	flushGap(pendingIndentFlag, afterComment, false, nil)
	return elements
}

// isPaddedOperator reports whether leaf is a binary operator symbol that
// always wants a surrounding space, even when authored with none at all
// (spec.md §4.3 "respacing"; scenario S1, "1+2" -> "1 + 2"). Structural
// punctuation — parens, commas, dots, the statement terminator, and "*" (used
// both as multiplication and the star-wildcard) — is deliberately excluded so
// an absent gap there is left exactly as authored.
func isPaddedOperator(leaf segment.Segment) bool {
	if leaf.Kind() != segment.KindSymbol {
		return false
	}
	switch leaf.Raw() {
	case "+", "-", "/", "=", "<", ">", "<=", ">=", "<>", "!=":
		return true
	default:
		return false
	}
}
