package reflow

import "github.com/sqllint/sqllint/pkg/segment"

// Respace compares each Point in seq against its Constraint and returns the
// fixes needed to bring mismatched gaps into line (spec.md §4.3
// "respacing"; scenarios S1/S2). A comment is its own Block (see Flatten),
// never part of a Point, so nothing here special-cases one: a Point
// touching a comment simply carries ConstraintAny from Flatten and is left
// as authored by the ConstraintAny case below like any other preserved gap.
//
// A Point that still contains a literal newline is only collapsed here when
// the constraint is ConstraintInline (strip_newlines is active for this
// scope) or the following block is the file's end-of-file marker (spec.md
// §4.3 step 1); otherwise the newline is the reindent pass's to own (step
// 2) and Respace limits itself to trimming redundant trailing whitespace
// before it. An indent-candidate Point with a newline is skipped entirely;
// one without a newline has its whitespace collapsed to a single space.
func Respace(arena *segment.Arena, seq []Element) []segment.LintFix {
	var fixes []segment.LintFix
	for i, el := range seq {
		if el.Kind != ElementPoint {
			continue
		}
		p := el.Point
		if p.IsIndentCandidate {
			// Without a newline, collapse the whitespace to one space and
			// leave the meta leaves and an empty gap alone.
			if !hasNewline(p) && p.Raw() != "" && p.Raw() != " " {
				var ws []segment.Segment
				for _, l := range p.Leaves {
					if !l.ClassTypes().HasAny(segment.ClassMeta) {
						ws = append(ws, l)
					}
				}
				fixes = append(fixes, segment.LintFix{Type: segment.Replace, Anchor: ws[0], Replacement: []segment.Segment{arena.NewLeaf(segment.KindWhitespace, " ", nil)}})
				for _, extra := range ws[1:] {
					fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: extra})
				}
			}
			continue // with a newline, indentation candidates are the reindent pass's concern
		}
		switch p.Constraint {
		case ConstraintTouch:
			fixes = append(fixes, touchFix(arena, p)...)
		case ConstraintInline:
			fixes = append(fixes, singleSpaceFix(arena, p)...)
		case ConstraintSingle:
			if hasNewline(p) && !nextBlockIsEOF(seq, i+1) {
				fixes = append(fixes, trimTrailingBeforeNewline(arena, p)...)
				continue
			}
			fixes = append(fixes, singleSpaceFix(arena, p)...)
		}
	}
	return fixes
}

// nextBlockIsEOF reports whether the next Block element at or after idx is
// the file's zero-width end-of-file leaf (spec.md §4.3 step 1, "... or the
// next block is end-of-file").
func nextBlockIsEOF(seq []Element, idx int) bool {
	for i := idx; i < len(seq); i++ {
		if seq[i].Kind != ElementBlock {
			continue
		}
		leaves := seq[i].Block.Leaves
		return len(leaves) > 0 && leaves[0].Kind() == segment.KindEndOfFile
	}
	return false
}

// trimTrailingBeforeNewline removes redundant whitespace immediately
// preceding a newline leaf within a Point the reindent pass otherwise owns
// (spec.md §4.3 step 1, "strip redundant trailing whitespace on a line").
// It never touches the newline itself or anything after it — that is
// reindent's job.
func trimTrailingBeforeNewline(arena *segment.Arena, p Point) []segment.LintFix {
	var fixes []segment.LintFix
	for i, l := range p.Leaves {
		if l.Kind() != segment.KindWhitespace {
			continue
		}
		if i+1 < len(p.Leaves) && p.Leaves[i+1].Kind() == segment.KindNewline {
			fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: l})
		}
	}
	return fixes
}

func touchFix(arena *segment.Arena, p Point) []segment.LintFix {
	if len(p.Leaves) == 0 || p.Raw() == "" {
		return nil
	}
	return deleteAll(p)
}

func singleSpaceFix(arena *segment.Arena, p Point) []segment.LintFix {
	if p.Raw() == " " && len(p.Leaves) == 1 {
		return nil
	}
	if len(p.Leaves) == 0 {
		if p.InsertBefore == nil {
			return nil
		}
		return []segment.LintFix{{
			Type:        segment.CreateBefore,
			Anchor:      p.InsertBefore,
			Replacement: []segment.Segment{arena.NewLeaf(segment.KindWhitespace, " ", nil)},
		}}
	}
	fixes := []segment.LintFix{{
		Type:        segment.Replace,
		Anchor:      p.Leaves[0],
		Replacement: []segment.Segment{arena.NewLeaf(segment.KindWhitespace, " ", nil)},
	}}
	for _, extra := range p.Leaves[1:] {
		fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: extra})
	}
	return fixes
}

func deleteAll(p Point) []segment.LintFix {
	var fixes []segment.LintFix
	for _, l := range p.Leaves {
		fixes = append(fixes, segment.LintFix{Type: segment.Delete, Anchor: l})
	}
	return fixes
}
