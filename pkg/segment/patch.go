package segment

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// TemplatedFileView is the minimal slice of the templated-file contract
// (spec.md §6) that the segment package needs: the original and templated
// strings, for literal-position testing. The full TemplatedFile type lives
// in package templatefile; segment does not import it, to avoid a cycle
// between the tree model and its external collaborator.
type TemplatedFileView interface {
	SourceStr() string
	TemplatedStr() string
}

// IterPatches walks root's leaf frontier in order and yields FixPatch
// records for literal-positioned leaves whose raw text differs from the
// corresponding slice of the original source, plus Create patches for
// leaves with no original source slice (spec.md §4.1 "iter_patches").
// Non-literal leaves (inside a template expansion) yield no patch of their
// own; a leaf's SourceFixes are not turned into patches here.
//
// A leaf whose fix deleted it outright, or whose fix replaced it with a
// freshly-allocated (position-less) leaf, no longer appears in the
// frontier at all — there is nothing left to diff against the original
// slice it used to occupy. Whenever the next surviving literally-positioned
// leaf's SourceSlice starts past prevEnd, that gap is exactly the span such
// a vanished leaf left behind, and a CategoryDelete patch covering it is
// synthesized before the surviving leaf's own patch (if any) is appended,
// so Render does not copy the vanished text back in verbatim.
func IterPatches(root Segment, tf TemplatedFileView) []FixPatch {
	source := tf.SourceStr()
	templated := tf.TemplatedStr()

	var patches []FixPatch
	var prevEnd Slice
	for _, leaf := range LeafFrontier(root) {
		pos := leaf.Position()
		if pos.None() {
			// Freshly inserted leaf: no original source slice. Anchor the
			// create patch at the end of the previous leaf's source slice.
			patches = append(patches, FixPatch{
				SourceSlice:     Slice{Start: prevEnd.Stop, Stop: prevEnd.Stop},
				TemplatedSlice:  Slice{Start: prevEnd.Stop, Stop: prevEnd.Stop},
				ReplacementText: leaf.Raw(),
				Category:        CategoryCreate,
			})
			continue
		}

		if gap := pos.SourceSlice.Start - prevEnd.Stop; gap > 0 {
			patches = append(patches, FixPatch{
				SourceSlice:        Slice{Start: prevEnd.Stop, Stop: pos.SourceSlice.Start},
				TemplatedSlice:     Slice{Start: prevEnd.Stop, Stop: pos.SourceSlice.Start},
				ReplacementText:    "",
				OriginalSourceText: source[prevEnd.Stop:pos.SourceSlice.Start],
				Category:           CategoryDelete,
			})
		}

		if !pos.IsLiteral(source, templated) {
			prevEnd = pos.SourceSlice
			continue
		}
		original := source[pos.SourceSlice.Start:pos.SourceSlice.Stop]
		if original != leaf.Raw() {
			cat := CategoryReplace
			if leaf.Raw() == "" {
				cat = CategoryDelete
			}
			patches = append(patches, FixPatch{
				SourceSlice:           pos.SourceSlice,
				TemplatedSlice:        pos.TemplatedSlice,
				ReplacementText:       leaf.Raw(),
				OriginalSourceText:    original,
				OriginalTemplatedText: templated[pos.TemplatedSlice.Start:pos.TemplatedSlice.Stop],
				Category:              cat,
			})
		}
		prevEnd = pos.SourceSlice
	}
	return patches
}

// SortPatches sorts patches by source-slice start, as step 2 of the patch
// generation algorithm requires (spec.md §4.1).
func SortPatches(patches []FixPatch) {
	slices.SortStableFunc(patches, func(a, b FixPatch) int {
		return a.SourceSlice.Start - b.SourceSlice.Start
	})
}

// Overlapping reports whether any two patches in (already-sorted) patches
// overlap in source-slice space — a condition that should not occur if the
// anti-oscillation discipline in spec.md §4.2 holds (spec.md P4).
func Overlapping(patches []FixPatch) bool {
	for i := 1; i < len(patches); i++ {
		if patches[i].SourceSlice.Start < patches[i-1].SourceSlice.Stop {
			return true
		}
	}
	return false
}

// Render splices patches into original, producing the rewritten source
// string (spec.md §4.1 step 3). Render sorts patches itself and rejects
// overlapping patches rather than silently picking a winner.
func Render(original string, patches []FixPatch) (string, error) {
	SortPatches(patches)
	if Overlapping(patches) {
		return "", errors.New("segment: overlapping fix patches")
	}

	var out []byte
	cursor := 0
	for _, p := range patches {
		if p.SourceSlice.Start < cursor {
			return "", errors.Errorf("segment: patch at %d precedes cursor %d", p.SourceSlice.Start, cursor)
		}
		out = append(out, original[cursor:p.SourceSlice.Start]...)
		out = append(out, p.ReplacementText...)
		cursor = p.SourceSlice.Stop
	}
	out = append(out, original[cursor:]...)
	return string(out), nil
}

// NormalizeNewlines normalizes all line endings in s to "\n". The lint
// pipeline in pkg/lintctx does not call it; source is lexed and rendered
// with its line endings as read.
func NormalizeNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' {
			if i+1 < len(s) && s[i+1] == '\n' {
				continue
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
