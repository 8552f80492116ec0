package engine

import "github.com/sqllint/sqllint/pkg/segment"

// Apply applies the fixes attached to violations to file's tree in place,
// per spec.md §4.2 "Applying a grouped fix to a segment": fixes are grouped
// by anchor id, an anchor with two or more distinct fixes (different Keys)
// is a conflict and none of that anchor's fixes are applied this round —
// except the one case spec.md calls out explicitly, exactly one CreateBefore
// and one CreateAfter on the same anchor, which are not in conflict and are
// both applied — and a fix group that is a single leaf-for-leaf replacement
// with identical ClassTypes takes the fast path — splice the child straight
// in, no revalidation of the surrounding structure, since nothing about the
// tree's shape changed.
func Apply(file *segment.File, violations []Violation) (applied, conflicts int) {
	groups := map[segment.ID][]segment.LintFix{}
	anchors := map[segment.ID]segment.Segment{}
	for _, v := range violations {
		for _, fix := range v.Fixes {
			id := fix.Anchor.ID()
			anchors[id] = fix.Anchor
			if !containsKey(groups[id], fix) {
				groups[id] = append(groups[id], fix)
			}
		}
	}

	for id, fixes := range groups {
		if len(fixes) == 2 {
			if before, after, ok := beforeAfterPair(fixes); ok {
				if applyOne(file, anchors[id], before) {
					applied++
				}
				if applyOne(file, anchors[id], after) {
					applied++
				}
				continue
			}
		}
		if len(fixes) > 1 {
			conflicts++
			continue
		}
		if applyOne(file, anchors[id], fixes[0]) {
			applied++
		}
	}
	return applied, conflicts
}

// beforeAfterPair reports whether fixes is exactly one CreateBefore and one
// CreateAfter fix, spec.md §4.2's sole exception to "more than one distinct
// fix on an anchor is a conflict" — a rule inserting a segment on each side
// of the same anchor in a single pass.
func beforeAfterPair(fixes []segment.LintFix) (before, after segment.LintFix, ok bool) {
	if len(fixes) != 2 {
		return
	}
	a, b := fixes[0], fixes[1]
	switch {
	case a.Type == segment.CreateBefore && b.Type == segment.CreateAfter:
		return a, b, true
	case a.Type == segment.CreateAfter && b.Type == segment.CreateBefore:
		return b, a, true
	default:
		return
	}
}

func containsKey(fixes []segment.LintFix, fix segment.LintFix) bool {
	for _, f := range fixes {
		if f.Key() == fix.Key() {
			return true
		}
	}
	return false
}

func applyOne(file *segment.File, anchor segment.Segment, fix segment.LintFix) bool {
	path := segment.PathTo(file.Root, anchor)
	if len(path) == 0 {
		return false // anchor is the root, or not in the tree (already replaced this round)
	}
	step := path[len(path)-1]
	parent, ok := step.Parent.(*segment.Node)
	if !ok {
		return false
	}
	children := parent.Segments()
	idx := step.ChildIndex

	// Fast path: a single-leaf, same-class-types replacement can't change
	// the tree's shape, so it never needs to disturb siblings.
	if fix.Type == segment.Replace && len(fix.Replacement) == 1 &&
		anchor.IsLeaf() && fix.Replacement[0].IsLeaf() &&
		anchor.ClassTypes() == fix.Replacement[0].ClassTypes() {
		next := append([]segment.Segment{}, children...)
		next[idx] = fix.Replacement[0]
		parent.SetChildren(next)
		return true
	}

	var next []segment.Segment
	switch fix.Type {
	case segment.Replace:
		next = append(next, children[:idx]...)
		next = append(next, fix.Replacement...)
		next = append(next, children[idx+1:]...)
	case segment.Delete:
		next = append(next, children[:idx]...)
		next = append(next, children[idx+1:]...)
	case segment.CreateBefore:
		next = append(next, children[:idx]...)
		next = append(next, fix.Replacement...)
		next = append(next, children[idx:]...)
	case segment.CreateAfter:
		next = append(next, children[:idx+1]...)
		next = append(next, fix.Replacement...)
		next = append(next, children[idx+1:]...)
	default:
		return false
	}
	parent.SetChildren(next)
	return true
}
