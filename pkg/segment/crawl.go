package segment

// File is the root of a parsed file's segment tree, plus the arena that
// owns its ids — everything a Rule or the reflow engine needs to crawl the
// tree and construct replacement segments (spec.md §4.2 "RuleContext ...
// a shared id generator for constructing new segments").
type File struct {
	Root  Segment
	Arena *Arena
}

// PathStep is one hop of path_to: a parent, the index of the child taken,
// the total number of children the parent has, and the indices of the
// parent's code children (spec.md §4.1 "path_to").
type PathStep struct {
	Parent        Segment
	ChildIndex    int
	NumChildren   int
	CodeIndices   []int
}

// PathTo returns the ordered list of PathSteps from root down to target, or
// nil if target is not a descendant of root (spec.md §4.1 "path_to").
func PathTo(root, target Segment) []PathStep {
	if root.ID() == target.ID() {
		return []PathStep{}
	}
	children := root.Segments()
	for i, c := range children {
		if c.ID() == target.ID() {
			return []PathStep{pathStep(root, children, i)}
		}
	}
	for i, c := range children {
		if sub := PathTo(c, target); sub != nil {
			return append([]PathStep{pathStep(root, children, i)}, sub...)
		}
	}
	return nil
}

func pathStep(parent Segment, children []Segment, idx int) PathStep {
	var codeIdx []int
	for i, c := range children {
		if c.ClassTypes().Has(ClassCode) {
			codeIdx = append(codeIdx, i)
		}
	}
	return PathStep{Parent: parent, ChildIndex: idx, NumChildren: len(children), CodeIndices: codeIdx}
}

// RecursiveCrawl performs a pre-order traversal yielding segments whose Kind
// is in types. If recurseIntoMatch is false, a match does not descend
// further. allowlistParent, when non-empty, caps the descent: once the
// current node's Kind is not in allowlistParent, its children are not
// visited (spec.md §4.1 "recursive_crawl").
func RecursiveCrawl(root Segment, types []Kind, recurseIntoMatch bool, allowlistParent []Kind, allowSelf bool) []Segment {
	typeSet := map[Kind]bool{}
	for _, t := range types {
		typeSet[t] = true
	}
	allowSet := map[Kind]bool{}
	for _, t := range allowlistParent {
		allowSet[t] = true
	}

	var out []Segment
	var walk func(s Segment, isSelf bool)
	walk = func(s Segment, isSelf bool) {
		matched := typeSet[s.Kind()] && (!isSelf || allowSelf)
		if matched {
			out = append(out, s)
			if !recurseIntoMatch {
				return
			}
		}
		if len(allowSet) > 0 && !allowSet[s.Kind()] && !isSelf {
			return
		}
		for _, c := range s.Segments() {
			walk(c, false)
		}
	}
	walk(root, true)
	return out
}

// RawSegmentWithAncestors pairs a leaf frontier element with the stack of
// ancestors from root down to (not including) the leaf itself — top of the
// tree first (spec.md §4.1 "raw_segments_with_ancestors").
type RawSegmentWithAncestors struct {
	Leaf      Segment
	Ancestors []Segment
}

// RawSegmentsWithAncestors returns the leaf frontier of root, each paired
// with its ancestor path — the reflow engine's primary input.
func RawSegmentsWithAncestors(root Segment) []RawSegmentWithAncestors {
	var out []RawSegmentWithAncestors
	var walk func(s Segment, ancestors []Segment)
	walk = func(s Segment, ancestors []Segment) {
		if s.IsLeaf() {
			cp := make([]Segment, len(ancestors))
			copy(cp, ancestors)
			out = append(out, RawSegmentWithAncestors{Leaf: s, Ancestors: cp})
			return
		}
		next := append(ancestors, s)
		for _, c := range s.Segments() {
			walk(c, next)
		}
	}
	walk(root, nil)
	return out
}

// DescendantTypeSet returns the cached union of class types across root's
// subtree (spec.md §4.1 "descendant_type_set"), used for early pruning by
// crawlers. For an internal *Node this memoizes on the node itself; other
// Segment implementations are recomputed each call.
func DescendantTypeSet(root Segment) ClassSet {
	if n, ok := root.(*Node); ok {
		if n.descendantCache != nil {
			return *n.descendantCache
		}
		s := n.ClassTypes()
		for _, c := range n.children {
			s |= DescendantTypeSet(c)
		}
		n.descendantCache = &s
		return s
	}
	s := root.ClassTypes()
	for _, c := range root.Segments() {
		s |= DescendantTypeSet(c)
	}
	return s
}

// LeafFrontier returns the leaves of root in source order (spec.md §3
// "get_raw_segments()").
func LeafFrontier(root Segment) []Segment {
	if root.IsLeaf() {
		return []Segment{root}
	}
	var out []Segment
	for _, c := range root.Segments() {
		out = append(out, LeafFrontier(c)...)
	}
	return out
}
