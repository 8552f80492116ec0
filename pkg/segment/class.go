// Package segment implements the in-memory representation of parsed SQL: a
// tree of Segment nodes bound to source, templated and working positions.
package segment

// ClassType is a single semantic tag a segment can expose through
// Segment.ClassTypes, e.g. "identifier" or "naked_identifier". A node may
// expose more than one class type; membership is a function from Kind (and,
// for a handful of leaf kinds, a refinement flag) to a set, never structural
// inheritance — see DESIGN.md "Polymorphic segment trees".
type ClassType string

// ClassSet is a small bitset of ClassTypes. The number of distinct class
// types in a dialect is bounded and known at registration time, so a bitset
// is cheap to union, intersect and test against — the same tradeoff the
// teacher makes with MatchStyle priority ordering in internal/route/leaf.go.
type ClassSet uint64

// classRegistry assigns stable bit positions to class type names. It is
// populated once, at package init, by registerClass.
var (
	classBit      = map[ClassType]uint{}
	classByBit    = map[uint]ClassType{}
	nextClassBit  uint
)

// registerClass assigns (or returns the existing) bit position for name.
func registerClass(name ClassType) uint {
	if b, ok := classBit[name]; ok {
		return b
	}
	if nextClassBit >= 64 {
		panic("segment: exceeded 64 distinct class types")
	}
	b := nextClassBit
	classBit[name] = b
	classByBit[b] = name
	nextClassBit++
	return b
}

// Set returns a ClassSet containing the given class types, registering any
// that have not been seen before.
func Set(names ...ClassType) ClassSet {
	var s ClassSet
	for _, n := range names {
		s |= ClassSet(1) << registerClass(n)
	}
	return s
}

// Union returns the union of all given sets.
func Union(sets ...ClassSet) ClassSet {
	var s ClassSet
	for _, o := range sets {
		s |= o
	}
	return s
}

// Has reports whether s contains t.
func (s ClassSet) Has(t ClassType) bool {
	b, ok := classBit[t]
	if !ok {
		return false
	}
	return s&(ClassSet(1)<<b) != 0
}

// HasAny reports whether s contains any of the given class types.
func (s ClassSet) HasAny(types ...ClassType) bool {
	for _, t := range types {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Slice returns the class types contained in s, in registration order.
func (s ClassSet) Slice() []ClassType {
	out := make([]ClassType, 0, 8)
	for b := uint(0); b < nextClassBit; b++ {
		if s&(ClassSet(1)<<b) != 0 {
			out = append(out, classByBit[b])
		}
	}
	return out
}

// Well-known leaf class types (§3 "Segment categories").
const (
	ClassCode       ClassType = "code"
	ClassWhitespace ClassType = "whitespace"
	ClassNewline    ClassType = "newline"
	ClassComment    ClassType = "comment"
	ClassSymbol     ClassType = "symbol"
	ClassKeyword    ClassType = "keyword"
	ClassIdentifier ClassType = "identifier"
	ClassLiteral    ClassType = "literal"
	ClassUnlexable  ClassType = "unlexable"
	ClassEndOfFile  ClassType = "end_of_file"
	ClassIndent     ClassType = "indent"
	ClassDedent     ClassType = "dedent"
	ClassMeta       ClassType = "meta"
	ClassComma      ClassType = "comma"
)
