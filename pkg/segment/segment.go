package segment

import "strconv"

// Kind is the type tag of a segment: a string-like enum. Leaf kinds are a
// closed set (see the Kind* constants below); internal node kinds are open —
// one per grammar production name, supplied by the dialect's grammar
// (spec.md §3 "Segment categories").
type Kind string

// Leaf kinds.
const (
	KindCode       Kind = "code"
	KindWhitespace Kind = "whitespace"
	KindNewline    Kind = "newline"
	KindComment    Kind = "comment"
	KindSymbol     Kind = "symbol"
	KindKeyword    Kind = "keyword"
	KindIdentifier Kind = "identifier"
	KindLiteral    Kind = "literal"
	KindUnlexable  Kind = "unlexable"
	KindEndOfFile  Kind = "end_of_file"
	// KindIndent and KindDedent are zero-width meta segments (spec.md §3,
	// §9 "Meta segments").
	KindIndent Kind = "indent"
	KindDedent Kind = "dedent"
)

// ID is a segment's stable identity, assigned at construction by an Arena.
// Two segments are structurally equal iff kind, raw text and position
// marker match; identity equality uses ID alone (spec.md §3 "Invariants").
type ID uint64

// String renders the id for diagnostics and LintFix.Key.
func (id ID) String() string { return "#" + strconv.FormatUint(uint64(id), 36) }

// Segment is the polymorphic tree node described in spec.md §3. Both leaves
// and internal nodes implement it; IsLeaf distinguishes them cheaply instead
// of a type switch at every call site.
type Segment interface {
	ID() ID
	Kind() Kind
	IsLeaf() bool
	IsMeta() bool

	// Raw returns the concatenated literal text of the subtree (spec.md §3
	// "raw()"). For leaves this is the leaf's own text.
	Raw() string

	// Segments returns the direct children, in order (spec.md §3
	// "get_segments()"). Nil for leaves.
	Segments() []Segment

	// ClassTypes returns the transitive set of class types this node
	// exposes (spec.md §3 "class_types()").
	ClassTypes() ClassSet

	Position() PositionMarker
	setPosition(PositionMarker)

	// IndentVal is nonzero only for meta indent/dedent segments: +1 for an
	// indent, -1 for a dedent (spec.md §9 "Meta segments").
	IndentVal() int
}

// SetPosition assigns a PositionMarker to a segment, used by the post-fix
// repositioning pass (spec.md §3 "Lifecycles"). Exported as a free function
// (rather than on the interface) so only trusted callers — the parser and
// the repositioning pass — invoke it.
func SetPosition(s Segment, p PositionMarker) { s.setPosition(p) }

// Leaf is a terminal segment: code, whitespace, newline, comment, symbol,
// keyword, identifier, literal, unlexable, end-of-file, or a zero-width
// indent/dedent meta marker.
type Leaf struct {
	id        ID
	kind      Kind
	classes   ClassSet
	raw       string
	pos       PositionMarker
	indentVal int
	// sourceFixes records SourceFix edits applied in-place to this leaf
	// without changing its identity meaning for patch purposes — reserved
	// for templated-region whitespace rewrites (spec.md §3 "SourceFix").
	sourceFixes []SourceFix
}

func (l *Leaf) ID() ID                  { return l.id }
func (l *Leaf) Kind() Kind              { return l.kind }
func (l *Leaf) IsLeaf() bool            { return true }
func (l *Leaf) IsMeta() bool            { return l.kind == KindIndent || l.kind == KindDedent }
func (l *Leaf) Raw() string             { return l.raw }
func (l *Leaf) Segments() []Segment     { return nil }
func (l *Leaf) ClassTypes() ClassSet    { return l.classes }
func (l *Leaf) Position() PositionMarker { return l.pos }
func (l *Leaf) setPosition(p PositionMarker) { l.pos = p }
func (l *Leaf) IndentVal() int          { return l.indentVal }
func (l *Leaf) SourceFixes() []SourceFix { return l.sourceFixes }

// Edit produces a new leaf of the same kind with different text (spec.md §3
// "edit()"). The new leaf inherits no id and carries no position marker
// until the repositioning pass runs; callers must substitute references to
// the old leaf (the "Leaf frontier stability under edit" invariant).
func (l *Leaf) Edit(arena *Arena, newRaw string, sourceFixes []SourceFix) *Leaf {
	return arena.NewLeaf(l.kind, newRaw, sourceFixes)
}

// Node is an internal segment produced by a grammar production; its Kind is
// the production name (e.g. "select_statement", "from_clause",
// "bracketed").
type Node struct {
	id       ID
	kind     Kind
	children []Segment
	classes  ClassSet // extra class types this production adds beyond "self"
	pos      PositionMarker
	// descendantCache memoizes descendant_type_set (spec.md §4.1); nil until
	// first computed, invalidated whenever children are replaced.
	descendantCache *ClassSet
}

func (n *Node) ID() ID                     { return n.id }
func (n *Node) Kind() Kind                  { return n.kind }
func (n *Node) IsLeaf() bool                { return false }
func (n *Node) IsMeta() bool                { return false }
func (n *Node) Segments() []Segment         { return n.children }
func (n *Node) Position() PositionMarker    { return n.pos }
func (n *Node) setPosition(p PositionMarker) { n.pos = p }
func (n *Node) IndentVal() int              { return 0 }

func (n *Node) Raw() string {
	var b []byte
	for _, c := range n.children {
		b = append(b, c.Raw()...)
	}
	return string(b)
}

// ClassTypes returns Set(kind) unioned with the production's extra classes
// (spec.md §9 "an identifier that is also a naked_identifier").
func (n *Node) ClassTypes() ClassSet {
	return Set(ClassType(n.kind)) | n.classes
}

// SetChildren replaces the node's children wholesale — the only mutation a
// tree node ever undergoes (spec.md §3 "Ownership"); it invalidates the
// descendant-type cache.
func (n *Node) SetChildren(children []Segment) {
	n.children = children
	n.descendantCache = nil
}

// AddClassTypes extends the set of class types this production reports,
// beyond the bare production-name tag (spec.md §9).
func (n *Node) AddClassTypes(extra ...ClassType) {
	n.classes |= Set(extra...)
}
