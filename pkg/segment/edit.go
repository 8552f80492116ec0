package segment

// EditType is the kind of tree mutation a LintFix proposes. See spec.md §3
// "The edit types".
type EditType int

const (
	// CreateBefore inserts replacement segments immediately before the anchor.
	CreateBefore EditType = iota
	// CreateAfter inserts replacement segments immediately after the anchor.
	CreateAfter
	// Replace substitutes the anchor with the replacement segments.
	Replace
	// Delete removes the anchor entirely.
	Delete
)

func (t EditType) String() string {
	switch t {
	case CreateBefore:
		return "create_before"
	case CreateAfter:
		return "create_after"
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// LintFix is a proposed tree edit anchored on an existing node. Replacement
// segments are newly constructed leaves with no position marker; positions
// are assigned at patch time (spec.md §3).
type LintFix struct {
	Type        EditType
	Anchor       Segment
	Replacement []Segment
	// Source carries narrower SourceFix records for edits whose effect lives
	// purely in the source coordinate system.
	Source []SourceFix
}

// Key returns a string uniquely identifying the (edit_type, payload) of the
// fix, used to deduplicate identical fixes anchored at the same segment
// before counting them in an anchor group (spec.md §4.2).
func (f LintFix) Key() string {
	key := f.Type.String() + "|" + f.Anchor.ID().String()
	for _, r := range f.Replacement {
		key += "|" + string(r.Kind()) + ":" + r.Raw()
	}
	for _, s := range f.Source {
		key += "|src:" + s.EditText
	}
	return key
}

// SourceFix is a narrower record used for fixes whose effect lives purely in
// the source coordinate system, e.g. rewriting whitespace inside a template
// tag (spec.md §3).
type SourceFix struct {
	EditText       string
	SourceSlice    Slice
	TemplatedSlice Slice
}

// FixCategory classifies a FixPatch for diagnostics and statistics.
type FixCategory string

const (
	CategoryReplace FixCategory = "replace"
	CategoryCreate  FixCategory = "create"
	CategoryDelete  FixCategory = "delete"
	CategorySource  FixCategory = "source"
)

// FixPatch is the final emitted record produced by patch generation
// (spec.md §3, §4.1).
type FixPatch struct {
	SourceSlice          Slice
	TemplatedSlice        Slice
	ReplacementText       string
	OriginalTemplatedText string
	OriginalSourceText    string
	Category              FixCategory
}
