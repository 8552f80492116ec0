// Package analysis implements the shared table/CTE/alias scope resolver
// two rules use (AL05, RF01), kept intentionally small and
// statement-scoped: it never resolves a reference across statement
// boundaries, honoring the "alias resolution... scoped per rule" non-goal
// by being a shared utility rather than a general semantic analyzer.
package analysis

import "github.com/sqllint/sqllint/pkg/segment"

// TableSource is one FROM/JOIN source in scope for a single select_statement.
type TableSource struct {
	Name    string // the object_reference's dotted name, e.g. "schema.orders"
	Alias   string // "" if unaliased
	Segment segment.Segment
}

// DisplayName is the name other parts of the statement would use to qualify
// a column: the alias if present, else the bare object name.
func (t TableSource) DisplayName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// Scope is the set of table sources and CTE names visible within one
// select_statement.
type Scope struct {
	Sources []TableSource
	CTEs    []string
}

// BuildScope walks a select_statement segment's from_clause and returns the
// sources it introduces. CTE names from an enclosing with_compound_statement
// must be supplied by the caller (via WithCTEs), since the segment tree has
// no back-pointer the resolver can use to find its ancestor compound
// statement.
func BuildScope(selectStatement segment.Segment) *Scope {
	s := &Scope{}
	fromClauses := segment.RecursiveCrawl(selectStatement, []segment.Kind{"from_clause"}, false, []segment.Kind{"select_statement"}, true)
	for _, from := range fromClauses {
		for _, child := range from.Segments() {
			switch child.Kind() {
			case "from_expression":
				s.Sources = append(s.Sources, tableSourceOf(child))
			case "join_clause":
				for _, jchild := range child.Segments() {
					if jchild.Kind() == "from_expression" {
						s.Sources = append(s.Sources, tableSourceOf(jchild))
					}
				}
			}
		}
	}
	return s
}

// WithCTEs returns a copy of s with the given CTE names added to its CTE
// list, used for unqualified-reference resolution (RF01): a CTE name is a
// valid table source name even though it was declared outside the
// select_statement scope itself.
func (s *Scope) WithCTEs(names ...string) *Scope {
	out := &Scope{Sources: s.Sources, CTEs: append(append([]string{}, s.CTEs...), names...)}
	return out
}

func tableSourceOf(fromExpr segment.Segment) TableSource {
	ts := TableSource{Segment: fromExpr}
	for _, c := range fromExpr.Segments() {
		switch c.Kind() {
		case "object_reference":
			ts.Name = dottedName(c)
		case "alias_expression":
			ts.Alias = identifierOf(c)
		}
	}
	return ts
}

func dottedName(ref segment.Segment) string {
	var parts []string
	for _, c := range ref.Segments() {
		if c.ClassTypes().HasAny(segment.ClassIdentifier) {
			parts = append(parts, c.Raw())
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

func identifierOf(alias segment.Segment) string {
	for _, c := range alias.Segments() {
		if c.ClassTypes().HasAny(segment.ClassIdentifier) {
			return c.Raw()
		}
	}
	return ""
}

// AliasReferenced reports whether alias is used anywhere in stmt as a
// column qualifier ("alias.col") outside of its own declaring
// from_expression/alias_expression — the check AL05 needs before it can
// safely remove an unused alias.
func AliasReferenced(stmt segment.Segment, alias string, declaredIn segment.Segment) bool {
	refs := segment.RecursiveCrawl(stmt, []segment.Kind{"column_reference", "object_reference"}, true, nil, true)
	for _, ref := range refs {
		if isDescendant(declaredIn, ref) {
			continue
		}
		parts := identifierParts(ref)
		if len(parts) >= 2 && parts[0] == alias {
			return true
		}
	}
	return false
}

func identifierParts(ref segment.Segment) []string {
	var out []string
	for _, c := range ref.Segments() {
		if c.ClassTypes().HasAny(segment.ClassIdentifier) {
			out = append(out, c.Raw())
		}
	}
	return out
}

func isDescendant(ancestor, target segment.Segment) bool {
	if ancestor == nil {
		return false
	}
	if ancestor.ID() == target.ID() {
		return true
	}
	return segment.PathTo(ancestor, target) != nil
}
