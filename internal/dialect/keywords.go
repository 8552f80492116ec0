package dialect

// ReservedKeywords and UnreservedKeywords partition the identifiers this
// dialect treats specially. Reserved keywords can never be used as a bare
// identifier; unreserved keywords can (e.g. a column literally named
// "value"). Both sets are part of the "Dialect object" contract in spec.md
// §6 ("configured reserved/unreserved keyword sets").
var ReservedKeywords = buildSet(
	"SELECT", "FROM", "WHERE", "GROUP", "ORDER", "BY", "AS", "AND", "OR", "NOT",
	"IS", "NULL", "JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "ON",
	"UNION", "INTERSECT", "EXCEPT", "ALL", "DISTINCT", "WITH", "CASE", "WHEN",
	"THEN", "ELSE", "END", "IN", "BETWEEN", "LIKE", "ASC", "DESC", "HAVING",
	"LIMIT", "OFFSET", "UPDATE", "SET",
)

var UnreservedKeywords = buildSet(
	"VALUE", "DATE", "TIME", "TYPE", "NAME", "KEY",
)

func buildSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// IsReserved reports whether upper (already upper-cased) is a reserved
// keyword in this dialect.
func IsReserved(upper string) bool { return ReservedKeywords[upper] }

// IsUnreserved reports whether upper is an unreserved keyword.
func IsUnreserved(upper string) bool { return UnreservedKeywords[upper] }
