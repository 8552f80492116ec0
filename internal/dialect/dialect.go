package dialect

import "github.com/pkg/errors"

// Dialect is the "Dialect object" contract from spec.md §6: the lexer and
// grammar rules for one SQL dialect, its reserved/unreserved keyword sets,
// and an opaque map of dialect-specific config references that rules may
// consult (e.g. a dialect-specific list of set-operator keywords). Only one
// concrete Dialect, Default, ships with this repo; spec.md §1 scopes
// additional dialects as a separate, external concern.
type Dialect struct {
	Name       string
	Grammar    *Grammar
	Reserved   map[string]bool
	Unreserved map[string]bool
	ConfigRefs map[string]string
}

// New builds the named dialect's Grammar and returns the Dialect object.
// Only "ansi" is implemented; any other name is a Config error (spec.md §7),
// which pkg/config wraps with the offending name.
func New(name string) (*Dialect, error) {
	if name != "ansi" {
		return nil, errors.Errorf("dialect: unsupported dialect %q", name)
	}
	g, err := NewGrammar()
	if err != nil {
		return nil, err
	}
	return &Dialect{
		Name:       name,
		Grammar:    g,
		Reserved:   ReservedKeywords,
		Unreserved: UnreservedKeywords,
		ConfigRefs: map[string]string{
			"set_operators": "UNION,UNION ALL,INTERSECT,EXCEPT",
			"quote_styles":  "\",`,[",
		},
	}, nil
}

// Lex tokenizes sql with the full trivia-preserving lexer and reclassifies
// keywords, ready for internal/parse's tree builder.
func (d *Dialect) Lex(sql string) []Item {
	return Classify(Lex(sql))
}
