package dialect

import (
	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Grammar is a BNF-based statement-shape parser using a stateful lexer,
// built exactly the way internal/route/parser.go builds the route grammar
// in the teacher repo: plexer.New(plexer.Rules{...}) feeding
// participle.Build[T]. It produces a secondary, trivia-free AST
// (*Statement), reachable through internal/parse's Parser.AST; pkg/analysis
// and the rules work on the segment tree, which is built by the full-fidelity,
// whitespace-preserving recursive-descent builder in internal/parse, which
// deliberately does not depend on participle — re-parsing a subtree on
// every fix-loop iteration (spec.md §4.2) through reflection-driven
// participle grammars would make the hot path pay reflection cost it
// doesn't need, when the builder already has an exact token stream.
type Grammar struct {
	parser *participle.Parser[Statement]
}

// NewGrammar constructs the Grammar for this dialect.
func NewGrammar() (*Grammar, error) {
	l, err := plexer.New(plexer.Rules{
		"Root": {
			{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
			{Name: "LineComment", Pattern: `--[^\n]*`},
			{Name: "BlockComment", Pattern: `/\*([^*]|\*[^/])*\*/`},
			{Name: "Keyword", Pattern: `(?i)\b(SELECT|DISTINCT|FROM|WHERE|GROUP|ORDER|BY|HAVING|AS|AND|OR|NOT|IS|NULL|JOIN|INNER|LEFT|RIGHT|FULL|OUTER|ON|UNION|ALL|INTERSECT|EXCEPT|WITH|ASC|DESC|LIKE)\b`},
			{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
			{Name: "String", Pattern: `'([^']|'')*'`},
			{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
			{Name: "NotEq", Pattern: `<>|!=`},
			{Name: "LtEq", Pattern: `<=`},
			{Name: "GtEq", Pattern: `>=`},
			{Name: "Punct", Pattern: `[,.()=<>+\-*/]`},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "new lexer")
	}

	parser, err := participle.Build[Statement](
		participle.Lexer(l),
		participle.UseLookahead(2),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build parser")
	}
	return &Grammar{parser: parser}, nil
}

// Parse parses sql into a *Statement AST, or returns a parse error that the
// caller should surface through the segment tree as an unparsable segment
// (spec.md §7 "Parse error").
func (g *Grammar) Parse(sql string) (*Statement, error) {
	return g.parser.ParseString("", sql)
}

// --- Grammar (spec.md §2 "Parser" box; structural shape only, no trivia) ---

type Statement struct {
	Pos   plexer.Position
	With  *WithClause      `parser:"@@?"`
	Query *QueryExpression `parser:"@@"`
}

type WithClause struct {
	Pos  plexer.Position
	CTEs []*CTE `parser:"\"WITH\" @@ (\",\" @@)*"`
}

type CTE struct {
	Pos   plexer.Position
	Name  string           `parser:"@Ident"`
	Query *QueryExpression `parser:"\"AS\" \"(\" @@ \")\""`
}

type QueryExpression struct {
	Pos    plexer.Position
	Select *SelectStatement `parser:"@@"`
	SetOps []*SetOp         `parser:"@@*"`
}

type SetOp struct {
	Pos      plexer.Position
	Operator string           `parser:"@(\"UNION\" | \"INTERSECT\" | \"EXCEPT\")"`
	All      bool             `parser:"@\"ALL\"?"`
	Select   *SelectStatement `parser:"@@"`
}

type SelectStatement struct {
	Pos      plexer.Position
	Distinct bool            `parser:"\"SELECT\" @\"DISTINCT\"?"`
	Targets  []*SelectTarget `parser:"@@ (\",\" @@)*"`
	From     *FromClause     `parser:"@@?"`
	Where    *Expr           `parser:"(\"WHERE\" @@)?"`
	GroupBy  []*Expr         `parser:"(\"GROUP\" \"BY\" @@ (\",\" @@)*)?"`
	Having   *Expr           `parser:"(\"HAVING\" @@)?"`
	OrderBy  []*OrderByTerm  `parser:"(\"ORDER\" \"BY\" @@ (\",\" @@)*)?"`
}

type SelectTarget struct {
	Pos       plexer.Position
	Star      bool   `parser:"(  @\"*\""`
	Qualified string `parser:"   | @Ident \".\" \"*\""`
	Expr      *Expr  `parser:"   | @@ )"`
	Alias     *Alias `parser:"@@?"`
}

type Alias struct {
	Pos  plexer.Position
	As   bool   `parser:"@\"AS\"?"`
	Name string `parser:"@Ident"`
}

type TableRef struct {
	Pos   plexer.Position
	Name  string `parser:"@Ident"`
	Alias *Alias `parser:"@@?"`
}

type JoinClause struct {
	Pos   plexer.Position
	Kind  string    `parser:"@(\"INNER\" | \"LEFT\" \"OUTER\"? | \"RIGHT\" \"OUTER\"? | \"FULL\" \"OUTER\"?)?"`
	Table *TableRef `parser:"\"JOIN\" @@"`
	On    *Expr     `parser:"\"ON\" @@"`
}

type FromClause struct {
	Pos    plexer.Position
	Tables []*TableRef   `parser:"\"FROM\" @@ (\",\" @@)*"`
	Joins  []*JoinClause `parser:"@@*"`
}

type OrderByTerm struct {
	Pos       plexer.Position
	Expr      *Expr  `parser:"@@"`
	Direction string `parser:"@(\"ASC\" | \"DESC\")?"`
}

// Expr is the top of the precedence-climbing expression grammar: Or > And >
// equality (incl. IS [NOT] NULL) > additive > multiplicative > unary >
// primary, the standard participle shape for operator precedence (each
// level is its own nonterminal; participle has no built-in precedence
// climbing).
type Expr struct {
	Pos  plexer.Position
	Left *AndExpr   `parser:"@@"`
	Or   []*AndExpr `parser:"(\"OR\" @@)*"`
}

type AndExpr struct {
	Pos  plexer.Position
	Left *Equality   `parser:"@@"`
	And  []*Equality `parser:"(\"AND\" @@)*"`
}

type Equality struct {
	Pos  plexer.Position
	Left *Additive `parser:"@@"`
	Tail *EqualityTail `parser:"@@?"`
}

type EqualityTail struct {
	Pos      plexer.Position
	IsNull   *IsNullTail `parser:"  @@"`
	Operator string      `parser:"| @(\"=\" | NotEq | \"<\" | LtEq | \">\" | GtEq | \"LIKE\")"`
	Right    *Additive   `parser:"  @@?"`
}

type IsNullTail struct {
	Pos  plexer.Position
	Not  bool `parser:"\"IS\" @\"NOT\"?"`
	Null bool `parser:"@\"NULL\""`
}

type Additive struct {
	Pos  plexer.Position
	Left *Multiplicative `parser:"@@"`
	Rest []*AdditiveTail `parser:"@@*"`
}

type AdditiveTail struct {
	Pos      plexer.Position
	Operator string          `parser:"@(\"+\" | \"-\")"`
	Right    *Multiplicative `parser:"@@"`
}

type Multiplicative struct {
	Pos  plexer.Position
	Left *Unary                `parser:"@@"`
	Rest []*MultiplicativeTail `parser:"@@*"`
}

type MultiplicativeTail struct {
	Pos      plexer.Position
	Operator string `parser:"@(\"*\" | \"/\")"`
	Right    *Unary `parser:"@@"`
}

type Unary struct {
	Pos      plexer.Position
	Negative bool     `parser:"@\"-\"?"`
	Primary  *Primary `parser:"@@"`
}

type Primary struct {
	Pos       plexer.Position
	Number    *string `parser:"(  @Number"`
	String    *string `parser:"   | @String"`
	Star      bool    `parser:"   | @\"*\""`
	Call      *FunctionCall `parser:"   | @@"`
	Column    *ColumnRef    `parser:"   | @@"`
	Bracketed *Expr         `parser:"   | \"(\" @@ \")\" )"`
}

type FunctionCall struct {
	Pos  plexer.Position
	Name string  `parser:"@Ident \"(\""`
	Args []*Expr `parser:"( @@ (\",\" @@)* )? \")\""`
}

type ColumnRef struct {
	Pos   plexer.Position
	Parts []string `parser:"@Ident (\".\" @Ident)*"`
}
