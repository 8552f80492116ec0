// Package parse assembles the segment tree for the default dialect: it
// walks the trivia-preserving token stream from internal/dialect and builds
// the nested segment.Node/segment.Leaf structure the rest of the core
// operates on, inserting indent/dedent meta segments where the reindent
// engine (pkg/reflow) needs an impulse.
//
// This package does not call into internal/dialect's participle Grammar.
// That grammar yields a separate trivia-free AST, reachable through
// Parser.AST, which no package here calls; the segment tree itself
// is built by straightforward recursive descent directly over
// dialect.Item, because the tree builder must account for every byte
// (spec.md §3 "Contiguity") and re-runs synchronously on every fix-loop
// iteration (spec.md §4.2), where reflecting over a second parse of the
// same grammar would only add cost without adding fidelity.
package parse

import "github.com/sqllint/sqllint/pkg/segment"

// Node kinds produced by this package's builder. Grammar-production kinds
// are open (spec.md §3 "Segment categories"); these are the ones the rule
// set in pkg/rules and the analysis helpers in pkg/analysis key off of.
const (
	KindFile                 segment.Kind = "file"
	KindStatement             segment.Kind = "statement"
	KindUnparsable            segment.Kind = "unparsable"
	KindWithCompoundStatement segment.Kind = "with_compound_statement"
	KindCommonTableExpression segment.Kind = "common_table_expression"
	KindQueryExpression       segment.Kind = "query_expression"
	KindSetOperator           segment.Kind = "set_operator"
	KindSelectStatement       segment.Kind = "select_statement"
	KindSelectClause          segment.Kind = "select_clause"
	KindSelectTarget          segment.Kind = "select_target"
	KindAliasExpression       segment.Kind = "alias_expression"
	KindFromClause            segment.Kind = "from_clause"
	KindFromExpression        segment.Kind = "from_expression"
	KindJoinClause            segment.Kind = "join_clause"
	KindObjectReference       segment.Kind = "object_reference"
	KindColumnReference       segment.Kind = "column_reference"
	KindWhereClause           segment.Kind = "where_clause"
	KindGroupByClause         segment.Kind = "groupby_clause"
	KindHavingClause          segment.Kind = "having_clause"
	KindOrderByClause         segment.Kind = "orderby_clause"
	KindOrderByTerm           segment.Kind = "orderby_term"
	KindUpdateStatement       segment.Kind = "update_statement"
	KindSetClauseList         segment.Kind = "set_clause_list"
	KindSetClause             segment.Kind = "set_clause"
	KindExpression            segment.Kind = "expression"
	KindBracketed             segment.Kind = "bracketed"
	KindFunction              segment.Kind = "function"
	KindFunctionContents      segment.Kind = "function_contents"
	KindWildcard              segment.Kind = "wildcard_expression"
)

// Extra class types layered onto identifier leaves (spec.md §9 "multiple
// class types") so rules can select, e.g., "every naked identifier" without
// caring whether it's a column, table, or alias use.
const (
	ClassNakedIdentifier  segment.ClassType = "naked_identifier"
	ClassQuotedIdentifier segment.ClassType = "quoted_identifier"
)
