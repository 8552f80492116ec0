package parse

import (
	"github.com/sqllint/sqllint/internal/dialect"
	"github.com/sqllint/sqllint/pkg/segment"
)

// Parser bundles a Dialect with the two parses it offers: the full-fidelity
// segment tree (via Tree) that the rule engine and reflow core operate on,
// and the trivia-free participle AST (via AST). No package in this
// repository calls AST; pkg/analysis and the rules work on the segment tree.
type Parser struct {
	Dialect *dialect.Dialect
}

// New builds a Parser for the named dialect.
func New(dialectName string) (*Parser, error) {
	d, err := dialect.New(dialectName)
	if err != nil {
		return nil, err
	}
	return &Parser{Dialect: d}, nil
}

// Tree parses source into a segment tree rooted at a "file" node, using arena
// for id assignment. ok is false if the grammar could not make sense of
// source and a single "unparsable" node was substituted instead.
func (p *Parser) Tree(arena *segment.Arena, source string) (segment.Segment, bool) {
	return Parse(arena, p.Dialect, source)
}

// AST parses source with the participle grammar into the trivia-free
// *dialect.Statement shape.
func (p *Parser) AST(source string) (*dialect.Statement, error) {
	return p.Dialect.Grammar.Parse(source)
}
