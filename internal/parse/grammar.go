package parse

import (
	"github.com/sqllint/sqllint/internal/dialect"
	"github.com/sqllint/sqllint/pkg/segment"
)

// parseStatement is the file's single top-level production: a compound
// WITH statement, an UPDATE statement, or a bare query expression.
func (b *builder) parseStatement() segment.Segment {
	var stmt segment.Segment
	switch {
	case b.peekIsKeyword("WITH"):
		stmt = b.parseWithCompound()
	case b.peekIsKeyword("UPDATE"):
		stmt = b.parseUpdateStatement()
	default:
		stmt = b.parseQueryExpression()
	}
	return b.wrap(KindStatement, []segment.Segment{stmt})
}

func (b *builder) parseWithCompound() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "WITH")
	children = append(children, b.parseCommonTableExpression())
	for b.trySymbol(&children, ",") {
		children = append(children, b.parseCommonTableExpression())
	}
	children = append(children, b.parseQueryExpression())
	return b.wrap(KindWithCompoundStatement, children)
}

func (b *builder) parseCommonTableExpression() segment.Segment {
	var children []segment.Segment
	b.takeIdentifier(&children)
	b.takeKeyword(&children, "AS")
	b.takeSymbol(&children, "(")
	b.meta(&children, segment.KindIndent)
	children = append(children, b.parseQueryExpression())
	b.meta(&children, segment.KindDedent)
	b.takeSymbol(&children, ")")
	return b.wrap(KindCommonTableExpression, children)
}

func (b *builder) parseQueryExpression() segment.Segment {
	var children []segment.Segment
	children = append(children, b.parseSelectStatement())
	for b.peekIsKeyword("UNION") || b.peekIsKeyword("INTERSECT") || b.peekIsKeyword("EXCEPT") {
		var op []segment.Segment
		if b.tryKeyword(&op, "UNION") {
			b.tryKeyword(&op, "ALL")
		} else if !b.tryKeyword(&op, "INTERSECT") {
			b.takeKeyword(&op, "EXCEPT")
		}
		children = append(children, b.wrap(KindSetOperator, op))
		children = append(children, b.parseSelectStatement())
	}
	return b.wrap(KindQueryExpression, children)
}

func (b *builder) parseSelectStatement() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "SELECT")
	b.tryKeyword(&children, "DISTINCT")
	children = append(children, b.parseSelectClause())
	if b.peekIsKeyword("FROM") {
		children = append(children, b.parseFromClause())
	}
	if b.peekIsKeyword("WHERE") {
		children = append(children, b.parseWhereClause())
	}
	if b.peekIsKeyword("GROUP") {
		children = append(children, b.parseGroupByClause())
	}
	if b.peekIsKeyword("HAVING") {
		children = append(children, b.parseHavingClause())
	}
	if b.peekIsKeyword("ORDER") {
		children = append(children, b.parseOrderByClause())
	}
	return b.wrap(KindSelectStatement, children)
}

func (b *builder) parseSelectClause() segment.Segment {
	var children []segment.Segment
	b.meta(&children, segment.KindIndent)
	children = append(children, b.parseSelectTarget())
	for b.trySymbol(&children, ",") {
		children = append(children, b.parseSelectTarget())
	}
	b.meta(&children, segment.KindDedent)
	return b.wrap(KindSelectClause, children)
}

func (b *builder) parseSelectTarget() segment.Segment {
	var children []segment.Segment
	children = append(children, b.parseSelectTargetBody())
	if b.aliasFollows() {
		children = append(children, b.parseAlias())
	}
	return b.wrap(KindSelectTarget, children)
}

func (b *builder) parseSelectTargetBody() segment.Segment {
	if b.peekIsSymbol("*") {
		var children []segment.Segment
		b.takeSymbol(&children, "*")
		return b.wrap(KindWildcard, children)
	}
	if b.isQualifiedStar() {
		var children []segment.Segment
		b.takeIdentifier(&children)
		b.takeSymbol(&children, ".")
		b.takeSymbol(&children, "*")
		return b.wrap(KindWildcard, children)
	}
	return b.parseExpr()
}

// isQualifiedStar looks ahead for "ident . *" without consuming anything:
// the lookahead wastes a few leaf ids on the discarded probe, which is
// harmless since ids only need to be unique, not contiguous.
func (b *builder) isQualifiedStar() bool {
	save, saveCur := b.pos, b.cur
	defer func() { b.pos, b.cur = save, saveCur }()
	it := b.peek()
	if it.Type != dialect.ItemIdentifier && it.Type != dialect.ItemQuotedIdentifier {
		return false
	}
	var probe []segment.Segment
	b.takeIdentifier(&probe)
	if !b.peekIsSymbol(".") {
		return false
	}
	b.trySymbol(&probe, ".")
	return b.peekIsSymbol("*")
}

// aliasFollows reports whether an (optional) AS or a bare-identifier alias
// follows at the current position, without consuming it.
func (b *builder) aliasFollows() bool {
	if b.peekIsKeyword("AS") {
		return true
	}
	it := b.peek()
	return it.Type == dialect.ItemIdentifier || it.Type == dialect.ItemQuotedIdentifier
}

func (b *builder) parseAlias() segment.Segment {
	var children []segment.Segment
	b.tryKeyword(&children, "AS")
	b.takeIdentifier(&children)
	return b.wrap(KindAliasExpression, children)
}

func (b *builder) parseFromClause() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "FROM")
	b.meta(&children, segment.KindIndent)
	children = append(children, b.parseFromExpression())
	for b.trySymbol(&children, ",") {
		children = append(children, b.parseFromExpression())
	}
	for b.joinFollows() {
		children = append(children, b.parseJoinClause())
	}
	b.meta(&children, segment.KindDedent)
	return b.wrap(KindFromClause, children)
}

func (b *builder) joinFollows() bool {
	switch {
	case b.peekIsKeyword("JOIN"), b.peekIsKeyword("INNER"), b.peekIsKeyword("LEFT"),
		b.peekIsKeyword("RIGHT"), b.peekIsKeyword("FULL"):
		return true
	}
	return false
}

func (b *builder) parseFromExpression() segment.Segment {
	var children []segment.Segment
	children = append(children, b.parseObjectReference())
	if b.aliasFollows() {
		children = append(children, b.parseAlias())
	}
	return b.wrap(KindFromExpression, children)
}

func (b *builder) parseObjectReference() segment.Segment {
	var children []segment.Segment
	b.takeIdentifier(&children)
	for b.trySymbol(&children, ".") {
		b.takeIdentifier(&children)
	}
	return b.wrap(KindObjectReference, children)
}

func (b *builder) parseColumnReference() segment.Segment {
	var children []segment.Segment
	b.takeIdentifier(&children)
	for b.trySymbol(&children, ".") {
		b.takeIdentifier(&children)
	}
	return b.wrap(KindColumnReference, children)
}

func (b *builder) parseJoinClause() segment.Segment {
	var children []segment.Segment
	switch {
	case b.tryKeyword(&children, "INNER"):
	case b.tryKeyword(&children, "LEFT"):
		b.tryKeyword(&children, "OUTER")
	case b.tryKeyword(&children, "RIGHT"):
		b.tryKeyword(&children, "OUTER")
	case b.tryKeyword(&children, "FULL"):
		b.tryKeyword(&children, "OUTER")
	}
	b.takeKeyword(&children, "JOIN")
	children = append(children, b.parseFromExpression())
	b.takeKeyword(&children, "ON")
	children = append(children, b.parseExpr())
	return b.wrap(KindJoinClause, children)
}

func (b *builder) parseWhereClause() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "WHERE")
	b.meta(&children, segment.KindIndent)
	children = append(children, b.parseExpr())
	b.meta(&children, segment.KindDedent)
	return b.wrap(KindWhereClause, children)
}

func (b *builder) parseGroupByClause() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "GROUP")
	b.takeKeyword(&children, "BY")
	b.meta(&children, segment.KindIndent)
	children = append(children, b.parseExpr())
	for b.trySymbol(&children, ",") {
		children = append(children, b.parseExpr())
	}
	b.meta(&children, segment.KindDedent)
	return b.wrap(KindGroupByClause, children)
}

func (b *builder) parseHavingClause() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "HAVING")
	children = append(children, b.parseExpr())
	return b.wrap(KindHavingClause, children)
}

func (b *builder) parseOrderByClause() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "ORDER")
	b.takeKeyword(&children, "BY")
	b.meta(&children, segment.KindIndent)
	children = append(children, b.parseOrderByTerm())
	for b.trySymbol(&children, ",") {
		children = append(children, b.parseOrderByTerm())
	}
	b.meta(&children, segment.KindDedent)
	return b.wrap(KindOrderByClause, children)
}

func (b *builder) parseOrderByTerm() segment.Segment {
	var children []segment.Segment
	children = append(children, b.parseExpr())
	if !b.tryKeyword(&children, "ASC") {
		b.tryKeyword(&children, "DESC")
	}
	return b.wrap(KindOrderByTerm, children)
}

func (b *builder) parseUpdateStatement() segment.Segment {
	var children []segment.Segment
	b.takeKeyword(&children, "UPDATE")
	children = append(children, b.parseObjectReference())
	b.takeKeyword(&children, "SET")
	children = append(children, b.parseSetClauseList())
	if b.peekIsKeyword("WHERE") {
		children = append(children, b.parseWhereClause())
	}
	return b.wrap(KindUpdateStatement, children)
}

func (b *builder) parseSetClauseList() segment.Segment {
	var children []segment.Segment
	children = append(children, b.parseSetClause())
	for b.trySymbol(&children, ",") {
		children = append(children, b.parseSetClause())
	}
	return b.wrap(KindSetClauseList, children)
}

func (b *builder) parseSetClause() segment.Segment {
	var children []segment.Segment
	children = append(children, b.parseColumnReference())
	b.takeSymbol(&children, "=")
	children = append(children, b.parseExpr())
	return b.wrap(KindSetClause, children)
}

// --- expression precedence chain: OR > AND > equality (incl. IS [NOT]
// NULL) > additive > multiplicative > unary > primary ---

func (b *builder) parseExpr() segment.Segment { return b.parseOr() }

func (b *builder) parseOr() segment.Segment {
	left := b.parseAnd()
	if !b.peekIsKeyword("OR") {
		return left
	}
	children := []segment.Segment{left}
	for b.tryKeyword(&children, "OR") {
		children = append(children, b.parseAnd())
	}
	return b.wrap(KindExpression, children)
}

func (b *builder) parseAnd() segment.Segment {
	left := b.parseEquality()
	if !b.peekIsKeyword("AND") {
		return left
	}
	children := []segment.Segment{left}
	for b.tryKeyword(&children, "AND") {
		children = append(children, b.parseEquality())
	}
	return b.wrap(KindExpression, children)
}

var comparisonOps = []string{"=", "!=", "<>", "<=", ">=", "<", ">"}

func (b *builder) parseEquality() segment.Segment {
	left := b.parseAdditive()
	if b.peekIsKeyword("IS") {
		children := []segment.Segment{left}
		b.takeKeyword(&children, "IS")
		b.tryKeyword(&children, "NOT")
		b.takeKeyword(&children, "NULL")
		return b.wrap(KindExpression, children)
	}
	if b.peekIsKeyword("LIKE") {
		children := []segment.Segment{left}
		b.takeKeyword(&children, "LIKE")
		children = append(children, b.parseAdditive())
		return b.wrap(KindExpression, children)
	}
	for _, op := range comparisonOps {
		if b.peekIsSymbol(op) {
			children := []segment.Segment{left}
			b.takeSymbol(&children, op)
			children = append(children, b.parseAdditive())
			return b.wrap(KindExpression, children)
		}
	}
	return left
}

func (b *builder) parseAdditive() segment.Segment {
	left := b.parseMultiplicative()
	children := []segment.Segment{left}
	changed := false
	for b.peekIsSymbol("+") || b.peekIsSymbol("-") {
		changed = true
		if b.peekIsSymbol("+") {
			b.takeSymbol(&children, "+")
		} else {
			b.takeSymbol(&children, "-")
		}
		children = append(children, b.parseMultiplicative())
	}
	if !changed {
		return left
	}
	return b.wrap(KindExpression, children)
}

func (b *builder) parseMultiplicative() segment.Segment {
	left := b.parseUnary()
	children := []segment.Segment{left}
	changed := false
	for b.peekIsSymbol("*") || b.peekIsSymbol("/") {
		changed = true
		if b.peekIsSymbol("*") {
			b.takeSymbol(&children, "*")
		} else {
			b.takeSymbol(&children, "/")
		}
		children = append(children, b.parseUnary())
	}
	if !changed {
		return left
	}
	return b.wrap(KindExpression, children)
}

func (b *builder) parseUnary() segment.Segment {
	if b.peekIsSymbol("-") {
		var children []segment.Segment
		b.takeSymbol(&children, "-")
		children = append(children, b.parsePrimary())
		return b.wrap(KindExpression, children)
	}
	return b.parsePrimary()
}

func (b *builder) parsePrimary() segment.Segment {
	it := b.peek()
	switch {
	case it.Type == dialect.ItemNumber || it.Type == dialect.ItemString:
		var children []segment.Segment
		b.take(&children)
		return b.wrap(KindExpression, children)
	case b.peekIsSymbol("*"):
		var children []segment.Segment
		b.takeSymbol(&children, "*")
		return b.wrap(KindWildcard, children)
	case b.peekIsSymbol("("):
		var children []segment.Segment
		b.takeSymbol(&children, "(")
		children = append(children, b.parseExpr())
		b.takeSymbol(&children, ")")
		return b.wrap(KindBracketed, children)
	case it.Type == dialect.ItemIdentifier || it.Type == dialect.ItemQuotedIdentifier:
		return b.parseIdentifierLed()
	}
	fail("expected an expression")
	return nil
}

// parseIdentifierLed disambiguates a function call from a bare column
// reference: both start with an identifier, but a function call's next
// significant token is "(".
func (b *builder) parseIdentifierLed() segment.Segment {
	save, saveCur := b.pos, b.cur
	var probe []segment.Segment
	b.takeIdentifier(&probe)
	if b.peekIsSymbol("(") {
		return b.parseFunctionCallFrom(probe)
	}
	b.pos, b.cur = save, saveCur
	return b.parseColumnReference()
}

func (b *builder) parseFunctionCallFrom(nameChildren []segment.Segment) segment.Segment {
	children := nameChildren
	b.takeSymbol(&children, "(")
	var argChildren []segment.Segment
	if !b.peekIsSymbol(")") {
		argChildren = append(argChildren, b.parseExpr())
		for b.trySymbol(&argChildren, ",") {
			argChildren = append(argChildren, b.parseExpr())
		}
	}
	children = append(children, b.wrap(KindFunctionContents, argChildren))
	b.takeSymbol(&children, ")")
	return b.wrap(KindFunction, children)
}
