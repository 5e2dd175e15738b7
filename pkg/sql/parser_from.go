package sql

// From clause grammar:
//
//	fromClause = tableName { join }
//	tableName  = ident [ [ "AS" ] ident ]
//	join       = [ "INNER" | "LEFT" [ "OUTER" ] | "RIGHT" [ "OUTER" ] | "FULL" [ "OUTER" ] ]
//	             "JOIN" tableName "ON" columnRef "=" columnRef

func (p *Parser) parseFromClause() *FromClause {
	from := &FromClause{Source: p.parseTableName()}
	if from.Source == nil {
		return nil
	}

	for {
		if p.check(TOKEN_COMMA) {
			p.errorf("implicit cross joins are not supported, use an explicit JOIN ... ON")
			return nil
		}
		if !p.isJoinStart() {
			break
		}
		join := p.parseJoin()
		if join == nil {
			return nil
		}
		from.Joins = append(from.Joins, join)
	}
	return from
}

func (p *Parser) isJoinStart() bool {
	switch p.token.Type {
	case TOKEN_JOIN, TOKEN_INNER, TOKEN_LEFT, TOKEN_RIGHT, TOKEN_FULL, TOKEN_CROSS:
		return true
	}
	return false
}

func (p *Parser) parseJoin() *Join {
	pos := p.token.Pos
	join := &Join{Type: JoinInner, Pos: pos}

	switch p.token.Type {
	case TOKEN_INNER:
		p.advance()
	case TOKEN_LEFT:
		join.Type = JoinLeft
		p.advance()
		p.match(TOKEN_OUTER)
	case TOKEN_RIGHT:
		join.Type = JoinRight
		p.advance()
		p.match(TOKEN_OUTER)
	case TOKEN_FULL:
		join.Type = JoinFull
		p.advance()
		p.match(TOKEN_OUTER)
	case TOKEN_CROSS:
		p.errorf("CROSS JOIN is not supported, every join needs an ON condition")
		return nil
	}

	if !p.match(TOKEN_JOIN) {
		p.errorf("expected JOIN, found %q", p.tokenText())
		return nil
	}

	join.Right = p.parseTableName()
	if join.Right == nil {
		return nil
	}

	if !p.match(TOKEN_ON) {
		p.errorf("expected ON after joined table, found %q", p.tokenText())
		return nil
	}

	condPos := p.token.Pos
	cond := p.parseExpression()
	if len(p.errors) > 0 {
		return nil
	}
	bin, ok := cond.(*BinaryExpr)
	if !ok || bin.Op != "=" {
		p.errorAt(condPos, "join condition must be a single column equality")
		return nil
	}
	if _, ok := bin.Left.(*ColumnRef); !ok {
		p.errorAt(condPos, "join condition must compare two columns")
		return nil
	}
	if _, ok := bin.Right.(*ColumnRef); !ok {
		p.errorAt(condPos, "join condition must compare two columns")
		return nil
	}
	join.Condition = bin
	return join
}

func (p *Parser) parseTableName() *TableName {
	if p.check(TOKEN_LPAREN) {
		p.errorf("subqueries in FROM are not supported")
		return nil
	}
	if !p.check(TOKEN_IDENT) {
		p.errorf("expected table name, found %q", p.tokenText())
		return nil
	}

	t := &TableName{Name: p.token.Literal, Pos: p.token.Pos}
	p.advance()

	// Schema qualifiers are flattened away, the catalog is flat.
	if p.check(TOKEN_DOT) && p.checkPeek(TOKEN_IDENT) {
		p.advance()
		t.Name = p.token.Literal
		p.advance()
	}

	if p.match(TOKEN_AS) {
		t.Alias = p.expect(TOKEN_IDENT, "table alias").Literal
		return t
	}
	// Clause and join keywords lex as their own token types, so any
	// bare identifier here is an alias.
	if p.check(TOKEN_IDENT) {
		t.Alias = p.token.Literal
		p.advance()
	}
	return t
}
