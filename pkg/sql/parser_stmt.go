package sql

// Statement grammar:
//
//	select     = "SELECT" [ "DISTINCT" ] selectList
//	             [ "FROM" fromClause ]
//	             [ "WHERE" expr ]
//	             [ "GROUP" "BY" expr { "," expr } [ "HAVING" expr ] ]
//	             [ "ORDER" "BY" orderItem { "," orderItem } ]
//	             [ "LIMIT" expr [ "OFFSET" expr ] ]
//	selectList = selectItem { "," selectItem }
//	selectItem = "*" | ident "." "*" | expr [ [ "AS" ] ident ]
//	orderItem  = expr [ "ASC" | "DESC" ]
//
// CTEs, set operations, subqueries and window functions are outside
// the supported shape and fail with a ParseError.

func (p *Parser) parseSelectStmt() *SelectStmt {
	if p.check(TOKEN_WITH) {
		p.errorf("common table expressions are not supported")
		return nil
	}
	if !p.check(TOKEN_SELECT) {
		p.errorf("expected SELECT, found %q", p.tokenText())
		return nil
	}
	p.advance()

	stmt := &SelectStmt{}
	if p.match(TOKEN_DISTINCT) {
		stmt.Distinct = true
	} else {
		p.match(TOKEN_ALL)
	}

	stmt.Columns = p.parseSelectList()
	if len(p.errors) > 0 {
		return nil
	}

	if p.match(TOKEN_FROM) {
		stmt.From = p.parseFromClause()
		if len(p.errors) > 0 {
			return nil
		}
	}

	if p.match(TOKEN_WHERE) {
		stmt.Where = p.parseExpression()
	}

	if p.check(TOKEN_GROUP) {
		p.advance()
		p.expect(TOKEN_BY, "BY")
		stmt.GroupBy = append(stmt.GroupBy, p.parseExpression())
		for p.match(TOKEN_COMMA) {
			stmt.GroupBy = append(stmt.GroupBy, p.parseExpression())
		}
		if p.match(TOKEN_HAVING) {
			stmt.Having = p.parseExpression()
		}
	}

	if p.check(TOKEN_ORDER) {
		p.advance()
		p.expect(TOKEN_BY, "BY")
		stmt.OrderBy = append(stmt.OrderBy, p.parseOrderByItem())
		for p.match(TOKEN_COMMA) {
			stmt.OrderBy = append(stmt.OrderBy, p.parseOrderByItem())
		}
	}

	if p.match(TOKEN_LIMIT) {
		stmt.Limit = p.parseExpression()
		if p.match(TOKEN_OFFSET) {
			stmt.Offset = p.parseExpression()
		}
	}

	switch p.token.Type {
	case TOKEN_UNION, TOKEN_INTERSECT, TOKEN_EXCEPT:
		p.errorf("set operations are not supported")
		return nil
	}

	if len(p.errors) > 0 {
		return nil
	}
	return stmt
}

func (p *Parser) parseSelectList() []SelectItem {
	items := []SelectItem{p.parseSelectItem()}
	for p.match(TOKEN_COMMA) {
		items = append(items, p.parseSelectItem())
	}
	return items
}

func (p *Parser) parseSelectItem() SelectItem {
	pos := p.token.Pos

	if p.check(TOKEN_STAR) {
		p.advance()
		return SelectItem{Star: true, Pos: pos}
	}

	// t.* needs three tokens of lookahead: IDENT DOT STAR.
	if p.check(TOKEN_IDENT) && p.checkPeek(TOKEN_DOT) && p.peek2.Type == TOKEN_STAR {
		table := p.token.Literal
		p.advance() // ident
		p.advance() // dot
		p.advance() // star
		return SelectItem{TableStar: table, Pos: pos}
	}

	item := SelectItem{Expr: p.parseExpression(), Pos: pos}

	if p.match(TOKEN_AS) {
		item.Alias = p.expect(TOKEN_IDENT, "alias name").Literal
	} else if p.check(TOKEN_IDENT) {
		item.Alias = p.token.Literal
		p.advance()
	}
	return item
}

func (p *Parser) parseOrderByItem() OrderByItem {
	item := OrderByItem{Expr: p.parseExpression()}
	if p.match(TOKEN_DESC) {
		item.Desc = true
	} else {
		p.match(TOKEN_ASC)
	}
	return item
}
