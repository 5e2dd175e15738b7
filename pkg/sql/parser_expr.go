package sql

import "strings"

// Operator precedence, lowest first.
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precIs // IS, IN, BETWEEN, LIKE
	precCompare
	precConcat
	precAddSub
	precMulDiv
)

func (p *Parser) parseExpression() Expr {
	return p.parseExpressionWithPrecedence(precLowest)
}

func (p *Parser) parseExpressionWithPrecedence(minPrec int) Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence()
		if prec <= minPrec {
			return left
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			return nil
		}
	}
}

func (p *Parser) parsePrefixExpr() Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		pos := p.token.Pos
		p.advance()
		expr := p.parseExpressionWithPrecedence(precNot)
		if expr == nil {
			return nil
		}
		return &UnaryExpr{Op: "not", Expr: expr, Pos: pos}
	case TOKEN_MINUS:
		pos := p.token.Pos
		p.advance()
		expr := p.parseExpressionWithPrecedence(precMulDiv)
		if expr == nil {
			return nil
		}
		return &UnaryExpr{Op: "-", Expr: expr, Pos: pos}
	}
	return p.parsePrimary()
}

func (p *Parser) infixPrecedence() int {
	switch p.token.Type {
	case TOKEN_OR:
		return precOr
	case TOKEN_AND:
		return precAnd
	case TOKEN_IS, TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE:
		return precIs
	case TOKEN_NOT:
		// NOT IN, NOT BETWEEN, NOT LIKE.
		switch p.peek.Type {
		case TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE:
			return precIs
		}
		return precLowest
	case TOKEN_EQ, TOKEN_NEQ, TOKEN_LT, TOKEN_LTE, TOKEN_GT, TOKEN_GTE:
		return precCompare
	case TOKEN_CONCAT:
		return precConcat
	case TOKEN_PLUS, TOKEN_MINUS:
		return precAddSub
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT:
		return precMulDiv
	}
	return precLowest
}

func (p *Parser) parseInfixExpr(left Expr, prec int) Expr {
	pos := p.token.Pos

	negated := false
	if p.check(TOKEN_NOT) {
		negated = true
		p.advance()
	}

	switch p.token.Type {
	case TOKEN_IS:
		return p.parseIsExpr(left, pos)
	case TOKEN_IN:
		return p.parseInExpr(left, negated, pos)
	case TOKEN_BETWEEN:
		return p.parseBetweenExpr(left, negated, pos)
	case TOKEN_LIKE:
		p.advance()
		right := p.parseExpressionWithPrecedence(precIs)
		if right == nil {
			return nil
		}
		expr := Expr(&BinaryExpr{Left: left, Op: "like", Right: right, Pos: pos})
		if negated {
			expr = &UnaryExpr{Op: "not", Expr: expr, Pos: pos}
		}
		return expr
	}

	op := strings.ToLower(p.token.Literal)
	p.advance()
	right := p.parseExpressionWithPrecedence(prec)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Op: op, Right: right, Pos: pos}
}

func (p *Parser) parseIsExpr(left Expr, pos Position) Expr {
	p.advance() // IS
	not := p.match(TOKEN_NOT)
	if !p.match(TOKEN_NULL) {
		p.errorf("expected NULL after IS, found %q", p.tokenText())
		return nil
	}
	return &IsNullExpr{Expr: left, Not: not, Pos: pos}
}

func (p *Parser) parseInExpr(left Expr, negated bool, pos Position) Expr {
	p.advance() // IN
	if !p.match(TOKEN_LPAREN) {
		p.errorf("expected ( after IN, found %q", p.tokenText())
		return nil
	}
	if p.check(TOKEN_SELECT) {
		p.errorf("subqueries are not supported")
		return nil
	}

	in := &InExpr{Expr: left, Not: negated, Pos: pos}
	in.Values = append(in.Values, p.parseExpression())
	for p.match(TOKEN_COMMA) {
		in.Values = append(in.Values, p.parseExpression())
	}
	if !p.match(TOKEN_RPAREN) {
		p.errorf("expected ) to close IN list, found %q", p.tokenText())
		return nil
	}
	return in
}

func (p *Parser) parseBetweenExpr(left Expr, negated bool, pos Position) Expr {
	p.advance() // BETWEEN
	low := p.parseExpressionWithPrecedence(precIs)
	if !p.match(TOKEN_AND) {
		p.errorf("expected AND in BETWEEN, found %q", p.tokenText())
		return nil
	}
	high := p.parseExpressionWithPrecedence(precIs)
	return &BetweenExpr{Expr: left, Not: negated, Low: low, High: high, Pos: pos}
}

func (p *Parser) parsePrimary() Expr {
	pos := p.token.Pos

	switch p.token.Type {
	case TOKEN_NUMBER:
		lit := &Literal{Kind: LiteralNumber, Value: p.token.Literal, Pos: pos}
		p.advance()
		return lit
	case TOKEN_STRING:
		lit := &Literal{Kind: LiteralString, Value: p.token.Literal, Pos: pos}
		p.advance()
		return lit
	case TOKEN_TRUE, TOKEN_FALSE:
		lit := &Literal{Kind: LiteralBool, Value: strings.ToLower(p.token.Literal), Pos: pos}
		p.advance()
		return lit
	case TOKEN_NULL:
		lit := &Literal{Kind: LiteralNull, Value: "null", Pos: pos}
		p.advance()
		return lit
	case TOKEN_IDENT:
		return p.parseIdentifierExpr()
	case TOKEN_LPAREN:
		p.advance()
		if p.check(TOKEN_SELECT) {
			p.errorf("subqueries are not supported")
			return nil
		}
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.match(TOKEN_RPAREN) {
			p.errorf("expected ), found %q", p.tokenText())
			return nil
		}
		return expr
	case TOKEN_CASE:
		p.errorf("CASE expressions are not supported")
		return nil
	case TOKEN_EXISTS:
		p.errorf("subqueries are not supported")
		return nil
	}

	p.errorf("unexpected %q in expression", p.tokenText())
	return nil
}

// parseIdentifierExpr dispatches an identifier to a function call,
// a qualified column reference or a bare column reference.
func (p *Parser) parseIdentifierExpr() Expr {
	pos := p.token.Pos
	name := p.token.Literal

	if p.checkPeek(TOKEN_LPAREN) {
		return p.parseFuncCall()
	}

	if p.checkPeek(TOKEN_DOT) {
		p.advance() // ident
		p.advance() // dot
		if !p.check(TOKEN_IDENT) {
			p.errorf("expected column name after %q., found %q", name, p.tokenText())
			return nil
		}
		ref := &ColumnRef{Table: name, Column: p.token.Literal, Pos: pos}
		p.advance()
		return ref
	}

	p.advance()
	return &ColumnRef{Column: name, Pos: pos}
}

func (p *Parser) parseFuncCall() Expr {
	pos := p.token.Pos
	call := &FuncCall{Name: strings.ToLower(p.token.Literal), Pos: pos}
	p.advance() // name
	p.advance() // lparen

	if p.check(TOKEN_STAR) {
		call.Star = true
		p.advance()
	} else if !p.check(TOKEN_RPAREN) {
		if p.match(TOKEN_DISTINCT) {
			call.Distinct = true
		}
		call.Args = append(call.Args, p.parseExpression())
		for p.match(TOKEN_COMMA) {
			call.Args = append(call.Args, p.parseExpression())
		}
	}

	if !p.match(TOKEN_RPAREN) {
		p.errorf("expected ) to close %s(), found %q", call.Name, p.tokenText())
		return nil
	}

	if p.check(TOKEN_OVER) {
		p.errorf("window functions are not supported")
		return nil
	}
	return call
}
