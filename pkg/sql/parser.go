package sql

import "fmt"

// Parser is a recursive-descent parser for the supported SELECT
// shape. It keeps three tokens of lookahead, enough to distinguish
// qualified column references and t.* items.
type Parser struct {
	lexer *Lexer

	token Token // current token
	peek  Token // next token
	peek2 Token // token after next

	errors []*ParseError
}

// NewParser creates a parser over the given SQL text.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Prime the lookahead window.
	p.advance()
	p.advance()
	p.advance()
	return p
}

// Parse parses a single SELECT statement. It returns the first error
// encountered; the statement must consume the whole input up to an
// optional trailing semicolon.
func Parse(input string) (*SelectStmt, error) {
	p := NewParser(input)
	stmt := p.parseSelectStmt()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if p.token.Type == TOKEN_SEMICOLON {
		p.advance()
	}
	if p.token.Type != TOKEN_EOF {
		return nil, &ParseError{Pos: p.token.Pos, Message: fmt.Sprintf("unexpected %q after statement", p.token.Literal)}
	}
	return stmt, nil
}

func (p *Parser) advance() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.Next()
}

func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it has the given type.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or records an error.
func (p *Parser) expect(t TokenType, what string) Token {
	if !p.check(t) {
		p.errorf("expected %s, found %q", what, p.tokenText())
		tok := p.token
		p.advance()
		return tok
	}
	tok := p.token
	p.advance()
	return tok
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: p.token.Pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) errorAt(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) tokenText() string {
	if p.token.Type == TOKEN_EOF {
		return "end of input"
	}
	return p.token.Literal
}
