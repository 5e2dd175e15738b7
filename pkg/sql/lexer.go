package sql

// Lexer tokenizes SQL source text byte by byte, tracking line and
// column positions for error reporting.
type Lexer struct {
	input string
	pos   int  // current position (points to ch)
	next  int  // reading position (after ch)
	ch    byte // current byte, 0 at EOF

	line int
	col  int
}

// NewLexer creates a lexer over the given source text.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.next >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.next]
	}
	l.pos = l.next
	l.next++
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() byte {
	if l.next >= len(l.input) {
		return 0
	}
	return l.input[l.next]
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// Next returns the next token in the input.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()

	pos := l.position()

	switch l.ch {
	case 0:
		return Token{Type: TOKEN_EOF, Pos: pos}
	case ',':
		l.readChar()
		return Token{Type: TOKEN_COMMA, Literal: ",", Pos: pos}
	case '.':
		l.readChar()
		return Token{Type: TOKEN_DOT, Literal: ".", Pos: pos}
	case '(':
		l.readChar()
		return Token{Type: TOKEN_LPAREN, Literal: "(", Pos: pos}
	case ')':
		l.readChar()
		return Token{Type: TOKEN_RPAREN, Literal: ")", Pos: pos}
	case ';':
		l.readChar()
		return Token{Type: TOKEN_SEMICOLON, Literal: ";", Pos: pos}
	case '*':
		l.readChar()
		return Token{Type: TOKEN_STAR, Literal: "*", Pos: pos}
	case '+':
		l.readChar()
		return Token{Type: TOKEN_PLUS, Literal: "+", Pos: pos}
	case '-':
		l.readChar()
		return Token{Type: TOKEN_MINUS, Literal: "-", Pos: pos}
	case '/':
		l.readChar()
		return Token{Type: TOKEN_SLASH, Literal: "/", Pos: pos}
	case '%':
		l.readChar()
		return Token{Type: TOKEN_PERCENT, Literal: "%", Pos: pos}
	case '=':
		l.readChar()
		return Token{Type: TOKEN_EQ, Literal: "=", Pos: pos}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TOKEN_LTE, Literal: "<=", Pos: pos}
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return Token{Type: TOKEN_NEQ, Literal: "<>", Pos: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_LT, Literal: "<", Pos: pos}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TOKEN_GTE, Literal: ">=", Pos: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_GT, Literal: ">", Pos: pos}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: TOKEN_NEQ, Literal: "!=", Pos: pos}
		}
		lit := string(l.ch)
		l.readChar()
		return Token{Type: TOKEN_ILLEGAL, Literal: lit, Pos: pos}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return Token{Type: TOKEN_CONCAT, Literal: "||", Pos: pos}
		}
		lit := string(l.ch)
		l.readChar()
		return Token{Type: TOKEN_ILLEGAL, Literal: lit, Pos: pos}
	case '\'':
		return l.readString(pos)
	case '"':
		return l.readQuotedIdentifier(pos)
	}

	if isLetter(l.ch) {
		lit := l.readIdentifier()
		return Token{Type: LookupIdent(lit), Literal: lit, Pos: pos}
	}
	if isDigit(l.ch) {
		return l.readNumber(pos)
	}

	lit := string(l.ch)
	l.readChar()
	return Token{Type: TOKEN_ILLEGAL, Literal: lit, Pos: pos}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// readString consumes a single-quoted string literal. A doubled quote
// inside the literal is an escaped quote.
func (l *Lexer) readString(pos Position) Token {
	var out []byte
	l.readChar() // opening quote
	for {
		if l.ch == 0 {
			return Token{Type: TOKEN_ILLEGAL, Literal: string(out), Pos: pos}
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				out = append(out, '\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			break
		}
		out = append(out, l.ch)
		l.readChar()
	}
	return Token{Type: TOKEN_STRING, Literal: string(out), Pos: pos}
}

// readQuotedIdentifier consumes a double-quoted identifier. Quoted
// identifiers are never keywords.
func (l *Lexer) readQuotedIdentifier(pos Position) Token {
	var out []byte
	l.readChar() // opening quote
	for {
		if l.ch == 0 {
			return Token{Type: TOKEN_ILLEGAL, Literal: string(out), Pos: pos}
		}
		if l.ch == '"' {
			if l.peekChar() == '"' {
				out = append(out, '"')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		out = append(out, l.ch)
		l.readChar()
	}
	return Token{Type: TOKEN_IDENT, Literal: string(out), Pos: pos}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber(pos Position) Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) || ((l.peekChar() == '+' || l.peekChar() == '-') && l.next+1 < len(l.input) && isDigit(l.input[l.next+1])) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return Token{Type: TOKEN_NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
