package lexer

import (
	"newt/internal/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
	line         int  // 1-based line of the current rune
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	startLine := l.line

	switch l.ch {
	case '=':
		tok = l.handleCompoundToken(token.ASSIGN, '=', token.EQ)
	case '+':
		tok = newToken(token.PLUS, l.ch, startLine)
	case '-':
		tok = newToken(token.MINUS, l.ch, startLine)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, startLine)
	case '/':
		tok = newToken(token.SLASH, l.ch, startLine)
	case '%':
		tok = newToken(token.PERCENT, l.ch, startLine)
	case '!':
		// bare ! is not an operator, only != is
		tok = l.handleCompoundToken(token.ILLEGAL, '=', token.NOT_EQ)
	case '<':
		tok = l.handleCompoundToken(token.LT, '=', token.LT_EQ)
	case '>':
		tok = l.handleCompoundToken(token.GT, '=', token.GT_EQ)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, startLine)
	case ':':
		tok = newToken(token.COLON, l.ch, startLine)
	case ',':
		tok = newToken(token.COMMA, l.ch, startLine)
	case '.':
		tok = newToken(token.PERIOD, l.ch, startLine)
	case '(':
		tok = newToken(token.LPAREN, l.ch, startLine)
	case ')':
		tok = newToken(token.RPAREN, l.ch, startLine)
	case '{':
		tok = newToken(token.LBRACE, l.ch, startLine)
	case '}':
		tok = newToken(token.RBRACE, l.ch, startLine)
	case '"':
		literal, ok := l.readString()
		if !ok {
			return token.Token{Type: token.ILLEGAL, Literal: literal, Line: startLine}
		}
		return token.Token{Type: token.STRING, Literal: literal, Line: startLine}
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
		tok.Line = startLine
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Line = startLine
			return tok
		} else if isDigit(l.ch) {
			tok.Literal = l.readNumber()
			tok.Type = token.NUMBER
			tok.Line = startLine
			return tok
		}
		tok = newToken(token.ILLEGAL, l.ch, startLine)
	}

	l.readChar()
	return tok
}

func (l *Lexer) handleCompoundToken(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
) token.Token {
	startLine := l.line
	if l.peekChar() == ch1 {
		first := l.ch
		l.readChar()
		literal := string(first) + string(l.ch)
		return token.Token{Type: t1, Literal: literal, Line: startLine}
	}
	return newToken(t, l.ch, startLine)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '/':
			if l.peekChar() == '/' {
				l.skipToLineEnd()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions and the line count
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString decodes a double-quoted literal, assuming l.ch is the opening
// quote. Returns ok=false when the string runs to EOF or across a newline
// without a closing quote.
func (l *Lexer) readString() (string, bool) {
	var result strings.Builder

	l.readChar() // consume the opening "

	for {
		if l.ch == 0 || l.ch == '\n' {
			return result.String(), false
		}

		if l.ch == '"' {
			l.readChar() // consume the closing "
			break
		}

		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case 'r':
				result.WriteRune('\r')
			case '\\':
				result.WriteRune('\\')
			case '"':
				result.WriteRune('"')
			default:
				result.WriteRune('\\')
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}

		l.readChar()
	}

	return result.String(), true
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func newToken(tokenType token.TokenType, ch rune, line int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Line: line}
}
