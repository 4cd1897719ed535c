// Package lexer performs lexical analysis of tesc source code.
//
// It scans the source byte by byte with one-byte lookahead, classifying
// runs of characters into Token values and stamping each with its
// row/column/source-line so later diagnostics can point back at it.
package lexer

import (
	"fmt"
	"strings"

	"github.com/tesc-lang/tesc/internal/token"
)

// Lexer holds the scanning state for one source file.
type Lexer struct {
	File      string
	Src       string
	Current   byte
	Position  int
	SrcLength int
	Row       int
	Col       int
	lines     []string
}

// New creates a Lexer positioned at the start of src.
func New(file, src string) *Lexer {
	current := byte(0)
	if len(src) > 0 {
		current = src[0]
	}
	return &Lexer{
		File:      file,
		Src:       src,
		Current:   current,
		Position:  0,
		SrcLength: len(src),
		Row:       1,
		Col:       1,
		lines:     strings.Split(src, "\n"),
	}
}

// LexError reports an unscannable byte or an unterminated literal.
type LexError struct {
	File    string
	Row     int
	Col     int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Row, e.Col, e.Message)
}

func (l *Lexer) sourceLine(row int) string {
	if row-1 >= 0 && row-1 < len(l.lines) {
		return l.lines[row-1]
	}
	return ""
}

func (l *Lexer) advance() {
	if l.Current == '\n' {
		l.Row++
		l.Col = 1
	} else {
		l.Col++
	}
	l.Position++
	if l.Position >= l.SrcLength {
		l.Current = 0
	} else {
		l.Current = l.Src[l.Position]
	}
}

func (l *Lexer) peek() byte {
	if l.Position+1 >= l.SrcLength {
		return 0
	}
	return l.Src[l.Position+1]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// Tokenize scans the whole source and returns the token stream, including
// a trailing EOF token. It returns on the first LexError encountered,
// per spec.md §4.1 ("Unknown bytes abort lexing").
func Tokenize(file, src string) ([]token.Token, error) {
	l := New(file, src)
	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.Current {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peek() == '/' {
				for l.Current != '\n' && l.Current != 0 {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	row, col, line := l.Row, l.Col, l.sourceLine(l.Row)

	if l.Current == 0 {
		return token.New(token.EOF, "", l.File, row, col, line), nil
	}

	c := l.Current

	switch {
	case c == '"':
		return l.scanDelimited('"', token.String, row, col, line)
	case c == '`':
		return l.scanDelimited('`', token.Regex, row, col, line)
	case isDigit(c):
		return l.scanNumber(row, col, line), nil
	case isAlpha(c):
		return l.scanIdentifier(row, col, line), nil
	}

	two := string(c) + string(l.peek())
	switch two {
	case "==":
		l.advance()
		l.advance()
		return token.New(token.Eq, "==", l.File, row, col, line), nil
	case "!=":
		l.advance()
		l.advance()
		return token.New(token.NotEq, "!=", l.File, row, col, line), nil
	case "<=":
		l.advance()
		l.advance()
		return token.New(token.LessEq, "<=", l.File, row, col, line), nil
	case ">=":
		l.advance()
		l.advance()
		return token.New(token.GreaterEq, ">=", l.File, row, col, line), nil
	case "&&":
		l.advance()
		l.advance()
		return token.New(token.And, "&&", l.File, row, col, line), nil
	case "||":
		l.advance()
		l.advance()
		return token.New(token.Or, "||", l.File, row, col, line), nil
	}

	single := map[byte]token.Kind{
		'{': token.LBrace, '}': token.RBrace,
		'(': token.LParen, ')': token.RParen,
		'[': token.LBracket, ']': token.RBracket,
		':': token.Colon, ';': token.Semicolon, ',': token.Comma,
		'!': token.Not, '>': token.Greater, '<': token.Less,
		'+': token.Plus, '-': token.Minus, '*': token.Star,
		'/': token.Slash, '%': token.Percent, '=': token.Assign,
	}
	if kind, ok := single[c]; ok {
		l.advance()
		return token.New(kind, string(c), l.File, row, col, line), nil
	}

	if c == '&' || c == '|' {
		return token.Token{}, &LexError{File: l.File, Row: row, Col: col,
			Message: fmt.Sprintf("unexpected character %q, did you mean %q?", c, string(c)+string(c))}
	}

	return token.Token{}, &LexError{File: l.File, Row: row, Col: col,
		Message: fmt.Sprintf("unexpected character %q", c)}
}

func (l *Lexer) scanDelimited(delim byte, kind token.Kind, row, col int, line string) (token.Token, error) {
	var b strings.Builder
	b.WriteByte(delim)
	l.advance() // opening delimiter
	for {
		if l.Current == 0 {
			return token.Token{}, &LexError{File: l.File, Row: row, Col: col,
				Message: "unterminated literal"}
		}
		if l.Current == '\\' && l.peek() == delim {
			b.WriteByte(l.Current)
			l.advance()
			b.WriteByte(l.Current)
			l.advance()
			continue
		}
		if l.Current == delim {
			b.WriteByte(l.Current)
			l.advance()
			break
		}
		b.WriteByte(l.Current)
		l.advance()
	}
	return token.New(kind, b.String(), l.File, row, col, line), nil
}

func (l *Lexer) scanNumber(row, col int, line string) token.Token {
	var b strings.Builder
	for isDigit(l.Current) {
		b.WriteByte(l.Current)
		l.advance()
	}
	kind := token.Int
	if l.Current == '.' && isDigit(l.peek()) {
		kind = token.Float
		b.WriteByte(l.Current)
		l.advance()
		for isDigit(l.Current) {
			b.WriteByte(l.Current)
			l.advance()
		}
	}
	return token.New(kind, b.String(), l.File, row, col, line)
}

func (l *Lexer) scanIdentifier(row, col int, line string) token.Token {
	var b strings.Builder
	for isAlnum(l.Current) {
		b.WriteByte(l.Current)
		l.advance()
	}
	word := b.String()

	if kind, ok := token.Keywords[word]; ok {
		return token.New(kind, word, l.File, row, col, line)
	}
	if kind, ok := token.Types[word]; ok {
		return token.New(kind, word, l.File, row, col, line)
	}
	if kind, ok := token.Builtins[word]; ok {
		return token.New(kind, word, l.File, row, col, line)
	}
	if kind, ok := token.Bools[word]; ok {
		return token.New(kind, word, l.File, row, col, line)
	}
	if word == token.InWord {
		return token.New(token.In, word, l.File, row, col, line)
	}
	if word == token.AsWord {
		return token.New(token.As, word, l.File, row, col, line)
	}
	return token.New(token.Ident, word, l.File, row, col, line)
}
