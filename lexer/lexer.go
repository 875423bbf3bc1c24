package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/linea-lang/linea/token"
)

// Lex converts source text into a list of tokens terminated by exactly one EOF.
// Scanning continues past bad input so every lexical error is reported at once.
func Lex(source string) ([]token.Token, error) {
	lexer := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		line:    1,
		column:  1,
	}

	var err error

	for !lexer.isAtEnd() {
		err = errors.Join(err, lexer.scanToken())
	}

	lexer.tokens = append(lexer.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: lexer.line, Column: lexer.column, Literal: nil})

	return lexer.tokens, err
}

type lexer struct {
	source string
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
	line    int // 1-based line of current
	column  int // 1-based column of current

	startLine   int // line of the current lexeme's first character
	startColumn int // column of the current lexeme's first character
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width
	if runeValue == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return runeValue
}

func (l *lexer) addToken(kind token.Kind, literal any) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Line: l.startLine, Column: l.startColumn, Literal: literal})
}

type UnexpectedCharacterError struct {
	Line   int
	Column int
	Char   rune
}

func (e UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at %d:%d", e.Char, e.Line, e.Column)
}

func (l *lexer) scanToken() error {
	l.start = l.current
	l.startLine = l.line
	l.startColumn = l.column

	char := l.advance()
	switch char {
	case ' ', '\r', '\t', '\n':
		// whitespace only moves the position
		return nil
	default:
		if k, ok := getSymbol(char); ok {
			l.addToken(k, nil)

			return nil
		}
		if isDigit(char) {
			return l.integer()
		}
		if isAlpha(char) {
			return l.identifier()
		}
	}

	return UnexpectedCharacterError{Line: l.startLine, Column: l.startColumn, Char: char}
}

type NumberOverflowError struct {
	Line   int
	Column int
	Lexeme string
}

func (e NumberOverflowError) Error() string {
	return fmt.Sprintf("integer literal %s out of range at %d:%d", e.Lexeme, e.Line, e.Column)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (l *lexer) integer() error {
	for isDigit(l.peek()) {
		l.advance()
	}

	lexeme := l.source[l.start:l.current]
	// the lexeme is all digits, so the only possible failure is range
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return NumberOverflowError{Line: l.startLine, Column: l.startColumn, Lexeme: lexeme}
	}
	l.addToken(token.INTEGER, value)

	return nil
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c)
}

func (l *lexer) identifier() error {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	if k, ok := getKeyword(l.source[l.start:l.current]); ok {
		l.addToken(k, nil)
	} else {
		l.addToken(token.IDENT, nil)
	}

	return nil
}

func getKeyword(str string) (token.Kind, bool) {
	keywords := map[string]token.Kind{
		"print": token.PRINT,
	}

	if k, ok := keywords[str]; ok {
		return k, true
	}

	return token.IDENT, false
}

func getSymbol(char rune) (token.Kind, bool) {
	symbols := map[rune]token.Kind{
		'(': token.LEFTPAREN,
		')': token.RIGHTPAREN,
		';': token.SEMICOLON,
		'+': token.PLUS,
		'-': token.MINUS,
		'*': token.STAR,
		'/': token.SLASH,
		'=': token.ASSIGN,
	}
	if k, ok := symbols[char]; ok {
		return k, true
	}

	return token.EOF, false
}
