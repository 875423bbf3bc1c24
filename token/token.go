package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	SEMICOLON
	PLUS
	MINUS
	STAR
	SLASH
	ASSIGN

	// Literals and identifiers.
	IDENT
	INTEGER

	// Keywords.
	PRINT
)

// Token is a classified slice of source text. Literal carries the decoded
// int64 for INTEGER tokens and is nil otherwise. Line and Column are 1-based
// and point at the first character of the lexeme.
type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Column  int
	Literal any
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d:%d, %v}", t.Kind, t.Lexeme, t.Line, t.Column, t.Literal)
}
