package lexer_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linea-lang/linea/lexer"
	"github.com/linea-lang/linea/token"
	"github.com/linea-lang/linea/utils"
	"github.com/sebdah/goldie/v2"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	if err != nil {
		t.Errorf("failed to find test files: %v", err)
		return
	}

	for _, testfile := range testfiles {
		source, err := os.ReadFile(testfile)
		if err != nil {
			t.Errorf("failed to read %s: %v", testfile, err)
			return
		}

		tokens, err := lexer.Lex(string(source))
		if err != nil {
			t.Errorf("%s returned error: %v", testfile, err)
			return
		}

		var builder strings.Builder
		for _, token := range tokens {
			builder.WriteString(token.String())
			builder.WriteString("\n")
		}

		g := goldie.New(t)
		g.Assert(t, testfile, []byte(builder.String()))
	}
}

func TestLex(t *testing.T) {
	t.Parallel()

	source := "x = 40 + 2;\nprint(x);"
	want := []token.Token{
		{Kind: token.IDENT, Lexeme: "x", Line: 1, Column: 1, Literal: nil},
		{Kind: token.ASSIGN, Lexeme: "=", Line: 1, Column: 3, Literal: nil},
		{Kind: token.INTEGER, Lexeme: "40", Line: 1, Column: 5, Literal: int64(40)},
		{Kind: token.PLUS, Lexeme: "+", Line: 1, Column: 8, Literal: nil},
		{Kind: token.INTEGER, Lexeme: "2", Line: 1, Column: 10, Literal: int64(2)},
		{Kind: token.SEMICOLON, Lexeme: ";", Line: 1, Column: 11, Literal: nil},
		{Kind: token.PRINT, Lexeme: "print", Line: 2, Column: 1, Literal: nil},
		{Kind: token.LEFTPAREN, Lexeme: "(", Line: 2, Column: 6, Literal: nil},
		{Kind: token.IDENT, Lexeme: "x", Line: 2, Column: 7, Literal: nil},
		{Kind: token.RIGHTPAREN, Lexeme: ")", Line: 2, Column: 8, Literal: nil},
		{Kind: token.SEMICOLON, Lexeme: ";", Line: 2, Column: 9, Literal: nil},
		{Kind: token.EOF, Lexeme: "", Line: 2, Column: 10, Literal: nil},
	}

	got, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lex mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input string
		want  token.Kind
	}{
		{"print", token.PRINT},
		{"printx", token.IDENT},
		{"prin", token.IDENT},
		{"Print", token.IDENT},
	}

	for _, testcase := range testcases {
		tokens, err := lexer.Lex(testcase.input)
		if err != nil {
			t.Errorf("Lex(%q) returned error: %v", testcase.input, err)
			continue
		}
		if tokens[0].Kind != testcase.want {
			t.Errorf("Lex(%q) classified as %v, want %v", testcase.input, tokens[0].Kind, testcase.want)
		}
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex("x = 5 @ 3;")

	var charErr lexer.UnexpectedCharacterError
	if !errors.As(err, &charErr) {
		t.Fatalf("Lex returned %v, want UnexpectedCharacterError", err)
	}
	if charErr.Char != '@' || charErr.Line != 1 || charErr.Column != 7 {
		t.Errorf("wrong error detail: %+v", charErr)
	}
}

func TestNumberOverflow(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex("x = 9223372036854775808;")

	var overflowErr lexer.NumberOverflowError
	if !errors.As(err, &overflowErr) {
		t.Fatalf("Lex returned %v, want NumberOverflowError", err)
	}
	if overflowErr.Lexeme != "9223372036854775808" || overflowErr.Column != 5 {
		t.Errorf("wrong error detail: %+v", overflowErr)
	}
}

func TestErrorAccumulation(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("a @ b $ c")
	if err == nil {
		t.Fatal("Lex should fail on unexpected characters")
	}

	// both bad characters are reported, not just the first
	for _, want := range []string{`'@' at 1:3`, `'$' at 1:7`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	// the surrounding good tokens still come through
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.IDENT, token.IDENT, token.IDENT, token.EOF}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptySource(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	want := []token.Token{{Kind: token.EOF, Lexeme: "", Line: 1, Column: 1, Literal: nil}}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Lex mismatch (-want +got):\n%s", diff)
	}
}
