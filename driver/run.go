package driver

import (
	"errors"
	"fmt"
	"os"

	"github.com/linea-lang/linea/lexer"
	"github.com/linea-lang/linea/linearize"
	"github.com/linea-lang/linea/parser"
)

// Compile runs the full pipeline over source text: lexing, parsing, then
// linearization. The first failing stage aborts the pipeline and its errors
// are wrapped with the stage name.
func Compile(source string) ([]linearize.Operation, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		// the lexer accumulates, so tag every diagnostic with the stage
		if errs, ok := err.(interface{ Unwrap() []error }); ok {
			tagged := make([]error, len(errs.Unwrap()))
			for i, err := range errs.Unwrap() {
				tagged[i] = fmt.Errorf("lex: %w", err)
			}
			return nil, errors.Join(tagged...)
		}
		return nil, fmt.Errorf("lex: %w", err)
	}

	program, err := parser.NewParser(tokens).ParseProgram()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	ops, err := linearize.Linearize(program)
	if err != nil {
		return nil, fmt.Errorf("linearize: %w", err)
	}

	return ops, nil
}

// CompileFile reads the file at path and compiles its contents.
func CompileFile(path string) ([]linearize.Operation, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Compile(string(source))
}
