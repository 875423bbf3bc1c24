package linearize_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linea-lang/linea/ast"
	"github.com/linea-lang/linea/lexer"
	"github.com/linea-lang/linea/linearize"
	"github.com/linea-lang/linea/parser"
)

func linearizeSource(t *testing.T, source string) ([]linearize.Operation, error) {
	t.Helper()

	program := parseProgram(t, source)

	return linearize.Linearize(program)
}

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()

	tokens, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	program, err := parser.NewParser(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}

	return program
}

func TestLinearize(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		source   string
		expected string
	}{
		{"x = 5; x = x + 3; print(x);", "ASSIGN(5,x) ADD(x,3) ASSIGN(%2,x) PRINT(x)"},
		{"x = 2 + 3 * 4;", "MUL(3,4) ADD(2,%1) ASSIGN(%2,x)"},
		{"x = 10 - 3 - 2;", "SUB(10,3) SUB(%1,2) ASSIGN(%2,x)"},
		{"x = (2 + 3) * 4;", "ADD(2,3) MUL(%1,4) ASSIGN(%2,x)"},
		{"x = 1; x = 2;", "ASSIGN(1,x) ASSIGN(2,x)"},
		// division is never evaluated, so a constant zero divisor passes through
		{"x = 1 / 0;", "DIV(1,0) ASSIGN(%1,x)"},
		{"x = 7; print(x * x);", "ASSIGN(7,x) MUL(x,x) PRINT(%2)"},
		{"", ""},
	}

	for _, testcase := range testcases {
		ops, err := linearizeSource(t, testcase.source)
		if err != nil {
			t.Errorf("Linearize(%q) returned error: %v", testcase.source, err)
			continue
		}
		if actual := linearize.Render(ops); actual != testcase.expected {
			t.Errorf("Linearize(%q) = %q, want %q", testcase.source, actual, testcase.expected)
		}
	}
}

func TestUndefinedVariable(t *testing.T) {
	t.Parallel()

	ops, err := linearizeSource(t, "print(y);")

	var undefErr linearize.UndefinedVariableError
	if !errors.As(err, &undefErr) {
		t.Fatalf("Linearize returned %v, want UndefinedVariableError", err)
	}
	if undefErr.Name.Lexeme != "y" {
		t.Errorf("error names %q, want y", undefErr.Name.Lexeme)
	}
	if ops != nil {
		t.Errorf("no operations should be emitted on error, got %v", ops)
	}
}

func TestAssignTargetNotDefinedByItsOwnValue(t *testing.T) {
	t.Parallel()

	_, err := linearizeSource(t, "x = x + 1;")

	var undefErr linearize.UndefinedVariableError
	if !errors.As(err, &undefErr) {
		t.Fatalf("Linearize returned %v, want UndefinedVariableError", err)
	}
	if undefErr.Name.Lexeme != "x" {
		t.Errorf("error names %q, want x", undefErr.Name.Lexeme)
	}
}

func TestStructuralConservation(t *testing.T) {
	t.Parallel()

	source := "a = 2 + 3 * 4; b = (a - 6) / 2; print(a * b); print(10 - 3 - 2);"
	program := parseProgram(t, source)

	// one operation per assignment, print and binary operator
	want := 0
	for _, n := range ast.Universe(program) {
		switch n.(type) {
		case *ast.Assign, *ast.Print, *ast.Binary:
			want++
		}
	}

	ops, err := linearize.Linearize(program)
	if err != nil {
		t.Fatalf("Linearize returned error: %v", err)
	}
	if len(ops) != want {
		t.Errorf("Linearize emitted %d operations, want %d", len(ops), want)
	}
}

// reserialize renders operations back to source text, splicing each
// arithmetic result into the operation that consumes it.
func reserialize(t *testing.T, ops []linearize.Operation) string {
	t.Helper()

	symbols := map[linearize.OpKind]string{
		linearize.ADD: "+",
		linearize.SUB: "-",
		linearize.MUL: "*",
		linearize.DIV: "/",
	}

	exprs := map[int]string{}
	operand := func(o linearize.Operand) string {
		if r, ok := o.(linearize.Result); ok {
			return exprs[r.Index]
		}

		return o.String()
	}

	var statements []string
	for i, op := range ops {
		switch op.Kind {
		case linearize.ASSIGN:
			statements = append(statements, fmt.Sprintf("%s = %s;", op.Operands[1], operand(op.Operands[0])))
		case linearize.PRINT:
			statements = append(statements, fmt.Sprintf("print(%s);", operand(op.Operands[0])))
		default:
			exprs[i+1] = fmt.Sprintf("(%s %s %s)", operand(op.Operands[0]), symbols[op.Kind], operand(op.Operands[1]))
		}
	}

	return strings.Join(statements, " ")
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	sources := []string{
		"x = 5; x = x + 3; print(x);",
		"x = 2 + 3 * 4;",
		"a = 1; b = a + 2; print(a * b);",
	}

	for _, source := range sources {
		ops, err := linearizeSource(t, source)
		if err != nil {
			t.Errorf("Linearize(%q) returned error: %v", source, err)
			continue
		}

		again, err := linearizeSource(t, reserialize(t, ops))
		if err != nil {
			t.Errorf("Linearize(reserialize(%q)) returned error: %v", source, err)
			continue
		}

		if diff := cmp.Diff(ops, again); diff != "" {
			t.Errorf("round trip of %q diverged (-first +second):\n%s", source, diff)
		}
	}
}
