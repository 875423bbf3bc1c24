package linearize

import (
	"fmt"
	"log"

	"github.com/linea-lang/linea/ast"
	"github.com/linea-lang/linea/token"
	"github.com/linea-lang/linea/utils"
)

// Linearize walks the program in evaluation order and emits one operation
// per assignment, print and binary operator. The first undefined variable
// reference aborts the walk.
func Linearize(program *ast.Program) ([]Operation, error) {
	l := linearizer{
		ops:     []Operation{},
		defined: map[string]bool{},
	}

	for _, stmt := range program.Statements {
		if err := l.statement(stmt); err != nil {
			return nil, err
		}
	}

	return l.ops, nil
}

type linearizer struct {
	ops     []Operation
	defined map[string]bool
}

type UndefinedVariableError struct {
	Name token.Token
}

func (e UndefinedVariableError) Error() string {
	return utils.MsgAt(e.Name, fmt.Sprintf("%s is not defined", e.Name.Lexeme))
}

// emit appends an operation and returns the operand that refers to it.
func (l *linearizer) emit(kind OpKind, operands ...Operand) Operand {
	l.ops = append(l.ops, Operation{Kind: kind, Operands: operands})

	return Result{Index: len(l.ops)}
}

func (l *linearizer) statement(node ast.Node) error {
	switch node := node.(type) {
	case *ast.Assign:
		value, err := l.expr(node.Value)
		if err != nil {
			return err
		}
		l.emit(ASSIGN, value, Variable{Name: node.Target.Lexeme})
		// the target counts as defined only after its value is resolved,
		// so `x = x + 1;` with no prior x is rejected
		l.defined[node.Target.Lexeme] = true

		return nil
	case *ast.Print:
		value, err := l.expr(node.Value)
		if err != nil {
			return err
		}
		l.emit(PRINT, value)

		return nil
	default:
		log.Panicf("unexpected statement: %v", node)

		return nil
	}
}

func (l *linearizer) expr(node ast.Node) (Operand, error) {
	switch node := node.(type) {
	case *ast.Literal:
		// the lexer always decodes INTEGER literals to int64
		return Literal{Value: node.Token.Literal.(int64)}, nil
	case *ast.Var:
		if !l.defined[node.Name.Lexeme] {
			return nil, UndefinedVariableError{Name: node.Name}
		}

		return Variable{Name: node.Name.Lexeme}, nil
	case *ast.Binary:
		left, err := l.expr(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := l.expr(node.Right)
		if err != nil {
			return nil, err
		}

		return l.emit(binaryOpKind(node.Op), left, right), nil
	default:
		log.Panicf("unexpected expression: %v", node)

		return nil, nil
	}
}

func binaryOpKind(op token.Token) OpKind {
	//exhaustive:ignore
	switch op.Kind {
	case token.PLUS:
		return ADD
	case token.MINUS:
		return SUB
	case token.STAR:
		return MUL
	case token.SLASH:
		return DIV
	default:
		log.Panicf("unexpected operator: %v", op)

		return ASSIGN
	}
}
