package linearize

import (
	"fmt"
	"strconv"
	"strings"
)

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=OpKind
type OpKind int

const (
	ASSIGN OpKind = iota
	ADD
	SUB
	MUL
	DIV
	PRINT
)

// Operand is a value reference consumed by an Operation.
type Operand interface {
	fmt.Stringer
	operand()
}

// Literal is an integer constant operand.
type Literal struct {
	Value int64
}

func (l Literal) String() string {
	return strconv.FormatInt(l.Value, 10)
}

func (Literal) operand() {}

// Variable is an operand naming a bound variable.
type Variable struct {
	Name string
}

func (v Variable) String() string {
	return v.Name
}

func (Variable) operand() {}

// Result is an operand referring to the value of a previously emitted
// operation. Index is 1-based emission order. It renders as %N, which can
// never collide with an identifier.
type Result struct {
	Index int
}

func (r Result) String() string {
	return "%" + strconv.Itoa(r.Index)
}

func (Result) operand() {}

// Operation is one primitive step of the linearized program. Operations are
// immutable once emitted; their position in the sequence is their identity.
type Operation struct {
	Kind     OpKind
	Operands []Operand
}

func (op Operation) String() string {
	var b strings.Builder
	b.WriteString(op.Kind.String())
	b.WriteString("(")
	for i, operand := range op.Operands {
		if i != 0 {
			b.WriteString(",")
		}
		b.WriteString(operand.String())
	}
	b.WriteString(")")
	return b.String()
}

// Render joins operations with single spaces in emission order.
func Render(ops []Operation) string {
	var b strings.Builder
	for i, op := range ops {
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(op.String())
	}
	return b.String()
}
