package ast

import (
	"fmt"
	"strings"

	"github.com/linea-lang/linea/token"
)

// AST

type Node interface {
	fmt.Stringer
	Base() token.Token
	// Plate applies the given function to each child node.
	// If f returns an error, f also must return the original argument n.
	// It is similar to Visitor pattern.
	// FYI: https://hackage.haskell.org/package/lens-5.2.3/docs/Control-Lens-Plated.html
	Plate(error, func(Node, error) (Node, error)) (Node, error)
}

// Literal is an integer literal. The decoded int64 lives in Token.Literal.
type Literal struct {
	token.Token
}

func (l Literal) String() string {
	return parenthesize("literal", l.Token).String()
}

func (l *Literal) Base() token.Token {
	return l.Token
}

func (l *Literal) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return l, err
}

var _ Node = &Literal{}

// Var is a reference to a variable by name.
type Var struct {
	Name token.Token
}

func (v Var) String() string {
	return parenthesize("var", v.Name).String()
}

func (v *Var) Base() token.Token {
	return v.Name
}

func (v *Var) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return v, err
}

var _ Node = &Var{}

// Binary applies an arithmetic operator to two operands.
// Op is one of PLUS, MINUS, STAR, SLASH.
type Binary struct {
	Left  Node
	Op    token.Token
	Right Node
}

func (b Binary) String() string {
	return parenthesize("binary", b.Left, b.Op, b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Op
}

func (b *Binary) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	b.Left, err = f(b.Left, err)
	b.Right, err = f(b.Right, err)
	return b, err
}

var _ Node = &Binary{}

// Assign binds the value of an expression to a variable name.
type Assign struct {
	Target token.Token
	Value  Node
}

func (a Assign) String() string {
	return parenthesize("assign", a.Target, a.Value).String()
}

func (a *Assign) Base() token.Token {
	return a.Target
}

func (a *Assign) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	a.Value, err = f(a.Value, err)
	return a, err
}

var _ Node = &Assign{}

// Print outputs the value of an expression.
type Print struct {
	Keyword token.Token
	Value   Node
}

func (p Print) String() string {
	return parenthesize("print", p.Value).String()
}

func (p *Print) Base() token.Token {
	return p.Keyword
}

func (p *Print) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	p.Value, err = f(p.Value, err)
	return p, err
}

var _ Node = &Print{}

// Program is an ordered sequence of statements.
type Program struct {
	Statements []Node
}

func (p Program) String() string {
	return parenthesize("program", concat(p.Statements)).String()
}

func (p *Program) Base() token.Token {
	if len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].Base()
}

func (p *Program) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	for i, stmt := range p.Statements {
		p.Statements[i], err = f(stmt, err)
	}
	return p, err
}

var _ Node = &Program{}

// parenthesize takes a head string and a variadic number of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is parenthesized and separated by a space.
// If the head string is not empty, it is added at the beginning of the string.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}

// Traverse the [Node] in depth-first order.
// f is called for each node.
// If f returns an error, f also must return the original argument n.
// If n has children, Traverse modifies each child before n.
func Traverse(n Node, f func(Node, error) (Node, error)) (Node, error) {
	n, err := n.Plate(nil, func(n Node, err error) (Node, error) {
		return Traverse(n, f)
	})
	return f(n, err)
}

// Children returns the direct child nodes of n.
func Children(n Node) []Node {
	var children []Node
	_, err := n.Plate(nil, func(n Node, _ error) (Node, error) {
		children = append(children, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return children
}

// Universe returns every node reachable from n, n included, in depth-first order.
func Universe(n Node) []Node {
	var nodes []Node
	_, err := Traverse(n, func(n Node, _ error) (Node, error) {
		nodes = append(nodes, n)
		return n, nil
	})
	if err != nil {
		panic(fmt.Errorf("unexpected error: %w", err))
	}
	return nodes
}
