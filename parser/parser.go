package parser

import (
	"github.com/linea-lang/linea/ast"
	"github.com/linea-lang/linea/token"
	"github.com/linea-lang/linea/utils"
)

type Parser struct {
	tokens  []token.Token
	current int
	err     error
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens, 0, nil}
}

// ParseProgram parses the whole token sequence as a program.
// The first syntax error aborts the parse.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	p.err = nil
	statements := []ast.Node{}
	for !p.IsAtEnd() && p.err == nil {
		stmt := p.statement()
		if p.err != nil {
			break
		}
		statements = append(statements, stmt)
	}

	return &ast.Program{Statements: statements}, p.err
}

// statement = assignment | printStmt ;
func (p *Parser) statement() ast.Node {
	if p.match(token.PRINT) {
		return p.printStmt()
	}

	return p.assignment()
}

// assignment = IDENT "=" expr ";" ;
func (p *Parser) assignment() ast.Node {
	if !p.match(token.IDENT) {
		p.recover(unexpectedToken(p.peek(), "identifier", "`print`"))

		return nil
	}
	target := p.advance()
	p.consume(token.ASSIGN)
	value := p.expr()
	p.consume(token.SEMICOLON)

	return &ast.Assign{Target: target, Value: value}
}

// printStmt = "print" "(" expr ")" ";" ;
func (p *Parser) printStmt() ast.Node {
	keyword := p.consume(token.PRINT)
	p.consume(token.LEFTPAREN)
	value := p.expr()
	p.consume(token.RIGHTPAREN)
	p.consume(token.SEMICOLON)

	return &ast.Print{Keyword: keyword, Value: value}
}

// expr = term (("+" | "-") term)* ;
func (p *Parser) expr() ast.Node {
	if p.IsAtEnd() {
		p.recover(unexpectedToken(p.peek(), "expression"))

		return nil
	}

	expr := p.term()
	for p.match(token.PLUS) || p.match(token.MINUS) {
		op := p.advance()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}

	return expr
}

// term = factor (("*" | "/") factor)* ;
func (p *Parser) term() ast.Node {
	expr := p.factor()
	for p.match(token.STAR) || p.match(token.SLASH) {
		op := p.advance()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}

	return expr
}

// factor = INTEGER | IDENT | "(" expr ")" ;
func (p *Parser) factor() ast.Node {
	//exhaustive:ignore
	switch tok := p.advance(); tok.Kind {
	case token.INTEGER:
		return &ast.Literal{Token: tok}
	case token.IDENT:
		return &ast.Var{Name: tok}
	case token.LEFTPAREN:
		expr := p.expr()
		p.consume(token.RIGHTPAREN)

		return expr
	default:
		p.recover(unexpectedToken(tok, "integer", "identifier", "`(`"))

		return nil
	}
}

// recover records err unless an earlier error is already recorded.
func (p *Parser) recover(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) match(kind token.Kind) bool {
	if p.IsAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser) consume(kind token.Kind) token.Token {
	if p.match(kind) {
		return p.advance()
	}

	p.recover(unexpectedToken(p.peek(), kind.String()))

	return p.peek()
}

type UnexpectedTokenError struct {
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	var msg string
	if len(e.Expected) >= 1 {
		msg = e.Expected[0]
	}

	for _, ex := range e.Expected[1:] {
		msg = msg + ", " + ex
	}

	return "unexpected token: expected " + msg
}

func unexpectedToken(t token.Token, expected ...string) error {
	return utils.PosError{Where: t, Err: UnexpectedTokenError{Expected: expected}}
}
