package parser

import (
	"fmt"

	"github.com/agenthands/snailz/pkg/compiler/ast"
	"github.com/agenthands/snailz/pkg/compiler/lexer"
)

// SyntaxError reports the token the parser could not accept. The whole
// statement is discarded.
type SyntaxError struct {
	Token  lexer.Token
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Token.Kind == lexer.KindEOF {
		return "Syntax error at EOF"
	}
	return fmt.Sprintf("Syntax error at '%s'", e.Token.Text)
}

type Parser struct {
	toks    []lexer.Token
	pos     int
	curTok  lexer.Token
	peekTok lexer.Token
}

func NewParser(toks []lexer.Token) *Parser {
	p := &Parser{toks: toks}
	// Read two tokens, so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()
	return p
}

// Parse builds the tree for exactly one statement.
func Parse(toks []lexer.Token) (*ast.Node, error) {
	return NewParser(toks).Parse()
}

// ParseString tokenizes and parses src. Lexical diagnostics are returned even
// when parsing fails.
func ParseString(src string) (*ast.Node, []lexer.Diagnostic, error) {
	toks, diags := lexer.Tokenize(src)
	node, err := Parse(toks)
	return node, diags, err
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.pos < len(p.toks) {
		p.peekTok = p.toks[p.pos]
		p.pos++
		return
	}
	eof := lexer.Token{Kind: lexer.KindEOF}
	if n := len(p.toks); n > 0 {
		eof.Line = p.toks[n-1].Line
		eof.Offset = p.toks[n-1].Offset + len(p.toks[n-1].Text)
	}
	p.peekTok = eof
}

func (p *Parser) Parse() (*ast.Node, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.curTok.Kind != lexer.KindEOF {
		return nil, p.errorf("unexpected token after statement")
	}
	return stmt, nil
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Token: p.curTok, Reason: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(k lexer.Kind) error {
	if p.curTok.Kind != k {
		return p.errorf("expected %v, got %v", k, p.curTok.Kind)
	}
	p.nextToken()
	return nil
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	switch p.curTok.Kind {
	case lexer.KindName:
		if p.peekTok.Kind == lexer.KindEquals {
			return p.parseAssignment()
		}
	case lexer.KindIf:
		return p.parseIfStmt()
	case lexer.KindWhile:
		return p.parseWhileStmt()
	case lexer.KindFor:
		return p.parseForStmt()
	case lexer.KindPrint:
		return p.parsePrintStmt()
	case lexer.KindSnail:
		tok := p.curTok
		p.nextToken()
		return ast.New(ast.KindSnail, tok.Line), nil
	}

	line := p.curTok.Line
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindStatementExpr, line, expr), nil
}

func (p *Parser) parseAssignment() (*ast.Node, error) {
	target := p.curTok
	p.nextToken() // NAME
	p.nextToken() // =

	if p.curTok.Kind == lexer.KindString {
		lit := p.curTok
		p.nextToken()
		n := ast.StringAssign(target.Text, lit.Literal.Str())
		n.Line = target.Line
		return n, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n := ast.Assign(target.Text, expr)
	n.Line = target.Line
	n.Children[0].Line = target.Line
	return n, nil
}

func (p *Parser) parseIfStmt() (*ast.Node, error) {
	ifTok := p.curTok
	p.nextToken() // skip if

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if p.curTok.Kind != lexer.KindElse {
		return ast.New(ast.KindIf, ifTok.Line, cond, then), nil
	}
	p.nextToken() // skip else
	els, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindIf, ifTok.Line, cond, then, els), nil
}

func (p *Parser) parseWhileStmt() (*ast.Node, error) {
	whileTok := p.curTok
	p.nextToken() // skip while

	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindWhile, whileTok.Line, cond, body), nil
}

// parseForStmt reads `for ( cond inner ) outer`.
func (p *Parser) parseForStmt() (*ast.Node, error) {
	forTok := p.curTok
	p.nextToken() // skip for

	if err := p.expect(lexer.KindLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	inner, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindRParen); err != nil {
		return nil, err
	}
	outer, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindFor, forTok.Line, cond, inner, outer), nil
}

func (p *Parser) parsePrintStmt() (*ast.Node, error) {
	printTok := p.curTok
	p.nextToken()

	expr, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindPrint, printTok.Line, expr), nil
}

func (p *Parser) parseParenExpr() (*ast.Node, error) {
	if err := p.expect(lexer.KindLParen); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindRParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseExpression() (*ast.Node, error) {
	return p.parseBinary(precLowest)
}

// parseBinary is a precedence climber over binaryOps. Operators below
// minPrec are left for the caller.
func (p *Parser) parseBinary(minPrec int) (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	chained := false
	for {
		op, ok := binaryOps[p.curTok.Kind]
		if !ok || op.prec < minPrec {
			return left, nil
		}
		if op.assoc == nonAssoc && chained {
			return nil, p.errorf("%v is non-associative", p.curTok.Kind)
		}

		opTok := p.curTok
		p.nextToken()

		next := op.prec + 1
		if op.assoc == rightAssoc {
			next = op.prec
		}
		right, err := p.parseBinary(next)
		if err != nil {
			return nil, err
		}
		left = ast.New(op.kind, opTok.Line, left, right)
		chained = op.assoc == nonAssoc
	}
}

func (p *Parser) parseUnary() (*ast.Node, error) {
	tok := p.curTok
	switch tok.Kind {
	case lexer.KindMinus:
		p.nextToken()
		operand, err := p.parseBinary(precUMinus)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindUMinus, tok.Line, operand), nil
	case lexer.KindNot:
		p.nextToken()
		operand, err := p.parseBinary(precNot)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindNot, tok.Line, operand), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.curTok
	switch tok.Kind {
	case lexer.KindNumber:
		p.nextToken()
		return &ast.Node{Kind: ast.KindNumber, Value: tok.Literal, Line: tok.Line}, nil
	case lexer.KindTrue, lexer.KindFalse:
		p.nextToken()
		return &ast.Node{Kind: ast.KindBoolean, Value: tok.Literal, Line: tok.Line}, nil
	case lexer.KindName:
		p.nextToken()
		return &ast.Node{Kind: ast.KindVariable, Name: tok.Text, Line: tok.Line}, nil
	case lexer.KindLParen:
		return p.parseParenExpr()
	case lexer.KindLBra:
		return p.parseList()
	case lexer.KindSort:
		return p.parseSort()
	default:
		return nil, p.errorf("unexpected expression token: %v", tok.Kind)
	}
}

// parseList reads `[ e1, e2, ... ]`. A single element is a one-item list.
func (p *Parser) parseList() (*ast.Node, error) {
	list := ast.New(ast.KindList, p.curTok.Line)
	p.nextToken() // skip [

	if p.curTok.Kind == lexer.KindRBra {
		p.nextToken()
		return list, nil
	}
	for {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Children = append(list.Children, elem)
		if p.curTok.Kind != lexer.KindCom {
			break
		}
		p.nextToken() // skip ,
	}
	if err := p.expect(lexer.KindRBra); err != nil {
		return nil, err
	}
	return list, nil
}

// parseSort reads `>> ( NAME )`.
func (p *Parser) parseSort() (*ast.Node, error) {
	sortTok := p.curTok
	p.nextToken() // skip >>

	if err := p.expect(lexer.KindLParen); err != nil {
		return nil, err
	}
	targetTok := p.curTok
	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if target.Kind != ast.KindVariable {
		return nil, &SyntaxError{Token: targetTok, Reason: "sort expects a variable name"}
	}
	if err := p.expect(lexer.KindRParen); err != nil {
		return nil, err
	}
	return ast.New(ast.KindSort, sortTok.Line, target), nil
}
