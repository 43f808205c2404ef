package parser

import (
	"fmt"
	"strconv"

	"newt/internal/ast"
	"newt/internal/lexer"
	"newt/internal/token"
)

const (
	_          int = iota
	LOWEST         // assignment
	EQUALS         // ==
	COMPARISON     // > or <
	SUM            // +
	PRODUCT        // *
	CALL           // callee(args), receiver.name
)

var precedences = map[token.TokenType]int{
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       COMPARISON,
	token.LT_EQ:    COMPARISON,
	token.GT:       COMPARISON,
	token.GT_EQ:    COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.PERCENT:  PRODUCT,
	token.PERIOD:   CALL,
	token.LPAREN:   CALL,
}

// operatorTokens are the tokens that resolve to operator bindings in the
// environment. Each is registered both infix (`a + b`) and prefix (`+(a, b)`).
var operatorTokens = []token.TokenType{
	token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
	token.EQ, token.NOT_EQ,
	token.LT, token.LT_EQ, token.GT, token.GT_EQ,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []string{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseIntegerLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	for _, t := range operatorTokens {
		p.registerPrefix(t, p.parseOperatorReference)
	}

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range operatorTokens {
		p.registerInfix(t, p.parseOperatorCall)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.PERIOD, p.parseMemberExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) addError(message string, args ...interface{}) {
	m := fmt.Sprintf(message, args...)
	msg := fmt.Sprintf("line %d: %s", p.curToken.Line, m)
	p.errors = append(p.errors, msg)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError("expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.addError("no prefix parse function for %s found", t)
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	} else {
		p.peekError(t)
		return false
	}
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) ParseProgram() *ast.Program {
	body := &ast.Block{Token: p.curToken}
	body.Instructions = []ast.Expression{}

	for !p.curTokenIs(token.EOF) {
		instruction := p.parseInstruction()
		if instruction != nil {
			body.Instructions = append(body.Instructions, instruction)
		}
		p.nextToken()
	}

	return &ast.Program{Body: body}
}

func (p *Parser) parseInstruction() ast.Expression {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarInstruction()
	case token.RETURN:
		return p.parseReturnInstruction()
	case token.SEMICOLON:
		// stray separator
		return nil
	default:
		return p.parseExpressionInstruction()
	}
}

func (p *Parser) parseVarInstruction() ast.Expression {
	assignment := &ast.LocalVarAssignment{Token: p.curToken, Declaration: true}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	assignment.Name = p.curToken.Literal

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	p.nextToken()
	assignment.Value = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return assignment
}

func (p *Parser) parseReturnInstruction() ast.Expression {
	instruction := &ast.Return{Token: p.curToken}

	// A bare return yields undefined.
	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return instruction
	}

	p.nextToken()
	instruction.Value = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return instruction
}

func (p *Parser) parseExpressionInstruction() ast.Expression {
	expression := p.parseExpression(LOWEST)

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return expression
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseIdentifier() ast.Expression {
	ident := &ast.LocalVarAccess{Token: p.curToken, Name: p.curToken.Literal}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		return p.parseLocalAssignment(ident)
	}

	return ident
}

// parseLocalAssignment builds `name = value` with the cursor on the '='.
// Assignment is right-associative, so the value parses from LOWEST.
func (p *Parser) parseLocalAssignment(target *ast.LocalVarAccess) ast.Expression {
	assignment := &ast.LocalVarAssignment{Token: target.Token, Name: target.Name}

	p.nextToken()
	assignment.Value = p.parseExpression(LOWEST)

	return assignment
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("could not parse %q as integer", p.curToken.Literal)
		return nil
	}

	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

// parseOperatorReference handles an operator token in prefix position, where
// it names the operator binding itself: `+(a, b)` or `var plus = +`.
func (p *Parser) parseOperatorReference() ast.Expression {
	return &ast.LocalVarAccess{Token: p.curToken, Name: p.curToken.Literal}
}

// parseOperatorCall desugars `left OP right` into a call of the operator
// binding, so infix uses resolve through the environment like any other name.
func (p *Parser) parseOperatorCall(left ast.Expression) ast.Expression {
	operator := &ast.LocalVarAccess{Token: p.curToken, Name: p.curToken.Literal}
	call := &ast.FunCall{Token: p.curToken, Callee: operator}

	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)

	call.Args = []ast.Expression{left, right}

	return call
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parseIfExpression() ast.Expression {
	expression := &ast.If{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	expression.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	expression.Consequence = p.parseBlock()

	// A missing else clause parses as an empty alternative block.
	expression.Alternative = &ast.Block{Token: p.curToken, Instructions: []ast.Expression{}}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()

		if p.peekTokenIs(token.IF) {
			// else-if chains wrap the nested if in a one-instruction block
			p.nextToken()
			if elseIf := p.parseIfExpression(); elseIf != nil {
				expression.Alternative = &ast.Block{
					Token:        p.curToken,
					Instructions: []ast.Expression{elseIf},
				}
			}
		} else if !p.expectPeek(token.LBRACE) {
			return nil
		} else {
			expression.Alternative = p.parseBlock()
		}
	}

	return expression
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.curToken}
	block.Instructions = []ast.Expression{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		instruction := p.parseInstruction()
		if instruction != nil {
			block.Instructions = append(block.Instructions, instruction)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.Fun{Token: p.curToken}

	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		lit.Name = p.curToken.Literal
	}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	lit.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	lit.Body = p.parseBlock()

	return lit
}

func (p *Parser) parseFunctionParameters() []string {
	parameters := []string{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return parameters
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	parameters = append(parameters, p.curToken.Literal)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		parameters = append(parameters, p.curToken.Literal)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return parameters
}

// parseMemberExpression handles `recv.name` and what follows it: an argument
// list makes a method call with recv bound as the receiver, an '=' makes a
// field assignment, anything else is a plain field read.
func (p *Parser) parseMemberExpression(receiver ast.Expression) ast.Expression {
	period := p.curToken

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		call := &ast.MethodCall{Token: period, Receiver: receiver, Name: name}
		call.Args = p.parseExpressionList(token.RPAREN)
		return call
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		assignment := &ast.FieldAssignment{Token: period, Receiver: receiver, Name: name}
		p.nextToken()
		assignment.Value = p.parseExpression(LOWEST)
		return assignment
	}

	return &ast.FieldAccess{Token: period, Receiver: receiver, Name: name}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	exp := &ast.FunCall{Token: p.curToken, Callee: callee}
	exp.Args = p.parseExpressionList(token.RPAREN)
	return exp
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	object := &ast.New{Token: p.curToken}
	object.Fields = []ast.ObjectField{}

	for !p.peekTokenIs(token.RBRACE) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		name := p.curToken.Literal

		if !p.expectPeek(token.COLON) {
			return nil
		}

		p.nextToken()
		value := p.parseExpression(LOWEST)

		object.Fields = append(object.Fields, ast.ObjectField{Name: name, Value: value})

		if !p.peekTokenIs(token.RBRACE) && !p.expectPeek(token.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}

	return object
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
