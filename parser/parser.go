// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Recursive-descent parser with one dedicated function per
//          precedence level. Converts the token stream produced by the
//          lexer into the AST the evaluator walks. Implements error
//          recovery via synchronization so a single pass can report
//          more than one syntax error.
// ==============================================================================================

package parser

import (
	"fmt"
	"strconv"

	"script/ast"
	"script/token"
)

// ParseError is a single syntax error, anchored at the offending token.
type ParseError struct {
	Message string
	Token   token.Token
	Lexeme  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s At token: `%s` at line: %d", e.Message, e.Lexeme, e.Token.Line)
}

// parsePanic wraps a *ParseError so synchronize() can unwind to the
// nearest declaration boundary via recover without mistaking a real
// programmer error (nil pointer, index out of range) for one.
type parsePanic struct{ err *ParseError }

// Parser holds the state of one parse over a fixed token slice.
type Parser struct {
	tokens  []token.Token
	source  string
	current int
	errors  []error
}

// New creates a Parser over a complete token stream (as produced by
// lexer.ScanAll) and the source string the tokens were scanned from.
func New(tokens []token.Token, source string) *Parser {
	return &Parser{tokens: tokens, source: source}
}

// ParseProgram parses every statement until Eof. It never stops early
// on error: parse errors synchronize to the next statement boundary so
// a single pass can surface more than one mistake. Callers must check
// HadError before handing the result to the evaluator.
func (p *Parser) ParseProgram() []ast.Statement {
	var statements []ast.Statement
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Errors returns every syntax error collected during the parse, in the
// order encountered.
func (p *Parser) Errors() []error { return p.errors }

// HadError reports whether any syntax error was recorded.
func (p *Parser) HadError() bool { return len(p.errors) > 0 }

// ----------------------------------------------------------------------------------------------
// TOKEN STREAM HELPERS
// ----------------------------------------------------------------------------------------------

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected token type or raises a parse error.
func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

func (p *Parser) errorAt(tok token.Token, message string) parsePanic {
	pe := &ParseError{Message: message, Token: tok, Lexeme: tok.Lexeme(p.source)}
	p.errors = append(p.errors, pe)
	return parsePanic{err: pe}
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so parsing can resume after a syntax error.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.FOR, token.IF, token.PRINT, token.RETURN, token.VAR, token.WHILE:
			return
		}
		p.advance()
	}
}

// ----------------------------------------------------------------------------------------------
// DECLARATIONS & STATEMENTS
// ----------------------------------------------------------------------------------------------

func (p *Parser) declaration() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parsePanic); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.FUN):
		return p.functionDeclaration()
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) functionDeclaration() ast.Statement {
	kw := p.previous()
	name := p.consume(token.IDENT, "Expect function name.")
	p.consume(token.LPAREN, "Expect '(' after function name.")

	var params []string
	if !p.check(token.RPAREN) {
		for {
			pt := p.consume(token.IDENT, "Expect parameter name.")
			params = append(params, pt.Lexeme(p.source))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	p.consume(token.LBRACE, "Expect '{' before function body.")
	body := p.blockStatement()

	return &ast.Function{Token: kw, Name: name.Lexeme(p.source), Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Statement {
	kw := p.previous()
	name := p.consume(token.IDENT, "Expect variable name.")

	var init ast.Expression = &ast.Literal{Token: name, Kind: ast.NilLiteral}
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Token: kw, Name: name.Lexeme(p.source), Initializer: init}
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.BREAK):
		kw := p.previous()
		p.consume(token.SEMICOLON, "Expect ';' after 'break'.")
		return &ast.Break{Token: kw}
	case p.match(token.CONTINUE):
		kw := p.previous()
		p.consume(token.SEMICOLON, "Expect ';' after 'continue'.")
		return &ast.Continue{Token: kw}
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.APPEND):
		return p.appendStatement()
	case p.match(token.INSERT):
		return p.insertStatement()
	case p.match(token.DELETE):
		return p.deleteStatement()
	case p.match(token.LBRACE):
		return p.blockStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) blockStatement() *ast.Block {
	lb := p.previous()
	var statements []ast.Statement
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
	return &ast.Block{Token: lb, Statements: statements}
}

func (p *Parser) ifStatement() ast.Statement {
	kw := p.previous()
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after if condition.")
	thenBranch := p.statement()
	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Token: kw, Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Statement {
	kw := p.previous()
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after while condition.")
	body := p.statement()
	return &ast.While{Token: kw, Cond: cond, Body: body}
}

// forStatement parses `for (init; cond; incr) body`. An absent cond
// defaults to Literal(true). When init is present the whole statement
// is wrapped in a synthetic block so a variable declared in init is
// scoped to the loop alone.
func (p *Parser) forStatement() ast.Statement {
	kw := p.previous()
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")
	if cond == nil {
		cond = &ast.Literal{Token: kw, Kind: ast.BoolLiteral, Bool: true}
	}

	var incr ast.Expression
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.consume(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()
	forNode := &ast.For{Token: kw, Init: init, Cond: cond, Incr: incr, Body: body}
	if init == nil {
		return forNode
	}
	return &ast.Block{Token: kw, Statements: []ast.Statement{forNode}}
}

func (p *Parser) printStatement() ast.Statement {
	kw := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Token: kw, Expr: value}
}

func (p *Parser) returnStatement() ast.Statement {
	kw := p.previous()
	var value ast.Expression = &ast.Literal{Token: kw, Kind: ast.NilLiteral}
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Token: kw, Value: value}
}

// appendStatement parses `append(array, value);`. Both arguments are
// parsed at ternary precedence (not full expression) so the comma
// operator cannot swallow the separating ','.
func (p *Parser) appendStatement() ast.Statement {
	paren := p.consume(token.LPAREN, "Expect '(' after 'append'.")
	arr := p.ternary()
	p.consume(token.COMMA, "Expect ',' after array in append.")
	value := p.ternary()
	p.consume(token.RPAREN, "Expect ')' after append arguments.")
	p.consume(token.SEMICOLON, "Expect ';' after append statement.")
	return &ast.Append{Token: paren, Array: arr, Value: value}
}

// insertStatement parses `insert(array[index], value);`. The first
// argument must parse as an IndexGet; anything else is a syntax error
// at that slot.
func (p *Parser) insertStatement() ast.Statement {
	kw := p.previous()
	paren := p.consume(token.LPAREN, "Expect '(' after 'insert'.")
	target := p.ternary()
	idx, ok := target.(*ast.IndexGet)
	if !ok {
		panic(p.errorAt(kw, "Expect an indexed array expression as insert's first argument."))
	}
	p.consume(token.COMMA, "Expect ',' after index in insert.")
	value := p.ternary()
	p.consume(token.RPAREN, "Expect ')' after insert arguments.")
	p.consume(token.SEMICOLON, "Expect ';' after insert statement.")
	return &ast.Insert{Token: paren, Index: idx, Value: value}
}

// deleteStatement parses `delete(array[index]);`, with the same
// IndexGet restriction as insert.
func (p *Parser) deleteStatement() ast.Statement {
	kw := p.previous()
	paren := p.consume(token.LPAREN, "Expect '(' after 'delete'.")
	target := p.ternary()
	idx, ok := target.(*ast.IndexGet)
	if !ok {
		panic(p.errorAt(kw, "Expect an indexed array expression as delete's argument."))
	}
	p.consume(token.RPAREN, "Expect ')' after delete argument.")
	p.consume(token.SEMICOLON, "Expect ';' after delete statement.")
	return &ast.Delete{Token: paren, Index: idx}
}

func (p *Parser) expressionStatement() ast.Statement {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStatement{Token: expr.Tok(), Expr: expr}
}

// ----------------------------------------------------------------------------------------------
// EXPRESSIONS (highest-to-lowest binding, per the precedence ladder)
// ----------------------------------------------------------------------------------------------

func (p *Parser) expression() ast.Expression { return p.comma() }

func (p *Parser) comma() ast.Expression {
	expr := p.assignment()
	for p.match(token.COMMA) {
		op := p.previous()
		right := p.assignment()
		expr = &ast.Binary{Token: op, Left: expr, Operator: ",", Right: right}
	}
	return expr
}

// assignment is right-associative: the LHS must collapse to a
// Variable, StructGet, or IndexGet; any other shape is a parse error
// reported at the '=' token.
func (p *Parser) assignment() ast.Expression {
	expr := p.ternary()

	if p.match(token.EQUAL) {
		eq := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Token: eq, Target: target, Value: value}
		case *ast.StructGet:
			return &ast.StructSet{Token: target.Token, Target: target.Target, Name: target.Name, Value: value}
		case *ast.IndexGet:
			return &ast.IndexSet{Token: target.Token, Target: target.Target, Index: target.Index, Value: value}
		default:
			panic(p.errorAt(eq, "Invalid assignment target."))
		}
	}
	return expr
}

// ternary is right-associative: `cond ? then : else`. Then is parsed
// at full expression precedence (comma-inclusive); else recurses into
// ternary so chained ternaries associate to the right.
func (p *Parser) ternary() ast.Expression {
	expr := p.orExpr()
	if p.match(token.QUESTION) {
		q := p.previous()
		then := p.expression()
		p.consume(token.COLON, "Expect ':' in ternary expression.")
		elseBranch := p.ternary()
		expr = &ast.Ternary{Token: q, Cond: expr, Then: then, Else: elseBranch}
	}
	return expr
}

func (p *Parser) orExpr() ast.Expression {
	expr := p.andExpr()
	for p.match(token.OR) {
		op := p.previous()
		right := p.andExpr()
		expr = &ast.Logical{Token: op, Left: expr, Operator: "or", Right: right}
	}
	return expr
}

func (p *Parser) andExpr() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Token: op, Left: expr, Operator: "and", Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Token: op, Left: expr, Operator: string(op.Type), Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Token: op, Left: expr, Operator: string(op.Type), Right: right}
	}
	return expr
}

// term handles '+' and '-'; factor handles '*' and '/', matching the
// grammar's own naming (term wraps factor, not the other way around).
func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Token: op, Left: expr, Operator: string(op.Type), Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Token: op, Left: expr, Operator: string(op.Type), Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Token: op, Operator: string(op.Type), Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "Expect property name after '.'.")
			expr = &ast.StructGet{Token: name, Target: expr, Name: name.Lexeme(p.source)}
		case p.match(token.LBRACKET):
			lb := p.previous()
			index := p.expression()
			p.consume(token.RBRACKET, "Expect ']' after index.")
			expr = &ast.IndexGet{Token: lb, Target: expr, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			args = append(args, p.ternary())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "Expect ')' after arguments.")
	return &ast.Call{Token: paren, Callee: callee, Args: args}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Kind: ast.BoolLiteral, Bool: false}
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Kind: ast.BoolLiteral, Bool: true}
	case p.match(token.NIL):
		return &ast.Literal{Token: p.previous(), Kind: ast.NilLiteral}
	case p.match(token.NUMBER):
		return p.numberLiteral()
	case p.match(token.STRING):
		tok := p.previous()
		lexeme := tok.Lexeme(p.source)
		return &ast.Literal{Token: tok, Kind: ast.StringLiteral, Str: lexeme[1 : len(lexeme)-1]}
	case p.match(token.IDENT):
		tok := p.previous()
		return &ast.Variable{Token: tok, Name: tok.Lexeme(p.source)}
	case p.match(token.LPAREN):
		lp := p.previous()
		expr := p.expression()
		p.consume(token.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{Token: lp, Expr: expr}
	case p.match(token.LBRACKET):
		return p.arrayLiteral()
	case p.match(token.LBRACE):
		return p.structLiteral()
	}
	panic(p.errorAt(p.peek(), "Expect expression."))
}

func (p *Parser) numberLiteral() ast.Expression {
	tok := p.previous()
	lexeme := tok.Lexeme(p.source)

	var value float64
	if len(lexeme) > 1 && lexeme[0] == '0' && (lexeme[1] == 'x' || lexeme[1] == 'X') {
		n, err := strconv.ParseUint(lexeme[2:], 16, 32)
		if err != nil {
			panic(p.errorAt(tok, "Invalid hexadecimal number literal."))
		}
		value = float64(n)
	} else {
		n, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			panic(p.errorAt(tok, "Invalid number literal."))
		}
		value = n
	}
	return &ast.Literal{Token: tok, Kind: ast.NumberLiteral, Number: value}
}

// arrayLiteral and structLiteral parse their elements/fields at ternary
// precedence so ',' unambiguously separates entries rather than being
// consumed by the comma operator.
func (p *Parser) arrayLiteral() ast.Expression {
	lb := p.previous()
	var elements []ast.Expression
	if !p.check(token.RBRACKET) {
		for {
			elements = append(elements, p.ternary())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RBRACKET, "Expect ']' after array elements.")
	return &ast.Array{Token: lb, Elements: elements}
}

func (p *Parser) structLiteral() ast.Expression {
	lb := p.previous()
	var fields []ast.StructField
	if !p.check(token.RBRACE) {
		for {
			nameTok := p.consume(token.IDENT, "Expect field name.")
			p.consume(token.COLON, "Expect ':' after field name.")
			value := p.ternary()
			fields = append(fields, ast.StructField{NameToken: nameTok, Name: nameTok.Lexeme(p.source), Value: value})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RBRACE, "Expect '}' after struct fields.")
	return &ast.Struct{Token: lb, Fields: fields}
}
