package parser

import (
	"fmt"

	"github.com/vkuzmin/basil/source"
)

// Parser is a recursive-descent parser with an explicit token cursor.
// Speculative productions rewind the cursor through reverse; the
// ParseResult token counts decide whether a failed attempt may be
// abandoned or its error must stand.
type Parser struct {
	tokens []Token
	index  int
	cur    Token
}

// Parse lexes and parses a script, returning the program's statement
// list node or the first lexical/syntax error.
func Parse(filename, text string) (Node, error) {
	tokens, err := Tokenize(filename, text)
	if err != nil {
		return nil, err
	}
	p := newParser(tokens)
	res := p.parse()
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Node, nil
}

func newParser(tokens []Token) *Parser {
	p := &Parser{tokens: tokens, index: -1}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.index++
	p.sync()
}

func (p *Parser) reverse(n int) {
	p.index -= n
	p.sync()
}

func (p *Parser) sync() {
	if p.index >= 0 && p.index < len(p.tokens) {
		p.cur = p.tokens[p.index]
	}
}

func (p *Parser) syntaxErr(details string) error {
	return source.NewSyntaxError(p.cur.Span.Start, p.cur.Span.End, details)
}

func (p *Parser) parse() *ParseResult {
	res := p.statements(false, false)
	if res.Err == nil && p.cur.Type != TokenEOF {
		return res.Failure(p.syntaxErr(source.MsgTokensOutOfPlace))
	}
	return res
}

// statements parses one or more newline-separated statements into a
// ListNode. A newline not followed by a further valid statement ends
// the list without error, provided the failed attempt consumed nothing.
func (p *Parser) statements(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	start := p.cur.Span.Start
	var stmts []Node

	for p.cur.Type == TokenNewline {
		res.RegisterAdvancement()
		p.advance()
	}

	stmt := res.Register(p.statement(inFunc, inLoop))
	if res.Err != nil {
		return res
	}
	stmts = append(stmts, stmt)

	more := true
	for {
		newlines := 0
		for p.cur.Type == TokenNewline {
			res.RegisterAdvancement()
			p.advance()
			newlines++
		}
		if newlines == 0 {
			more = false
		}
		if !more {
			break
		}
		stmt, ok := res.TryRegister(p.statement(inFunc, inLoop))
		if !ok {
			p.reverse(res.ToReverseCount)
			more = false
			continue
		}
		stmts = append(stmts, stmt)
	}

	return res.Success(&ListNode{
		Elements: stmts,
		Loc:      source.NewSpan(start, p.cur.Span.End),
	})
}

func (p *Parser) statement(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	start := p.cur.Span.Start

	switch {
	case p.cur.Matches(TokenKeyword, "RETURN"):
		return p.returnStatement(inFunc, inLoop, res, start)
	case p.cur.Matches(TokenKeyword, "CONTINUE"):
		return p.continueStatement(inLoop, res, start)
	case p.cur.Matches(TokenKeyword, "BREAK"):
		return p.breakStatement(inLoop, res, start)
	case p.cur.Matches(TokenKeyword, "IMPORT"):
		return p.importStatement(inFunc, inLoop, res, start)
	}

	expr := res.Register(p.expr(inFunc, inLoop))
	if res.Err != nil {
		return res.Failure(p.syntaxErr(source.MsgStatementSyntax))
	}
	return res.Success(expr)
}

func (p *Parser) returnStatement(inFunc, inLoop bool, res *ParseResult, start source.Position) *ParseResult {
	res.RegisterAdvancement()
	p.advance()
	if !inFunc {
		return res.Failure(p.syntaxErr(source.MsgBadReturn))
	}

	// RETURN may optionally be followed by an expression.
	value, ok := res.TryRegister(p.expr(inFunc, inLoop))
	if !ok {
		p.reverse(res.ToReverseCount)
		value = nil
	}
	return res.Success(&ReturnNode{
		Value: value,
		Loc:   source.NewSpan(start, p.cur.Span.Start),
	})
}

func (p *Parser) continueStatement(inLoop bool, res *ParseResult, start source.Position) *ParseResult {
	res.RegisterAdvancement()
	p.advance()
	if !inLoop {
		return res.Failure(p.syntaxErr(source.MsgBadContinue))
	}
	return res.Success(&ContinueNode{Loc: source.NewSpan(start, p.cur.Span.Start)})
}

func (p *Parser) breakStatement(inLoop bool, res *ParseResult, start source.Position) *ParseResult {
	res.RegisterAdvancement()
	p.advance()
	if !inLoop {
		return res.Failure(p.syntaxErr(source.MsgBadBreak))
	}
	return res.Success(&BreakNode{Loc: source.NewSpan(start, p.cur.Span.Start)})
}

func (p *Parser) importStatement(inFunc, inLoop bool, res *ParseResult, start source.Position) *ParseResult {
	res.RegisterAdvancement()
	p.advance()
	if p.cur.Type != TokenString {
		return res.Failure(p.syntaxErr(source.MsgStringExpected))
	}
	path := res.Register(p.atom(inFunc, inLoop))
	return res.Success(&ImportNode{
		Path: path,
		Loc:  source.NewSpan(start, p.cur.Span.Start),
	})
}

func (p *Parser) expr(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	if p.cur.Matches(TokenKeyword, "VAR") {
		return p.varAssignment(inFunc, inLoop, res)
	}

	node := res.Register(p.binOp(inFunc, inLoop, p.compExpr, func(t Token) bool {
		return t.Matches(TokenKeyword, "AND") || t.Matches(TokenKeyword, "OR")
	}, nil))
	if res.Err != nil {
		return res.Failure(p.syntaxErr(source.MsgExprSyntax))
	}
	return res.Success(node)
}

func (p *Parser) varAssignment(inFunc, inLoop bool, res *ParseResult) *ParseResult {
	start := p.cur.Span.Start
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type != TokenIdentifier {
		return res.Failure(p.syntaxErr(source.MsgIdentifierExpected))
	}
	name := p.cur
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type != TokenAssign {
		return res.Failure(p.syntaxErr(source.MsgEqualExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	value := res.Register(p.expr(inFunc, inLoop))
	if res.Err != nil {
		return res
	}
	return res.Success(&VarAssignNode{
		Name:  name,
		Value: value,
		Loc:   source.NewSpan(start, value.Span().End),
	})
}

func (p *Parser) compExpr(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}

	if p.cur.Matches(TokenKeyword, "NOT") {
		op := p.cur
		res.RegisterAdvancement()
		p.advance()

		node := res.Register(p.compExpr(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		return res.Success(&UnaryOpNode{Op: op, Operand: node})
	}

	node := res.Register(p.binOp(inFunc, inLoop, p.arithExpr, func(t Token) bool {
		switch t.Type {
		case TokenEqEq, TokenNotEq, TokenLess, TokenGreater, TokenLessEq, TokenGreaterEq:
			return true
		}
		return false
	}, nil))
	if res.Err != nil {
		return res.Failure(p.syntaxErr(source.MsgCompSyntax))
	}
	return res.Success(node)
}

func (p *Parser) arithExpr(inFunc, inLoop bool) *ParseResult {
	return p.binOp(inFunc, inLoop, p.term, func(t Token) bool {
		return t.Type == TokenPlus || t.Type == TokenMinus
	}, nil)
}

func (p *Parser) term(inFunc, inLoop bool) *ParseResult {
	return p.binOp(inFunc, inLoop, p.factor, func(t Token) bool {
		return t.Type == TokenStar || t.Type == TokenSlash || t.Type == TokenPercent
	}, nil)
}

func (p *Parser) factor(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	tok := p.cur

	if tok.Type == TokenPlus || tok.Type == TokenMinus {
		res.RegisterAdvancement()
		p.advance()
		operand := res.Register(p.factor(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		return res.Success(&UnaryOpNode{Op: tok, Operand: operand})
	}

	return p.power(inFunc, inLoop)
}

// power is right-associative: the right operand recurses back into
// factor so 2^3^2 parses as 2^(3^2).
func (p *Parser) power(inFunc, inLoop bool) *ParseResult {
	return p.binOp(inFunc, inLoop, p.call, func(t Token) bool {
		return t.Type == TokenCaret
	}, p.factor)
}

func (p *Parser) call(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}

	atom := res.Register(p.atom(inFunc, inLoop))
	if res.Err != nil {
		return res
	}

	if p.cur.Type != TokenLParen {
		return res.Success(atom)
	}

	res.RegisterAdvancement()
	p.advance()
	var args []Node

	if p.cur.Type == TokenRParen {
		res.RegisterAdvancement()
		p.advance()
	} else {
		arg := res.Register(p.expr(inFunc, inLoop))
		if res.Err != nil {
			return res.Failure(p.syntaxErr(source.MsgArgSyntax))
		}
		args = append(args, arg)

		for p.cur.Type == TokenComma {
			res.RegisterAdvancement()
			p.advance()

			arg = res.Register(p.expr(inFunc, inLoop))
			if res.Err != nil {
				return res
			}
			args = append(args, arg)
		}

		if p.cur.Type != TokenRParen {
			return res.Failure(p.syntaxErr(source.MsgCommaRParenExpected))
		}
		res.RegisterAdvancement()
		p.advance()
	}

	end := atom.Span().End
	if len(args) > 0 {
		end = args[len(args)-1].Span().End
	}
	return res.Success(&CallNode{
		Callee: atom,
		Args:   args,
		Loc:    source.NewSpan(atom.Span().Start, end),
	})
}

func (p *Parser) atom(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	tok := p.cur

	switch {
	case tok.Type == TokenInt || tok.Type == TokenFloat:
		res.RegisterAdvancement()
		p.advance()
		return res.Success(&NumberNode{Tok: tok})

	case tok.Type == TokenString:
		res.RegisterAdvancement()
		p.advance()
		return res.Success(&StringNode{Tok: tok})

	case tok.Type == TokenIdentifier:
		res.RegisterAdvancement()
		p.advance()
		return res.Success(&VarAccessNode{Name: tok})

	case tok.Type == TokenLParen:
		res.RegisterAdvancement()
		p.advance()
		expr := res.Register(p.expr(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		if p.cur.Type != TokenRParen {
			return res.Failure(p.syntaxErr(source.MsgRParenExpected))
		}
		res.RegisterAdvancement()
		p.advance()
		return res.Success(expr)

	case tok.Type == TokenLBracket:
		list := res.Register(p.listExpr(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		return res.Success(list)

	case tok.Matches(TokenKeyword, "IF"):
		node := res.Register(p.ifExpr(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		return res.Success(node)

	case tok.Matches(TokenKeyword, "FOR"):
		node := res.Register(p.forExpr(inFunc, true))
		if res.Err != nil {
			return res
		}
		return res.Success(node)

	case tok.Matches(TokenKeyword, "WHILE"):
		node := res.Register(p.whileExpr(inFunc, true))
		if res.Err != nil {
			return res
		}
		return res.Success(node)

	case tok.Matches(TokenKeyword, "FUN"):
		node := res.Register(p.funcDef(true, inLoop))
		if res.Err != nil {
			return res
		}
		return res.Success(node)
	}

	return res.Failure(source.NewSyntaxError(tok.Span.Start, tok.Span.End, source.MsgAtomSyntax))
}

func (p *Parser) listExpr(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	var elements []Node
	start := p.cur.Span.Start

	if p.cur.Type != TokenLBracket {
		return res.Failure(p.syntaxErr(source.MsgLBracketExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type == TokenRBracket {
		res.RegisterAdvancement()
		p.advance()
		return res.Success(&ListNode{Loc: source.NewSpan(start, p.cur.Span.End)})
	}

	element := res.Register(p.expr(inFunc, inLoop))
	if res.Err != nil {
		return res.Failure(p.syntaxErr(source.MsgListElemSyntax))
	}
	elements = append(elements, element)

	for p.cur.Type == TokenComma {
		res.RegisterAdvancement()
		p.advance()

		element = res.Register(p.expr(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		elements = append(elements, element)
	}

	if p.cur.Type != TokenRBracket {
		return res.Failure(p.syntaxErr(source.MsgCommaRBracketExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	return res.Success(&ListNode{
		Elements: elements,
		Loc:      source.NewSpan(start, p.cur.Span.End),
	})
}

func (p *Parser) ifExpr(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}

	cases, elseCase, sub := p.ifCases("IF", inFunc, inLoop)
	res.Register(sub)
	if res.Err != nil {
		return res
	}

	end := cases[len(cases)-1].Cond.Span().End
	if elseCase != nil {
		end = elseCase.Body.Span().End
	}
	return res.Success(&IfNode{
		Cases: cases,
		Else:  elseCase,
		Loc:   source.NewSpan(cases[0].Cond.Span().Start, end),
	})
}

// ifCases parses an IF or ELIF clause plus everything chained after it.
func (p *Parser) ifCases(keyword string, inFunc, inLoop bool) ([]IfCase, *ElseCase, *ParseResult) {
	res := &ParseResult{}

	if !p.cur.Matches(TokenKeyword, keyword) {
		return nil, nil, res.Failure(p.syntaxErr(fmt.Sprintf("Expected '%s'", keyword)))
	}
	res.RegisterAdvancement()
	p.advance()

	cond := res.Register(p.expr(inFunc, inLoop))
	if res.Err != nil {
		return nil, nil, res
	}

	if !p.cur.Matches(TokenKeyword, "THEN") {
		return nil, nil, res.Failure(p.syntaxErr(source.MsgThenExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type == TokenNewline {
		// Multi-line form: THEN followed by a newline. The branch always
		// evaluates to the unit value.
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.statements(inFunc, inLoop))
		if res.Err != nil {
			return nil, nil, res
		}
		cases := []IfCase{{Cond: cond, Body: body, IsStatement: true}}

		if p.cur.Matches(TokenKeyword, "END") {
			res.RegisterAdvancement()
			p.advance()
			return cases, nil, res
		}

		more, elseCase, sub := p.elifOrElse(inFunc, inLoop)
		res.Register(sub)
		if res.Err != nil {
			return nil, nil, res
		}
		return append(cases, more...), elseCase, res
	}

	body := res.Register(p.statement(inFunc, inLoop))
	if res.Err != nil {
		return nil, nil, res
	}
	cases := []IfCase{{Cond: cond, Body: body}}

	more, elseCase, sub := p.elifOrElse(inFunc, inLoop)
	res.Register(sub)
	if res.Err != nil {
		return nil, nil, res
	}
	return append(cases, more...), elseCase, res
}

func (p *Parser) elifOrElse(inFunc, inLoop bool) ([]IfCase, *ElseCase, *ParseResult) {
	if p.cur.Matches(TokenKeyword, "ELIF") {
		return p.ifCases("ELIF", inFunc, inLoop)
	}
	res := &ParseResult{}
	elseCase, sub := p.elseCase(inFunc, inLoop)
	res.Register(sub)
	if res.Err != nil {
		return nil, nil, res
	}
	return nil, elseCase, res
}

func (p *Parser) elseCase(inFunc, inLoop bool) (*ElseCase, *ParseResult) {
	res := &ParseResult{}
	if !p.cur.Matches(TokenKeyword, "ELSE") {
		return nil, res
	}
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type == TokenNewline {
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.statements(inFunc, inLoop))
		if res.Err != nil {
			return nil, res
		}
		if !p.cur.Matches(TokenKeyword, "END") {
			return nil, res.Failure(p.syntaxErr(source.MsgEndExpected))
		}
		res.RegisterAdvancement()
		p.advance()
		return &ElseCase{Body: body, IsStatement: true}, res
	}

	body := res.Register(p.statement(inFunc, inLoop))
	if res.Err != nil {
		return nil, res
	}
	return &ElseCase{Body: body}, res
}

func (p *Parser) forExpr(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	start := p.cur.Span.Start

	if !p.cur.Matches(TokenKeyword, "FOR") {
		return res.Failure(p.syntaxErr(source.MsgForExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type != TokenIdentifier {
		return res.Failure(p.syntaxErr(source.MsgIdentifierExpected))
	}
	varName := p.cur
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type != TokenAssign {
		return res.Failure(p.syntaxErr(source.MsgEqualExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	startValue := res.Register(p.expr(inFunc, inLoop))
	if res.Err != nil {
		return res
	}

	if !p.cur.Matches(TokenKeyword, "TO") {
		return res.Failure(p.syntaxErr(source.MsgToExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	endValue := res.Register(p.expr(inFunc, inLoop))
	if res.Err != nil {
		return res
	}

	var stepValue Node
	if p.cur.Matches(TokenKeyword, "STEP") {
		res.RegisterAdvancement()
		p.advance()

		stepValue = res.Register(p.expr(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
	}

	if !p.cur.Matches(TokenKeyword, "THEN") {
		return res.Failure(p.syntaxErr(source.MsgThenExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type != TokenNewline {
		body := res.Register(p.statement(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		return res.Success(&ForNode{
			VarName: varName,
			Start:   startValue,
			End:     endValue,
			Step:    stepValue,
			Body:    body,
			Loc:     source.NewSpan(start, body.Span().End),
		})
	}

	res.RegisterAdvancement()
	p.advance()

	body := res.Register(p.statements(inFunc, inLoop))
	if res.Err != nil {
		return res
	}

	if !p.cur.Matches(TokenKeyword, "END") {
		return res.Failure(p.syntaxErr(source.MsgEndExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	return res.Success(&ForNode{
		VarName:     varName,
		Start:       startValue,
		End:         endValue,
		Step:        stepValue,
		Body:        body,
		IsStatement: true,
		Loc:         source.NewSpan(start, body.Span().End),
	})
}

func (p *Parser) whileExpr(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	start := p.cur.Span.Start

	if !p.cur.Matches(TokenKeyword, "WHILE") {
		return res.Failure(p.syntaxErr(source.MsgWhileExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	cond := res.Register(p.expr(inFunc, inLoop))
	if res.Err != nil {
		return res
	}

	if !p.cur.Matches(TokenKeyword, "THEN") {
		return res.Failure(p.syntaxErr(source.MsgThenExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type != TokenNewline {
		body := res.Register(p.statement(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		return res.Success(&WhileNode{
			Cond: cond,
			Body: body,
			Loc:  source.NewSpan(start, body.Span().End),
		})
	}

	res.RegisterAdvancement()
	p.advance()

	body := res.Register(p.statements(inFunc, inLoop))
	if res.Err != nil {
		return res
	}

	if !p.cur.Matches(TokenKeyword, "END") {
		return res.Failure(p.syntaxErr(source.MsgEndExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	return res.Success(&WhileNode{
		Cond:        cond,
		Body:        body,
		IsStatement: true,
		Loc:         source.NewSpan(start, body.Span().End),
	})
}

func (p *Parser) funcDef(inFunc, inLoop bool) *ParseResult {
	res := &ParseResult{}
	start := p.cur.Span.Start

	if !p.cur.Matches(TokenKeyword, "FUN") {
		return res.Failure(p.syntaxErr(source.MsgFunExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	var name *Token
	if p.cur.Type == TokenIdentifier {
		tok := p.cur
		name = &tok
		res.RegisterAdvancement()
		p.advance()
		if p.cur.Type != TokenLParen {
			return res.Failure(p.syntaxErr(source.MsgLParenExpected))
		}
	} else if p.cur.Type != TokenLParen {
		return res.Failure(p.syntaxErr(source.MsgIdentLParenExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.cur.Type != TokenIdentifier && p.cur.Type != TokenRParen {
		return res.Failure(p.syntaxErr(source.MsgIdentRParenExpected))
	}

	params, err := p.funcParams(res, name)
	if err != nil {
		return res.Failure(err)
	}

	if p.cur.Type == TokenArrow {
		res.RegisterAdvancement()
		p.advance()

		// The body of a new function definition: in-function, not in-loop.
		body := res.Register(p.expr(true, false))
		if res.Err != nil {
			return res
		}
		return res.Success(&FuncDefNode{
			Name:       name,
			Params:     params,
			Body:       body,
			AutoReturn: true,
			Loc:        source.NewSpan(start, body.Span().End),
		})
	}

	if p.cur.Type != TokenNewline {
		return res.Failure(p.syntaxErr(source.MsgArrowNewlineExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	body := res.Register(p.statements(true, false))
	if res.Err != nil {
		return res
	}

	if !p.cur.Matches(TokenKeyword, "END") {
		return res.Failure(p.syntaxErr(source.MsgEndExpected))
	}
	res.RegisterAdvancement()
	p.advance()

	return res.Success(&FuncDefNode{
		Name:   name,
		Params: params,
		Body:   body,
		Loc:    source.NewSpan(start, body.Span().End),
	})
}

// funcParams parses the parenthesised parameter list, rejecting
// duplicate names and a parameter reusing the function's own name, and
// leaves the cursor past the closing parenthesis.
func (p *Parser) funcParams(res *ParseResult, name *Token) ([]Token, error) {
	if p.cur.Type == TokenRParen {
		res.RegisterAdvancement()
		p.advance()
		return nil, nil
	}

	var params []Token
	seen := map[string]bool{}

	for {
		if p.cur.Type != TokenIdentifier {
			return nil, p.syntaxErr(source.MsgIdentifierExpected)
		}
		if seen[p.cur.Value] {
			return nil, p.syntaxErr(fmt.Sprintf(
				"Duplicate parameter '%s' in function definition", p.cur.Value))
		}
		if name != nil && p.cur.Value == name.Value {
			return nil, p.syntaxErr(fmt.Sprintf(
				"Duplicate parameter '%s'. A parameter cannot share the same name as the function name",
				name.Value))
		}
		params = append(params, p.cur)
		seen[p.cur.Value] = true
		res.RegisterAdvancement()
		p.advance()

		if p.cur.Type != TokenComma {
			break
		}
		res.RegisterAdvancement()
		p.advance()
	}

	if p.cur.Type != TokenRParen {
		return nil, p.syntaxErr(source.MsgCommaRParenExpected)
	}
	res.RegisterAdvancement()
	p.advance()
	return params, nil
}

type parseFn func(inFunc, inLoop bool) *ParseResult

// binOp parses left-associative binary operator chains. rightFn, when
// non-nil, parses the right operand instead of leftFn (used by power
// for right associativity).
func (p *Parser) binOp(inFunc, inLoop bool, leftFn parseFn, match func(Token) bool, rightFn parseFn) *ParseResult {
	if rightFn == nil {
		rightFn = leftFn
	}
	res := &ParseResult{}

	left := res.Register(leftFn(inFunc, inLoop))
	if res.Err != nil {
		return res
	}

	for match(p.cur) {
		op := p.cur
		res.RegisterAdvancement()
		p.advance()

		right := res.Register(rightFn(inFunc, inLoop))
		if res.Err != nil {
			return res
		}
		left = &BinOpNode{Left: left, Op: op, Right: right}
	}
	return res.Success(left)
}
