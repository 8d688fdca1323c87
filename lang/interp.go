package lang

import (
	"fmt"

	"github.com/vkuzmin/basil/parser"
	"github.com/vkuzmin/basil/source"
)

// ImportFunc runs another script against ctx, sharing its symbol table.
// entry is the import site in the importing script. A non-nil error
// carries the user-facing details reported at that site; otherwise the
// returned result is the imported program's full evaluation result.
type ImportFunc func(path string, ctx *Context, entry source.Position) (*RTResult, error)

// Interpreter walks an AST, evaluating each node against a Context.
// Import is wired by the runtime layer so the evaluator itself performs
// no file I/O; left nil, IMPORT statements fail cleanly.
type Interpreter struct {
	Import ImportFunc
}

// Visit evaluates node against ctx, producing a value or a propagating
// error/return/break/continue signal.
func (in *Interpreter) Visit(node parser.Node, ctx *Context) *RTResult {
	switch n := node.(type) {
	case *parser.NumberNode:
		return in.visitNumber(n, ctx)
	case *parser.StringNode:
		return in.visitString(n, ctx)
	case *parser.ListNode:
		return in.visitList(n, ctx)
	case *parser.VarAccessNode:
		return in.visitVarAccess(n, ctx)
	case *parser.VarAssignNode:
		return in.visitVarAssign(n, ctx)
	case *parser.BinOpNode:
		return in.visitBinOp(n, ctx)
	case *parser.UnaryOpNode:
		return in.visitUnaryOp(n, ctx)
	case *parser.IfNode:
		return in.visitIf(n, ctx)
	case *parser.ForNode:
		return in.visitFor(n, ctx)
	case *parser.WhileNode:
		return in.visitWhile(n, ctx)
	case *parser.FuncDefNode:
		return in.visitFuncDef(n, ctx)
	case *parser.CallNode:
		return in.visitCall(n, ctx)
	case *parser.ReturnNode:
		return in.visitReturn(n, ctx)
	case *parser.ContinueNode:
		return (&RTResult{}).SuccessContinue()
	case *parser.BreakNode:
		return (&RTResult{}).SuccessBreak()
	case *parser.ImportNode:
		return in.visitImport(n, ctx)
	default:
		panic(fmt.Sprintf("no visit method for %T", node))
	}
}

func (in *Interpreter) visitNumber(node *parser.NumberNode, ctx *Context) *RTResult {
	return (&RTResult{}).Success(
		newNumber(node.Tok.Num, node.IsInt()).SetContext(ctx).SetSpan(node.Span()))
}

func (in *Interpreter) visitString(node *parser.StringNode, ctx *Context) *RTResult {
	return (&RTResult{}).Success(
		NewString(node.Tok.Value).SetContext(ctx).SetSpan(node.Span()))
}

func (in *Interpreter) visitList(node *parser.ListNode, ctx *Context) *RTResult {
	res := &RTResult{}
	elements := make([]*Value, 0, len(node.Elements))

	for _, elem := range node.Elements {
		elements = append(elements, res.Register(in.Visit(elem, ctx)))
		if res.ShouldReturn() {
			return res
		}
	}
	return res.Success(NewList(elements).SetContext(ctx).SetSpan(node.Span()))
}

func (in *Interpreter) visitVarAccess(node *parser.VarAccessNode, ctx *Context) *RTResult {
	res := &RTResult{}
	name := node.Name.Value

	value, ok := ctx.SymbolTable.Get(name)
	if !ok {
		return res.Failure(NewRuntimeError(node.Span().Start, node.Span().End,
			fmt.Sprintf("'%s' is not defined", name), ctx))
	}

	// Copy before re-stamping so a shared binding is never mutated.
	value = value.Copy().SetSpan(node.Span()).SetContext(ctx)
	return res.Success(value)
}

func (in *Interpreter) visitVarAssign(node *parser.VarAssignNode, ctx *Context) *RTResult {
	res := &RTResult{}
	value := res.Register(in.Visit(node.Value, ctx))
	if res.ShouldReturn() {
		return res
	}

	ctx.SymbolTable.Set(node.Name.Value, value)
	return res.Success(value)
}

func (in *Interpreter) visitBinOp(node *parser.BinOpNode, ctx *Context) *RTResult {
	res := &RTResult{}
	left := res.Register(in.Visit(node.Left, ctx))
	if res.ShouldReturn() {
		return res
	}
	right := res.Register(in.Visit(node.Right, ctx))
	if res.ShouldReturn() {
		return res
	}

	var value *Value
	var err *RuntimeError

	switch {
	case node.Op.Type == parser.TokenPlus:
		value, err = left.AddedTo(right)
	case node.Op.Type == parser.TokenMinus:
		value, err = left.SubtractedBy(right)
	case node.Op.Type == parser.TokenStar:
		value, err = left.MultipliedBy(right)
	case node.Op.Type == parser.TokenSlash:
		value, err = left.DividedBy(right)
	case node.Op.Type == parser.TokenPercent:
		value, err = left.ModulusedBy(right)
	case node.Op.Type == parser.TokenCaret:
		value, err = left.PoweredBy(right)
	case node.Op.Type == parser.TokenEqEq:
		value, err = left.ComparisonEq(right)
	case node.Op.Type == parser.TokenNotEq:
		value, err = left.ComparisonNe(right)
	case node.Op.Type == parser.TokenLess:
		value, err = left.ComparisonLt(right)
	case node.Op.Type == parser.TokenGreater:
		value, err = left.ComparisonGt(right)
	case node.Op.Type == parser.TokenLessEq:
		value, err = left.ComparisonLte(right)
	case node.Op.Type == parser.TokenGreaterEq:
		value, err = left.ComparisonGte(right)
	case node.Op.Matches(parser.TokenKeyword, "AND"):
		value, err = left.AndedBy(right)
	case node.Op.Matches(parser.TokenKeyword, "OR"):
		value, err = left.OredBy(right)
	}

	if err != nil {
		return res.Failure(err)
	}
	return res.Success(value.SetSpan(node.Span()))
}

func (in *Interpreter) visitUnaryOp(node *parser.UnaryOpNode, ctx *Context) *RTResult {
	res := &RTResult{}
	value := res.Register(in.Visit(node.Operand, ctx))
	if res.ShouldReturn() {
		return res
	}

	var err *RuntimeError
	if node.Op.Type == parser.TokenMinus {
		value, err = value.MultipliedBy(NewInt(-1))
	} else if node.Op.Matches(parser.TokenKeyword, "NOT") {
		value, err = value.Notted()
	}

	if err != nil {
		return res.Failure(err)
	}
	return res.Success(value.SetSpan(node.Span()))
}

func (in *Interpreter) visitIf(node *parser.IfNode, ctx *Context) *RTResult {
	res := &RTResult{}

	for _, c := range node.Cases {
		condValue := res.Register(in.Visit(c.Cond, ctx))
		if res.ShouldReturn() {
			return res
		}
		if !condValue.IsTrue() {
			continue
		}

		branchValue := res.Register(in.Visit(c.Body, ctx))
		if res.ShouldReturn() {
			return res
		}
		if c.IsStatement {
			return res.Success(NumberNone)
		}
		return res.Success(branchValue)
	}

	if node.Else != nil {
		branchValue := res.Register(in.Visit(node.Else.Body, ctx))
		if res.ShouldReturn() {
			return res
		}
		if node.Else.IsStatement {
			return res.Success(NumberNone)
		}
		return res.Success(branchValue)
	}

	return res.Success(NumberNone)
}

func (in *Interpreter) visitFor(node *parser.ForNode, ctx *Context) *RTResult {
	res := &RTResult{}
	var elements []*Value

	startValue := res.Register(in.Visit(node.Start, ctx))
	if res.ShouldReturn() {
		return res
	}
	endValue := res.Register(in.Visit(node.End, ctx))
	if res.ShouldReturn() {
		return res
	}

	stepValue := NewInt(1)
	if node.Step != nil {
		stepValue = res.Register(in.Visit(node.Step, ctx))
		if res.ShouldReturn() {
			return res
		}
	}

	i := startValue.num
	isInt := startValue.isInt && stepValue.isInt

	for {
		var more bool
		if stepValue.num >= 0 {
			more = i < endValue.num
		} else {
			more = i > endValue.num
		}
		if !more {
			break
		}

		// The loop variable is rebound before the increment, so the body
		// sees this iteration's value.
		ctx.SymbolTable.Set(node.VarName.Value, newNumber(i, isInt).SetContext(ctx))
		i += stepValue.num

		value := res.Register(in.Visit(node.Body, ctx))
		if res.ShouldReturn() && !res.LoopContinue && !res.LoopBreak {
			return res
		}
		if res.LoopContinue {
			continue
		}
		if res.LoopBreak {
			break
		}
		elements = append(elements, value)
	}

	if node.IsStatement {
		return res.Success(NumberNone)
	}
	return res.Success(NewList(elements).SetContext(ctx).SetSpan(node.Span()))
}

func (in *Interpreter) visitWhile(node *parser.WhileNode, ctx *Context) *RTResult {
	res := &RTResult{}
	var elements []*Value

	for {
		cond := res.Register(in.Visit(node.Cond, ctx))
		if res.ShouldReturn() {
			return res
		}
		if !cond.IsTrue() {
			break
		}

		value := res.Register(in.Visit(node.Body, ctx))
		if res.ShouldReturn() && !res.LoopContinue && !res.LoopBreak {
			return res
		}
		if res.LoopContinue {
			continue
		}
		if res.LoopBreak {
			break
		}
		elements = append(elements, value)
	}

	if node.IsStatement {
		return res.Success(NumberNone)
	}
	return res.Success(NewList(elements).SetContext(ctx).SetSpan(node.Span()))
}

func (in *Interpreter) visitFuncDef(node *parser.FuncDefNode, ctx *Context) *RTResult {
	res := &RTResult{}

	name := ""
	if node.Name != nil {
		name = node.Name.Value
	}
	params := make([]string, len(node.Params))
	for i, p := range node.Params {
		params[i] = p.Value
	}

	fn := NewFunction(name, node.Body, params, node.AutoReturn).
		SetContext(ctx).SetSpan(node.Span())

	// A named function is bound in the defining scope, making it a
	// first-class value like any other.
	if node.Name != nil {
		ctx.SymbolTable.Set(name, fn)
	}
	return res.Success(fn)
}

func (in *Interpreter) visitCall(node *parser.CallNode, ctx *Context) *RTResult {
	res := &RTResult{}
	var args []*Value

	callee := res.Register(in.Visit(node.Callee, ctx))
	if res.ShouldReturn() {
		return res
	}
	// Copy the callee before stamping the call site so repeated calls to
	// one function value don't corrupt shared position state.
	callee = callee.Copy().SetSpan(node.Span())

	for _, argNode := range node.Args {
		args = append(args, res.Register(in.Visit(argNode, ctx)))
		if res.ShouldReturn() {
			return res
		}
	}

	returnValue := res.Register(in.execute(callee, args))
	if res.ShouldReturn() {
		return res
	}

	returnValue = returnValue.Copy().SetSpan(node.Span()).SetContext(ctx)
	return res.Success(returnValue)
}

func (in *Interpreter) visitReturn(node *parser.ReturnNode, ctx *Context) *RTResult {
	res := &RTResult{}

	value := NumberNone
	if node.Value != nil {
		value = res.Register(in.Visit(node.Value, ctx))
		if res.ShouldReturn() {
			return res
		}
	}
	return res.SuccessReturn(value)
}

func (in *Interpreter) visitImport(node *parser.ImportNode, ctx *Context) *RTResult {
	res := &RTResult{}

	path := res.Register(in.Visit(node.Path, ctx))
	if res.ShouldReturn() {
		return res
	}

	if in.Import == nil {
		return res.Failure(NewRuntimeError(node.Path.Span().Start, node.Path.Span().End,
			fmt.Sprintf("Can't find file '%s'", path.Text()), ctx))
	}

	runRes, err := in.Import(path.Text(), ctx, node.Span().Start)
	if err != nil {
		return res.Failure(NewRuntimeError(node.Path.Span().Start, node.Path.Span().End,
			err.Error(), ctx))
	}

	res.Register(runRes)
	if res.Err != nil {
		return res
	}
	return res.Success(NumberNone)
}

// execute invokes a function or built-in value with args.
func (in *Interpreter) execute(callee *Value, args []*Value) *RTResult {
	switch callee.Type {
	case FunctionType:
		return in.executeFunction(callee, args)
	case BuiltinType:
		return in.executeBuiltin(callee, args)
	default:
		return (&RTResult{}).Failure(callee.illegalOp(nil))
	}
}

func (in *Interpreter) executeFunction(fn *Value, args []*Value) *RTResult {
	res := &RTResult{}
	exec := fn.newCallContext()

	res.Register(checkAndPopulateParams(fn, fn.fn.params, args, exec))
	if res.ShouldReturn() {
		return res
	}

	value := res.Register(in.Visit(fn.fn.body, exec))
	if res.ShouldReturn() && res.FuncReturn == nil {
		return res
	}

	ret := NumberNone
	if fn.fn.autoReturn && value != nil {
		ret = value
	} else if res.FuncReturn != nil {
		ret = res.FuncReturn
	}
	return res.Success(ret)
}

func (in *Interpreter) executeBuiltin(fn *Value, args []*Value) *RTResult {
	res := &RTResult{}
	exec := fn.newCallContext()

	res.Register(checkAndPopulateParams(fn, fn.builtin.params, args, exec))
	if res.ShouldReturn() {
		return res
	}

	value := res.Register(fn.builtin.handler(fn, exec))
	if res.ShouldReturn() {
		return res
	}
	return res.Success(value)
}

// newCallContext builds the frame for one invocation: a fresh scope
// under the function's captured defining scope.
func (v *Value) newCallContext() *Context {
	entry := v.span.Start
	exec := NewContext(v.Name(), v.ctx, &entry)
	var parent *SymbolTable
	if v.ctx != nil {
		parent = v.ctx.SymbolTable
	}
	exec.SymbolTable = NewSymbolTable(parent)
	return exec
}

// checkAndPopulateParams verifies exact arity and binds each argument to
// its parameter name in the execution scope.
func checkAndPopulateParams(fn *Value, params []string, args []*Value, exec *Context) *RTResult {
	res := &RTResult{}

	if len(args) > len(params) {
		return res.Failure(NewRuntimeError(fn.span.Start, fn.span.End,
			fmt.Sprintf("%d too many args passed into %s", len(args)-len(params), fn.Repr()),
			fn.ctx))
	}
	if len(args) < len(params) {
		return res.Failure(NewRuntimeError(fn.span.Start, fn.span.End,
			fmt.Sprintf("%d too few args passed into %s", len(params)-len(args), fn.Repr()),
			fn.ctx))
	}

	for i, arg := range args {
		arg.SetContext(exec)
		exec.SymbolTable.Set(params[i], arg)
	}
	return res.Success(nil)
}
