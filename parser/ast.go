package parser

import "github.com/vkuzmin/basil/source"

// Node is an AST node. Every node carries the source span it was parsed
// from, derived from its children at construction time.
type Node interface {
	Span() source.Span
	node()
}

// NumberNode is an int or float literal.
type NumberNode struct {
	Tok Token
}

// IsInt reports whether the literal had no fractional or exponent part.
func (n *NumberNode) IsInt() bool { return n.Tok.Type == TokenInt }

// StringNode is a string literal with escapes already decoded.
type StringNode struct {
	Tok Token
}

// ListNode is a bracketed list literal.
type ListNode struct {
	Elements []Node
	Loc      source.Span
}

// VarAccessNode reads a variable.
type VarAccessNode struct {
	Name Token
}

// VarAssignNode is a VAR name = expr binding.
type VarAssignNode struct {
	Name  Token
	Value Node
	Loc   source.Span
}

// BinOpNode applies an infix operator.
type BinOpNode struct {
	Left  Node
	Op    Token
	Right Node
}

// UnaryOpNode applies a prefix operator (+, - or NOT).
type UnaryOpNode struct {
	Op      Token
	Operand Node
}

// IfCase is one condition/branch pair of an IF chain. IsStatement
// records the multi-line form, whose branch evaluates to the unit value
// instead of the branch expression's value.
type IfCase struct {
	Cond        Node
	Body        Node
	IsStatement bool
}

// ElseCase is the optional trailing ELSE branch.
type ElseCase struct {
	Body        Node
	IsStatement bool
}

// IfNode is an IF/ELIF/ELSE chain.
type IfNode struct {
	Cases []IfCase
	Else  *ElseCase
	Loc   source.Span
}

// ForNode is a FOR var = start TO end [STEP step] loop. Step is nil when
// the clause is absent.
type ForNode struct {
	VarName     Token
	Start       Node
	End         Node
	Step        Node
	Body        Node
	IsStatement bool
	Loc         source.Span
}

// WhileNode is a WHILE cond loop.
type WhileNode struct {
	Cond        Node
	Body        Node
	IsStatement bool
	Loc         source.Span
}

// FuncDefNode defines a function. Name is nil for the anonymous form.
// AutoReturn marks the arrow form, whose body expression's value is the
// function's return value.
type FuncDefNode struct {
	Name       *Token
	Params     []Token
	Body       Node
	AutoReturn bool
	Loc        source.Span
}

// CallNode applies a callee to arguments.
type CallNode struct {
	Callee Node
	Args   []Node
	Loc    source.Span
}

// ReturnNode returns from the enclosing function. Value is nil for a
// bare RETURN.
type ReturnNode struct {
	Value Node
	Loc   source.Span
}

// ContinueNode skips to the next iteration of the enclosing loop.
type ContinueNode struct {
	Loc source.Span
}

// BreakNode exits the enclosing loop.
type BreakNode struct {
	Loc source.Span
}

// ImportNode runs another script against the current scope.
type ImportNode struct {
	Path Node
	Loc  source.Span
}

func (n *NumberNode) Span() source.Span    { return n.Tok.Span }
func (n *StringNode) Span() source.Span    { return n.Tok.Span }
func (n *ListNode) Span() source.Span      { return n.Loc }
func (n *VarAccessNode) Span() source.Span { return n.Name.Span }
func (n *VarAssignNode) Span() source.Span { return n.Loc }
func (n *BinOpNode) Span() source.Span {
	return source.NewSpan(n.Left.Span().Start, n.Right.Span().End)
}
func (n *UnaryOpNode) Span() source.Span {
	return source.NewSpan(n.Op.Span.Start, n.Operand.Span().End)
}
func (n *IfNode) Span() source.Span       { return n.Loc }
func (n *ForNode) Span() source.Span      { return n.Loc }
func (n *WhileNode) Span() source.Span    { return n.Loc }
func (n *FuncDefNode) Span() source.Span  { return n.Loc }
func (n *CallNode) Span() source.Span     { return n.Loc }
func (n *ReturnNode) Span() source.Span   { return n.Loc }
func (n *ContinueNode) Span() source.Span { return n.Loc }
func (n *BreakNode) Span() source.Span    { return n.Loc }
func (n *ImportNode) Span() source.Span   { return n.Loc }

func (*NumberNode) node()    {}
func (*StringNode) node()    {}
func (*ListNode) node()      {}
func (*VarAccessNode) node() {}
func (*VarAssignNode) node() {}
func (*BinOpNode) node()     {}
func (*UnaryOpNode) node()   {}
func (*IfNode) node()        {}
func (*ForNode) node()       {}
func (*WhileNode) node()     {}
func (*FuncDefNode) node()   {}
func (*CallNode) node()      {}
func (*ReturnNode) node()    {}
func (*ContinueNode) node()  {}
func (*BreakNode) node()     {}
func (*ImportNode) node()    {}
