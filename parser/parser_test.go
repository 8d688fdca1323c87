package parser

import (
	"strings"
	"testing"

	"github.com/vkuzmin/basil/source"
)

func parseProgram(t *testing.T, src string) *ListNode {
	t.Helper()
	node, err := Parse("<test>", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	list, ok := node.(*ListNode)
	if !ok {
		t.Fatalf("expected *ListNode at top level, got %T", node)
	}
	return list
}

func parseSingle(t *testing.T, src string) Node {
	t.Helper()
	list := parseProgram(t, src)
	if len(list.Elements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(list.Elements))
	}
	return list.Elements[0]
}

func parseErr(t *testing.T, src, want string) {
	t.Helper()
	_, err := Parse("<test>", src)
	if err == nil {
		t.Fatalf("expected parse error for %q", src)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not contain %q", err.Error(), want)
	}
}

func asBinOp(t *testing.T, node Node) *BinOpNode {
	t.Helper()
	bin, ok := node.(*BinOpNode)
	if !ok {
		t.Fatalf("expected *BinOpNode, got %T", node)
	}
	return bin
}

func numValue(t *testing.T, node Node) float64 {
	t.Helper()
	num, ok := node.(*NumberNode)
	if !ok {
		t.Fatalf("expected *NumberNode, got %T", node)
	}
	return num.Tok.Num
}

func TestParsePrecedence(t *testing.T) {
	bin := asBinOp(t, parseSingle(t, "1 + 2 * 3"))
	if bin.Op.Type != TokenPlus {
		t.Fatalf("top operator: got %v, want +", bin.Op.Type)
	}
	if got := numValue(t, bin.Left); got != 1 {
		t.Errorf("left: got %v, want 1", got)
	}
	right := asBinOp(t, bin.Right)
	if right.Op.Type != TokenStar {
		t.Fatalf("inner operator: got %v, want *", right.Op.Type)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	bin := asBinOp(t, parseSingle(t, "2 ^ 3 ^ 2"))
	if bin.Op.Type != TokenCaret {
		t.Fatalf("top operator: got %v, want ^", bin.Op.Type)
	}
	if got := numValue(t, bin.Left); got != 2 {
		t.Errorf("left: got %v, want 2", got)
	}
	inner := asBinOp(t, bin.Right)
	if numValue(t, inner.Left) != 3 || numValue(t, inner.Right) != 2 {
		t.Errorf("right side should be 3 ^ 2, got %v ^ %v",
			numValue(t, inner.Left), numValue(t, inner.Right))
	}
}

func TestParseUnaryMinus(t *testing.T) {
	unary, ok := parseSingle(t, "-5").(*UnaryOpNode)
	if !ok {
		t.Fatalf("expected *UnaryOpNode")
	}
	if unary.Op.Type != TokenMinus {
		t.Errorf("op: got %v, want -", unary.Op.Type)
	}
	if numValue(t, unary.Operand) != 5 {
		t.Errorf("operand: got %v, want 5", numValue(t, unary.Operand))
	}
}

func TestParseVarAssignment(t *testing.T) {
	assign, ok := parseSingle(t, "VAR x = 1 + 2").(*VarAssignNode)
	if !ok {
		t.Fatalf("expected *VarAssignNode")
	}
	if assign.Name.Value != "x" {
		t.Errorf("name: got %q, want %q", assign.Name.Value, "x")
	}
	asBinOp(t, assign.Value)
}

func TestParseComparisonAndLogic(t *testing.T) {
	bin := asBinOp(t, parseSingle(t, "1 < 2 AND 3 == 3"))
	if !bin.Op.Matches(TokenKeyword, "AND") {
		t.Fatalf("top operator: got %v %q, want AND", bin.Op.Type, bin.Op.Value)
	}
	if asBinOp(t, bin.Left).Op.Type != TokenLess {
		t.Errorf("left side should be a '<' comparison")
	}
	if asBinOp(t, bin.Right).Op.Type != TokenEqEq {
		t.Errorf("right side should be a '==' comparison")
	}
}

func TestParseNotPrefix(t *testing.T) {
	unary, ok := parseSingle(t, "NOT 1 == 2").(*UnaryOpNode)
	if !ok {
		t.Fatalf("expected *UnaryOpNode at top")
	}
	if !unary.Op.Matches(TokenKeyword, "NOT") {
		t.Errorf("op: got %q, want NOT", unary.Op.Value)
	}
	asBinOp(t, unary.Operand)
}

func TestParseCall(t *testing.T) {
	call, ok := parseSingle(t, "f(1, 2)").(*CallNode)
	if !ok {
		t.Fatalf("expected *CallNode")
	}
	if _, ok := call.Callee.(*VarAccessNode); !ok {
		t.Errorf("callee: expected *VarAccessNode, got %T", call.Callee)
	}
	if len(call.Args) != 2 {
		t.Errorf("args: got %d, want 2", len(call.Args))
	}
}

func TestParseEmptyCall(t *testing.T) {
	call, ok := parseSingle(t, "f()").(*CallNode)
	if !ok {
		t.Fatalf("expected *CallNode")
	}
	if len(call.Args) != 0 {
		t.Errorf("args: got %d, want 0", len(call.Args))
	}
}

func TestParseListLiteral(t *testing.T) {
	list, ok := parseSingle(t, "[1, 2, 3]").(*ListNode)
	if !ok {
		t.Fatalf("expected *ListNode")
	}
	if len(list.Elements) != 3 {
		t.Errorf("elements: got %d, want 3", len(list.Elements))
	}

	empty, ok := parseSingle(t, "[]").(*ListNode)
	if !ok {
		t.Fatalf("expected *ListNode for empty literal")
	}
	if len(empty.Elements) != 0 {
		t.Errorf("empty literal: got %d elements", len(empty.Elements))
	}
}

func TestParseIfSingleLine(t *testing.T) {
	node, ok := parseSingle(t, "IF 1 THEN 2 ELIF 3 THEN 4 ELSE 5").(*IfNode)
	if !ok {
		t.Fatalf("expected *IfNode")
	}
	if len(node.Cases) != 2 {
		t.Fatalf("cases: got %d, want 2", len(node.Cases))
	}
	if node.Cases[0].IsStatement || node.Cases[1].IsStatement {
		t.Errorf("single-line branches must not be statements")
	}
	if node.Else == nil || node.Else.IsStatement {
		t.Errorf("single-line ELSE must be an expression branch")
	}
}

func TestParseIfMultiLine(t *testing.T) {
	src := "IF 1 THEN\n2\nELSE\n3\nEND"
	node, ok := parseSingle(t, src).(*IfNode)
	if !ok {
		t.Fatalf("expected *IfNode")
	}
	if !node.Cases[0].IsStatement {
		t.Errorf("multi-line THEN branch must be a statement")
	}
	if node.Else == nil || !node.Else.IsStatement {
		t.Errorf("multi-line ELSE branch must be a statement")
	}
}

func TestParseForLoop(t *testing.T) {
	node, ok := parseSingle(t, "FOR i = 0 TO 10 STEP 2 THEN i").(*ForNode)
	if !ok {
		t.Fatalf("expected *ForNode")
	}
	if node.VarName.Value != "i" {
		t.Errorf("loop variable: got %q, want %q", node.VarName.Value, "i")
	}
	if node.Step == nil {
		t.Errorf("STEP clause was dropped")
	}
	if node.IsStatement {
		t.Errorf("single-line FOR must be an expression")
	}

	multi, ok := parseSingle(t, "FOR i = 0 TO 3 THEN\ni\nEND").(*ForNode)
	if !ok {
		t.Fatalf("expected *ForNode for multi-line form")
	}
	if multi.Step != nil {
		t.Errorf("STEP should be nil when omitted")
	}
	if !multi.IsStatement {
		t.Errorf("multi-line FOR must be a statement")
	}
}

func TestParseWhileLoop(t *testing.T) {
	node, ok := parseSingle(t, "WHILE x < 10 THEN VAR x = x + 1").(*WhileNode)
	if !ok {
		t.Fatalf("expected *WhileNode")
	}
	if node.IsStatement {
		t.Errorf("single-line WHILE must be an expression")
	}
}

func TestParseFuncDefArrow(t *testing.T) {
	node, ok := parseSingle(t, "FUN add(a, b) -> a + b").(*FuncDefNode)
	if !ok {
		t.Fatalf("expected *FuncDefNode")
	}
	if node.Name == nil || node.Name.Value != "add" {
		t.Errorf("name not captured")
	}
	if len(node.Params) != 2 {
		t.Errorf("params: got %d, want 2", len(node.Params))
	}
	if !node.AutoReturn {
		t.Errorf("arrow form must auto-return")
	}
}

func TestParseFuncDefBlock(t *testing.T) {
	node, ok := parseSingle(t, "FUN f()\nRETURN 1\nEND").(*FuncDefNode)
	if !ok {
		t.Fatalf("expected *FuncDefNode")
	}
	if node.AutoReturn {
		t.Errorf("block form must not auto-return")
	}
}

func TestParseAnonymousFunc(t *testing.T) {
	node, ok := parseSingle(t, "FUN (x) -> x").(*FuncDefNode)
	if !ok {
		t.Fatalf("expected *FuncDefNode")
	}
	if node.Name != nil {
		t.Errorf("anonymous function should have no name, got %q", node.Name.Value)
	}
}

func TestParseStatementList(t *testing.T) {
	list := parseProgram(t, "VAR x = 1\nVAR y = 2\n\nx + y")
	if len(list.Elements) != 3 {
		t.Fatalf("statements: got %d, want 3", len(list.Elements))
	}
}

func TestParseReturnOutsideFunction(t *testing.T) {
	parseErr(t, "RETURN 1", source.MsgBadReturn)
}

func TestParseContinueOutsideLoop(t *testing.T) {
	parseErr(t, "CONTINUE", source.MsgBadContinue)
}

func TestParseBreakOutsideLoop(t *testing.T) {
	parseErr(t, "BREAK", source.MsgBadBreak)
}

func TestParseContinueInsideLoop(t *testing.T) {
	node, ok := parseSingle(t, "FOR i = 0 TO 3 THEN CONTINUE").(*ForNode)
	if !ok {
		t.Fatalf("expected *ForNode")
	}
	if _, ok := node.Body.(*ContinueNode); !ok {
		t.Errorf("body: expected *ContinueNode, got %T", node.Body)
	}
}

func TestParseDuplicateParam(t *testing.T) {
	parseErr(t, "FUN f(a, a) -> a", "Duplicate parameter 'a' in function definition")
}

func TestParseParamSharesFunctionName(t *testing.T) {
	parseErr(t, "FUN f(f) -> f",
		"Duplicate parameter 'f'. A parameter cannot share the same name as the function name")
}

func TestParseImport(t *testing.T) {
	node, ok := parseSingle(t, `IMPORT "lib.bsl"`).(*ImportNode)
	if !ok {
		t.Fatalf("expected *ImportNode")
	}
	if _, ok := node.Path.(*StringNode); !ok {
		t.Errorf("path: expected *StringNode, got %T", node.Path)
	}
}

func TestParseImportNeedsString(t *testing.T) {
	parseErr(t, "IMPORT 123", source.MsgStringExpected)
}

func TestParseDanglingOperator(t *testing.T) {
	// The deepest failure wins once tokens were consumed.
	parseErr(t, "1 +", source.MsgAtomSyntax)
}

func TestParseLeftoverTokens(t *testing.T) {
	// The second statement fails after consuming its VAR keyword; the
	// statement list rewinds and stops, and the top level rejects the
	// remaining tokens.
	parseErr(t, "VAR x = 1\nVAR = 2", source.MsgTokensOutOfPlace)
}

func TestParseMissingRParen(t *testing.T) {
	parseErr(t, "(1 + 2", source.MsgRParenExpected)
}

func TestParseVarNeedsIdentifier(t *testing.T) {
	parseErr(t, "VAR 1 = 2", source.MsgIdentifierExpected)
}

func TestParseVarNeedsEquals(t *testing.T) {
	parseErr(t, "VAR x 2", source.MsgEqualExpected)
}

func TestParseForNeedsTo(t *testing.T) {
	parseErr(t, "FOR i = 0 THEN i", source.MsgToExpected)
}

func TestParseMissingEnd(t *testing.T) {
	parseErr(t, "WHILE 1 THEN\nBREAK\n", source.MsgEndExpected)
}
