package lang

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vkuzmin/basil/parser"
	"github.com/vkuzmin/basil/source"
)

// ValueType tags the runtime variant held by a Value.
type ValueType int

const (
	NumberType ValueType = iota
	StringType
	ListType
	FunctionType
	BuiltinType
)

func (vt ValueType) String() string {
	switch vt {
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ListType:
		return "list"
	case FunctionType:
		return "function"
	case BuiltinType:
		return "built-in function"
	default:
		return "value"
	}
}

// listData is the backing storage of a List. Copy produces a new Value
// wrapper over the same listData, so in-place mutation through one
// wrapper is visible through every other.
type listData struct {
	elements []*Value
}

// funcData is the immutable part of a user-defined function.
type funcData struct {
	name       string
	body       parser.Node
	params     []string
	autoReturn bool
}

// BuiltinHandler is the host-side body of a built-in function. It runs
// against the call's execution context, whose scope holds the bound
// parameters. self is the callee wrapper, used for error attribution.
type BuiltinHandler func(self *Value, exec *Context) *RTResult

type builtinData struct {
	name    string
	params  []string
	handler BuiltinHandler
}

// Value is a runtime value: a Number, String, List, Function or built-in
// function. The span and Context are attribution for error reporting
// only; a Function's Context doubles as its captured defining scope.
type Value struct {
	Type ValueType

	num     float64
	isInt   bool
	str     string
	list    *listData
	fn      *funcData
	builtin *builtinData

	span source.Span
	ctx  *Context
}

// Shared constants bound in the global scope. They are never mutated
// through these references; consumers copy before re-stamping.
var (
	NumberNone  = NewInt(0)
	NumberFalse = NewInt(0)
	NumberTrue  = NewInt(1)
	NumberPi    = NewFloat(math.Pi)
)

// NewInt builds an integer Number.
func NewInt(n int) *Value {
	return &Value{Type: NumberType, num: float64(n), isInt: true}
}

// NewFloat builds a float Number.
func NewFloat(n float64) *Value {
	return &Value{Type: NumberType, num: n}
}

func newNumber(num float64, isInt bool) *Value {
	return &Value{Type: NumberType, num: num, isInt: isInt}
}

// NewString builds a String.
func NewString(s string) *Value {
	return &Value{Type: StringType, str: s}
}

// NewList builds a List over elements; the slice becomes the backing
// storage.
func NewList(elements []*Value) *Value {
	return &Value{Type: ListType, list: &listData{elements: elements}}
}

// NewFunction builds a user-defined function value. name is empty for
// the anonymous form.
func NewFunction(name string, body parser.Node, params []string, autoReturn bool) *Value {
	if name == "" {
		name = "<anonymous>"
	}
	return &Value{Type: FunctionType, fn: &funcData{
		name:       name,
		body:       body,
		params:     params,
		autoReturn: autoReturn,
	}}
}

// NewBuiltin builds a built-in function value dispatching to handler.
func NewBuiltin(name string, params []string, handler BuiltinHandler) *Value {
	return &Value{Type: BuiltinType, builtin: &builtinData{
		name:    name,
		params:  params,
		handler: handler,
	}}
}

// SetSpan re-stamps the value's source span.
func (v *Value) SetSpan(span source.Span) *Value {
	v.span = span
	return v
}

// SetContext re-stamps the owning Context. For function values the first
// Context sticks permanently: it is the captured defining scope that
// makes closures work, so later calls are no-ops.
func (v *Value) SetContext(ctx *Context) *Value {
	if (v.Type == FunctionType || v.Type == BuiltinType) && v.ctx != nil {
		return v
	}
	v.ctx = ctx
	return v
}

// Copy produces a new wrapper over the same payload. List backing
// storage is shared, not duplicated.
func (v *Value) Copy() *Value {
	c := *v
	return &c
}

// Span returns the value's source attribution span.
func (v *Value) Span() source.Span { return v.span }

// Ctx returns the value's owning Context.
func (v *Value) Ctx() *Context { return v.ctx }

// Num returns the numeric payload.
func (v *Value) Num() float64 { return v.num }

// IsInt reports whether a Number is integral.
func (v *Value) IsInt() bool { return v.isInt }

// Text returns the string payload.
func (v *Value) Text() string { return v.str }

// Name returns a function value's display name.
func (v *Value) Name() string {
	switch v.Type {
	case FunctionType:
		return v.fn.name
	case BuiltinType:
		return v.builtin.name
	default:
		return ""
	}
}

// Elements returns a List's backing elements.
func (v *Value) Elements() []*Value { return v.list.elements }

// ListLen returns a List's length.
func (v *Value) ListLen() int { return len(v.list.elements) }

// ListAppend appends to the backing storage in place.
func (v *Value) ListAppend(elem *Value) {
	v.list.elements = append(v.list.elements, elem)
}

// ListExtend appends all of other's elements to the backing storage.
func (v *Value) ListExtend(other *Value) {
	v.list.elements = append(v.list.elements, other.list.elements...)
}

// ListPop removes and returns the element at index, which may be
// negative to count from the end. Reports false when out of range.
func (v *Value) ListPop(index int) (*Value, bool) {
	n := len(v.list.elements)
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return nil, false
	}
	elem := v.list.elements[index]
	v.list.elements = append(v.list.elements[:index], v.list.elements[index+1:]...)
	return elem, true
}

// IsTrue reports language-level truthiness: a non-zero Number or a
// non-empty String. Other variants are never true.
func (v *Value) IsTrue() bool {
	switch v.Type {
	case NumberType:
		return v.num != 0
	case StringType:
		return len(v.str) > 0
	default:
		return false
	}
}

func (v *Value) illegalOp(other *Value) *RuntimeError {
	if other == nil {
		other = v
	}
	return NewRuntimeError(v.span.Start, other.span.End, "Illegal operation", v.ctx)
}

// AddedTo implements +: numeric addition, string concatenation, or
// appending an element through a new List wrapper.
func (v *Value) AddedTo(other *Value) (*Value, *RuntimeError) {
	switch {
	case v.Type == NumberType && other.Type == NumberType:
		return newNumber(v.num+other.num, v.isInt && other.isInt).SetContext(v.ctx), nil
	case v.Type == StringType && other.Type == StringType:
		return NewString(v.str + other.str).SetContext(v.ctx), nil
	case v.Type == ListType:
		nl := v.Copy()
		nl.list.elements = append(nl.list.elements, other)
		return nl, nil
	default:
		return nil, v.illegalOp(other)
	}
}

// SubtractedBy implements -: numeric subtraction, or removing a list
// element by index through a new wrapper.
func (v *Value) SubtractedBy(other *Value) (*Value, *RuntimeError) {
	switch {
	case v.Type == NumberType && other.Type == NumberType:
		return newNumber(v.num-other.num, v.isInt && other.isInt).SetContext(v.ctx), nil
	case v.Type == ListType && other.Type == NumberType:
		nl := v.Copy()
		if _, ok := nl.ListPop(int(other.num)); !ok {
			return nil, NewRuntimeError(other.span.Start, other.span.End,
				source.MsgListIndexError, v.ctx)
		}
		return nl, nil
	default:
		return nil, v.illegalOp(other)
	}
}

// MultipliedBy implements *: numeric multiplication, string repetition,
// or list concatenation through a new wrapper.
func (v *Value) MultipliedBy(other *Value) (*Value, *RuntimeError) {
	switch {
	case v.Type == NumberType && other.Type == NumberType:
		return newNumber(v.num*other.num, v.isInt && other.isInt).SetContext(v.ctx), nil
	case v.Type == StringType && other.Type == NumberType:
		count := int(other.num)
		if count < 0 {
			count = 0
		}
		return NewString(strings.Repeat(v.str, count)).SetContext(v.ctx), nil
	case v.Type == ListType && other.Type == ListType:
		nl := v.Copy()
		nl.list.elements = append(nl.list.elements, other.list.elements...)
		return nl, nil
	default:
		return nil, v.illegalOp(other)
	}
}

// DividedBy implements /: numeric division (always a float), or fetching
// a list element by index.
func (v *Value) DividedBy(other *Value) (*Value, *RuntimeError) {
	switch {
	case v.Type == NumberType && other.Type == NumberType:
		if other.num == 0 {
			return nil, NewRuntimeError(other.span.Start, other.span.End,
				source.MsgDivisionByZero, v.ctx)
		}
		return NewFloat(v.num / other.num).SetContext(v.ctx), nil
	case v.Type == ListType && other.Type == NumberType:
		n := len(v.list.elements)
		index := int(other.num)
		if index < 0 {
			index += n
		}
		if index < 0 || index >= n {
			return nil, NewRuntimeError(other.span.Start, other.span.End,
				source.MsgFetchIndexError, v.ctx)
		}
		return v.list.elements[index], nil
	default:
		return nil, v.illegalOp(other)
	}
}

// ModulusedBy implements %: the remainder takes the divisor's sign.
func (v *Value) ModulusedBy(other *Value) (*Value, *RuntimeError) {
	if v.Type != NumberType || other.Type != NumberType {
		return nil, v.illegalOp(other)
	}
	if other.num == 0 {
		return nil, NewRuntimeError(other.span.Start, other.span.End,
			source.MsgModulusByZero, v.ctx)
	}
	r := math.Mod(v.num, other.num)
	if r != 0 && (r < 0) != (other.num < 0) {
		r += other.num
	}
	return newNumber(r, v.isInt && other.isInt).SetContext(v.ctx), nil
}

// PoweredBy implements ^. An integer base raised to a negative integer
// exponent is a float.
func (v *Value) PoweredBy(other *Value) (*Value, *RuntimeError) {
	if v.Type != NumberType || other.Type != NumberType {
		return nil, v.illegalOp(other)
	}
	isInt := v.isInt && other.isInt && other.num >= 0
	return newNumber(math.Pow(v.num, other.num), isInt).SetContext(v.ctx), nil
}

func (v *Value) compare(other *Value, holds bool) (*Value, *RuntimeError) {
	if v.Type != NumberType || other.Type != NumberType {
		return nil, v.illegalOp(other)
	}
	if holds {
		return NewInt(1).SetContext(v.ctx), nil
	}
	return NewInt(0).SetContext(v.ctx), nil
}

// ComparisonEq implements ==.
func (v *Value) ComparisonEq(other *Value) (*Value, *RuntimeError) {
	return v.compare(other, v.num == other.num)
}

// ComparisonNe implements !=.
func (v *Value) ComparisonNe(other *Value) (*Value, *RuntimeError) {
	return v.compare(other, v.num != other.num)
}

// ComparisonLt implements <.
func (v *Value) ComparisonLt(other *Value) (*Value, *RuntimeError) {
	return v.compare(other, v.num < other.num)
}

// ComparisonGt implements >.
func (v *Value) ComparisonGt(other *Value) (*Value, *RuntimeError) {
	return v.compare(other, v.num > other.num)
}

// ComparisonLte implements <=.
func (v *Value) ComparisonLte(other *Value) (*Value, *RuntimeError) {
	return v.compare(other, v.num <= other.num)
}

// ComparisonGte implements >=.
func (v *Value) ComparisonGte(other *Value) (*Value, *RuntimeError) {
	return v.compare(other, v.num >= other.num)
}

// AndedBy implements AND: the left operand if it is zero, else the
// right, truncated to an integer.
func (v *Value) AndedBy(other *Value) (*Value, *RuntimeError) {
	if v.Type != NumberType || other.Type != NumberType {
		return nil, v.illegalOp(other)
	}
	picked := other.num
	if v.num == 0 {
		picked = v.num
	}
	return NewInt(int(picked)).SetContext(v.ctx), nil
}

// OredBy implements OR: the left operand if it is non-zero, else the
// right, truncated to an integer.
func (v *Value) OredBy(other *Value) (*Value, *RuntimeError) {
	if v.Type != NumberType || other.Type != NumberType {
		return nil, v.illegalOp(other)
	}
	picked := v.num
	if v.num == 0 {
		picked = other.num
	}
	return NewInt(int(picked)).SetContext(v.ctx), nil
}

// Notted implements NOT, yielding 1 for zero and 0 otherwise.
func (v *Value) Notted() (*Value, *RuntimeError) {
	if v.Type != NumberType {
		return nil, v.illegalOp(nil)
	}
	if v.num == 0 {
		return NewInt(1).SetContext(v.ctx), nil
	}
	return NewInt(0).SetContext(v.ctx), nil
}

// String renders the value the way PRINT shows it.
func (v *Value) String() string {
	switch v.Type {
	case NumberType:
		return formatNumber(v.num, v.isInt)
	case StringType:
		return v.str
	case ListType:
		parts := make([]string, len(v.list.elements))
		for i, e := range v.list.elements {
			parts[i] = e.String()
		}
		return strings.Join(parts, ", ")
	case FunctionType:
		return fmt.Sprintf("<function %s>", v.fn.name)
	case BuiltinType:
		return fmt.Sprintf("<built-in function %s>", v.builtin.name)
	default:
		return ""
	}
}

// Repr renders the value the way the REPL echoes it: strings quoted,
// lists bracketed.
func (v *Value) Repr() string {
	switch v.Type {
	case StringType:
		return fmt.Sprintf("%q", v.str)
	case ListType:
		parts := make([]string, len(v.list.elements))
		for i, e := range v.list.elements {
			parts[i] = e.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v.String()
	}
}

// formatNumber prints integers without a fractional part and floats with
// one even when it is zero.
func formatNumber(num float64, isInt bool) string {
	if isInt {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
	if math.IsInf(num, 0) || math.IsNaN(num) {
		return strconv.FormatFloat(num, 'g', -1, 64)
	}
	s := strconv.FormatFloat(num, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
