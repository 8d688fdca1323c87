package lang

import (
	"fmt"
	"strings"

	"github.com/vkuzmin/basil/source"
)

// RuntimeError is an evaluation failure. It carries the Context chain
// active when it occurred so its string form can render a traceback.
type RuntimeError struct {
	Span    source.Span
	Details string
	Ctx     *Context
}

// NewRuntimeError builds an error covering [start, end) raised in ctx.
func NewRuntimeError(start, end source.Position, details string, ctx *Context) *RuntimeError {
	return &RuntimeError{Span: source.NewSpan(start, end), Details: details, Ctx: ctx}
}

func (e *RuntimeError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.traceback())
	fmt.Fprintf(&sb, "Runtime Error: %s", e.Details)
	sb.WriteString("\n\n")
	sb.WriteString(source.Excerpt(e.Span.Start.Text, e.Span))
	return sb.String()
}

// traceback walks the Context chain from the innermost frame outward,
// building the frame lines in most-recent-last order.
func (e *RuntimeError) traceback() string {
	result := ""
	pos := &e.Span.Start
	ctx := e.Ctx
	for ctx != nil {
		if pos != nil {
			result = fmt.Sprintf("  File %s, line %d, in %s\n",
				pos.Filename, pos.Line+1, ctx.DisplayName) + result
		}
		pos = ctx.ParentEntryPos
		ctx = ctx.Parent
	}
	return "Traceback (most recent call last):\n" + result
}
