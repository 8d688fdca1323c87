package source

import "fmt"

// LexErrorKind classifies failures detected while tokenising.
type LexErrorKind int

const (
	IllegalChar LexErrorKind = iota
	ExpectedChar
	UnterminatedString
	UnterminatedComment
	NumberOverflow
	NumberUnderflow
	NumberConversion
)

func (k LexErrorKind) String() string {
	switch k {
	case IllegalChar:
		return "Illegal Character"
	case ExpectedChar:
		return "Expected Character"
	case UnterminatedString:
		return "Unterminated String"
	case UnterminatedComment:
		return "Unterminated Comment"
	case NumberOverflow:
		return "Number Overflow"
	case NumberUnderflow:
		return "Number Underflow"
	case NumberConversion:
		return "Number Conversion Error"
	default:
		return "Lexical Error"
	}
}

// LexError is a fatal tokenisation failure anchored at a source span.
type LexError struct {
	Kind    LexErrorKind
	Span    Span
	Details string
}

func (e *LexError) Error() string {
	return renderHeader(e.Kind.String(), e.Details, e.Span)
}

// NewLexError builds a LexError covering [start, end).
func NewLexError(kind LexErrorKind, start, end Position, details string) *LexError {
	return &LexError{Kind: kind, Span: NewSpan(start, end), Details: details}
}

// SyntaxError is a parse-time failure anchored at a source span.
type SyntaxError struct {
	Span    Span
	Details string
}

func (e *SyntaxError) Error() string {
	return renderHeader("Invalid Syntax", e.Details, e.Span)
}

// NewSyntaxError builds a SyntaxError covering [start, end).
func NewSyntaxError(start, end Position, details string) *SyntaxError {
	return &SyntaxError{Span: NewSpan(start, end), Details: details}
}

// renderHeader formats the shared name/details/location/excerpt block used
// by lexical and syntax errors. Runtime errors prepend a traceback instead.
func renderHeader(name, details string, span Span) string {
	return fmt.Sprintf("%s: %s\n\nFile %s, line %d\n\n%s",
		name, details,
		span.Start.Filename, span.Start.Line+1,
		Excerpt(span.Start.Text, span))
}
