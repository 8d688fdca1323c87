package source

// Position is a cursor into a script's text. Line and Col are zero-based;
// user-facing output prints Line+1.
type Position struct {
	Index    int
	Line     int
	Col      int
	Filename string
	Text     string
}

// Advance returns the position one character past p. The character just
// consumed decides whether a new line starts.
func (p Position) Advance(ch rune) Position {
	p.Index++
	p.Col++
	if ch == '\n' {
		p.Line++
		p.Col = 0
	}
	return p
}

// Span is the half-open source region covered by a token or AST node.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span from two positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}
