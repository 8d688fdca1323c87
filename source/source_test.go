package source

import (
	"strings"
	"testing"
)

func TestPositionAdvance(t *testing.T) {
	pos := Position{Index: -1, Line: 0, Col: -1, Filename: "<test>", Text: "a\nb"}

	pos = pos.Advance(0)
	if pos.Index != 0 || pos.Line != 0 || pos.Col != 0 {
		t.Fatalf("initial advance: got index=%d line=%d col=%d", pos.Index, pos.Line, pos.Col)
	}

	pos = pos.Advance('a')
	if pos.Index != 1 || pos.Line != 0 || pos.Col != 1 {
		t.Fatalf("after 'a': got index=%d line=%d col=%d", pos.Index, pos.Line, pos.Col)
	}

	pos = pos.Advance('\n')
	if pos.Index != 2 || pos.Line != 1 || pos.Col != 0 {
		t.Fatalf("after newline: got index=%d line=%d col=%d", pos.Index, pos.Line, pos.Col)
	}
}

func TestPositionAdvanceIsValueSemantic(t *testing.T) {
	pos := Position{Index: 0, Line: 0, Col: 0}
	_ = pos.Advance('x')
	if pos.Index != 0 {
		t.Fatalf("Advance mutated the receiver: index=%d", pos.Index)
	}
}

func TestExcerptSingleLine(t *testing.T) {
	text := "1 / 0"
	start := Position{Index: 4, Line: 0, Col: 4, Text: text}
	end := Position{Index: 5, Line: 0, Col: 5, Text: text}

	got := Excerpt(text, NewSpan(start, end))
	want := "1 / 0\n    ^"
	if got != want {
		t.Fatalf("excerpt mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestExcerptPicksSpanLine(t *testing.T) {
	text := "VAR x = 1\n1 / 0"
	start := Position{Index: 14, Line: 1, Col: 4, Text: text}
	end := Position{Index: 15, Line: 1, Col: 5, Text: text}

	got := Excerpt(text, NewSpan(start, end))
	if !strings.HasPrefix(got, "1 / 0\n") {
		t.Fatalf("expected excerpt of second line, got %q", got)
	}
	if !strings.Contains(got, "^") {
		t.Fatalf("expected caret in excerpt, got %q", got)
	}
}

func TestExcerptZeroWidthSpanStillPointsSomewhere(t *testing.T) {
	text := "x"
	pos := Position{Index: 0, Line: 0, Col: 0, Text: text}

	got := Excerpt(text, NewSpan(pos, pos))
	if !strings.Contains(got, "^") {
		t.Fatalf("expected at least one caret, got %q", got)
	}
}

func TestEscapeChar(t *testing.T) {
	cases := []struct {
		in, want rune
	}{
		{'n', '\n'},
		{'t', '\t'},
		{'"', '"'},
		{'\\', '\\'},
		{'q', 'q'},
	}
	for _, tc := range cases {
		if got := EscapeChar(tc.in); got != tc.want {
			t.Errorf("EscapeChar(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCharClasses(t *testing.T) {
	if !IsLetter('a') || !IsLetter('Z') || IsLetter('_') || IsLetter('5') {
		t.Error("IsLetter misclassifies")
	}
	if !IsIdentChar('_') || !IsIdentChar('5') || IsIdentChar('-') {
		t.Error("IsIdentChar misclassifies")
	}
	if !IsHexDigit('a') || !IsHexDigit('F') || !IsHexDigit('0') || IsHexDigit('g') {
		t.Error("IsHexDigit misclassifies")
	}
}

func TestLexErrorRendering(t *testing.T) {
	text := "$"
	start := Position{Index: 0, Line: 0, Col: 0, Filename: "<test>", Text: text}
	end := Position{Index: 1, Line: 0, Col: 1, Filename: "<test>", Text: text}

	err := NewLexError(IllegalChar, start, end, "'$'")
	msg := err.Error()

	if !strings.HasPrefix(msg, "Illegal Character: '$'") {
		t.Fatalf("unexpected header: %q", msg)
	}
	if !strings.Contains(msg, "File <test>, line 1") {
		t.Fatalf("missing location: %q", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("missing caret excerpt: %q", msg)
	}
}

func TestSyntaxErrorRendering(t *testing.T) {
	text := "VAR ="
	start := Position{Index: 4, Line: 0, Col: 4, Filename: "<test>", Text: text}
	end := Position{Index: 5, Line: 0, Col: 5, Filename: "<test>", Text: text}

	err := NewSyntaxError(start, end, MsgIdentifierExpected)
	msg := err.Error()

	if !strings.HasPrefix(msg, "Invalid Syntax: "+MsgIdentifierExpected) {
		t.Fatalf("unexpected header: %q", msg)
	}
}
