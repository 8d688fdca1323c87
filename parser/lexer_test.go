package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/vkuzmin/basil/source"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize("<test>", src)
	if err != nil {
		t.Fatalf("unexpected lexer error: %v", err)
	}
	return tokens
}

func lexError(t *testing.T, src string) *source.LexError {
	t.Helper()
	_, err := Tokenize("<test>", src)
	if err == nil {
		t.Fatalf("expected lexer error for %q", src)
	}
	var lexErr *source.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *source.LexError, got %T: %v", err, err)
	}
	return lexErr
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	tokens := lexAll(t, "VAR x AND y NOT while FUN f_1 END")
	tokens = tokens[:len(tokens)-1] // drop EOF

	want := []struct {
		typ   TokenType
		value string
	}{
		{TokenKeyword, "VAR"},
		{TokenIdentifier, "x"},
		{TokenKeyword, "AND"},
		{TokenIdentifier, "y"},
		{TokenKeyword, "NOT"},
		{TokenIdentifier, "while"}, // keywords are case-sensitive
		{TokenKeyword, "FUN"},
		{TokenIdentifier, "f_1"},
		{TokenKeyword, "END"},
	}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Value != w.value {
			t.Errorf("token %d: got (%v, %q), want (%v, %q)",
				i, tokens[i].Type, tokens[i].Value, w.typ, w.value)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	tokens := lexAll(t, "+ - * / % ^ = == != < > <= >= , -> ( ) [ ]")
	tokens = tokens[:len(tokens)-1]

	want := []TokenType{
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenCaret,
		TokenAssign, TokenEqEq, TokenNotEq, TokenLess, TokenGreater,
		TokenLessEq, TokenGreaterEq, TokenComma, TokenArrow,
		TokenLParen, TokenRParen, TokenLBracket, TokenRBracket,
	}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Errorf("token %d: got %v, want %v", i, tokens[i].Type, w)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		src string
		typ TokenType
		num float64
	}{
		{"0", TokenInt, 0},
		{"42", TokenInt, 42},
		{"3.5", TokenFloat, 3.5},
		{"1e3", TokenFloat, 1000},
		{"1.5e2", TokenFloat, 150},
		{"2E-3", TokenFloat, 0.002},
		{"1e+2", TokenFloat, 100},
	}
	for _, tc := range cases {
		tokens := lexAll(t, tc.src)
		if len(tokens) != 2 {
			t.Fatalf("%q: expected number + EOF, got %d tokens", tc.src, len(tokens))
		}
		tok := tokens[0]
		if tok.Type != tc.typ {
			t.Errorf("%q: got type %v, want %v", tc.src, tok.Type, tc.typ)
		}
		if tok.Num != tc.num {
			t.Errorf("%q: got value %v, want %v", tc.src, tok.Num, tc.num)
		}
	}
}

func TestLexerBareExponentIsIdentifier(t *testing.T) {
	tokens := lexAll(t, "1e")
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != 2 || tokens[0].Type != TokenInt || tokens[1].Type != TokenIdentifier {
		t.Fatalf("expected int then identifier, got %v", tokens)
	}
}

func TestLexerNumberOverflow(t *testing.T) {
	for _, src := range []string{"1e308", "2e400", "1.5e309"} {
		lexErr := lexError(t, src)
		if lexErr.Kind != source.NumberOverflow {
			t.Errorf("%q: got kind %v, want overflow", src, lexErr.Kind)
		}
	}
}

func TestLexerNumberUnderflow(t *testing.T) {
	// 1.0e-308 and 10e-309 both name exactly 1e-308; the check must not
	// rely on the rounded float64, which sits off the decimal boundary.
	for _, src := range []string{"1e-308", "1.0e-308", "10e-309", "1e-400"} {
		lexErr := lexError(t, src)
		if lexErr.Kind != source.NumberUnderflow {
			t.Errorf("%q: got kind %v, want underflow", src, lexErr.Kind)
		}
	}
}

func TestLexerNumberJustInsideRange(t *testing.T) {
	for _, src := range []string{"1e307", "9.9e-308", "2.3e-308"} {
		tokens := lexAll(t, src)
		if tokens[0].Type != TokenFloat {
			t.Errorf("%q: expected float token, got %v", src, tokens[0].Type)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"\x41"`, "A"},
		{`"\x7a"`, "z"},
		{`"\xe9"`, "é"},
		{`"\xC9"`, "É"},
		{`"say \"hi\""`, `say "hi"`},
		{`"back\\slash"`, `back\slash`},
		{`"\q"`, "q"},
	}
	for _, tc := range cases {
		tokens := lexAll(t, tc.src)
		tok := tokens[0]
		if tok.Type != TokenString {
			t.Fatalf("%q: expected string token, got %v", tc.src, tok.Type)
		}
		if tok.Value != tc.want {
			t.Errorf("%q: got %q, want %q", tc.src, tok.Value, tc.want)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lexErr := lexError(t, `VAR s = "oops`)
	if lexErr.Kind != source.UnterminatedString {
		t.Fatalf("got kind %v, want unterminated string", lexErr.Kind)
	}
	// Anchored at the opening quote.
	if lexErr.Span.Start.Index != 8 {
		t.Fatalf("expected error at index 8, got %d", lexErr.Span.Start.Index)
	}
}

func TestLexerBadHexEscape(t *testing.T) {
	for _, src := range []string{`"\x4"`, `"\xzz"`, `"\x`} {
		lexErr := lexError(t, src)
		if lexErr.Kind != source.ExpectedChar && lexErr.Kind != source.UnterminatedString {
			t.Errorf("%q: got kind %v", src, lexErr.Kind)
		}
	}
}

func TestLexerComments(t *testing.T) {
	tokens := lexAll(t, "1 # the rest is ignored\n2")
	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	want := []TokenType{TokenInt, TokenNewline, TokenInt, TokenEOF}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("got %v, want %v", types, want)
		}
	}
}

func TestLexerBlockComment(t *testing.T) {
	tokens := lexAll(t, "1 #* spans\nlines *# 2")
	if len(tokens) != 3 || tokens[0].Type != TokenInt || tokens[1].Type != TokenInt {
		t.Fatalf("expected two ints + EOF, got %v", tokens)
	}
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	lexErr := lexError(t, "1 #* never closed")
	if lexErr.Kind != source.UnterminatedComment {
		t.Fatalf("got kind %v, want unterminated comment", lexErr.Kind)
	}
	if lexErr.Span.Start.Index != 2 {
		t.Fatalf("expected error anchored at the '#', got index %d", lexErr.Span.Start.Index)
	}
}

func TestLexerNewlineAndSemicolon(t *testing.T) {
	tokens := lexAll(t, "1;2\n3")
	want := []TokenType{TokenInt, TokenNewline, TokenInt, TokenNewline, TokenInt, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Errorf("token %d: got %v, want %v", i, tokens[i].Type, w)
		}
	}
}

func TestLexerIllegalChar(t *testing.T) {
	lexErr := lexError(t, "VAR x = $")
	if lexErr.Kind != source.IllegalChar {
		t.Fatalf("got kind %v, want illegal character", lexErr.Kind)
	}
	if !strings.Contains(lexErr.Details, "$") {
		t.Fatalf("details should name the character: %q", lexErr.Details)
	}
}

func TestLexerBangNeedsEquals(t *testing.T) {
	lexErr := lexError(t, "1 ! 2")
	if lexErr.Kind != source.ExpectedChar {
		t.Fatalf("got kind %v, want expected character", lexErr.Kind)
	}
	if !strings.Contains(lexErr.Details, "'='") {
		t.Fatalf("details should mention '=': %q", lexErr.Details)
	}
}

func TestLexerSpans(t *testing.T) {
	tokens := lexAll(t, "ab + 1")
	ident := tokens[0]
	if ident.Span.Start.Index != 0 || ident.Span.End.Index != 2 {
		t.Errorf("identifier span: got [%d,%d), want [0,2)",
			ident.Span.Start.Index, ident.Span.End.Index)
	}
	plus := tokens[1]
	if plus.Span.Start.Index != 3 || plus.Span.End.Index != 4 {
		t.Errorf("plus span: got [%d,%d), want [3,4)",
			plus.Span.Start.Index, plus.Span.End.Index)
	}
}
