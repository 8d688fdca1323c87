package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vkuzmin/basil/source"
)

// lexer walks the source text one byte at a time with a single character
// of lookahead. Multi-byte UTF-8 sequences inside string literals are
// carried through byte by byte.
type lexer struct {
	text string
	pos  source.Position
	ch   byte
	eof  bool
}

func newLexer(filename, text string) *lexer {
	lx := &lexer{
		text: text,
		pos:  source.Position{Index: -1, Line: 0, Col: -1, Filename: filename, Text: text},
	}
	lx.advance()
	return lx
}

func (lx *lexer) advance() {
	lx.pos = lx.pos.Advance(rune(lx.ch))
	if lx.pos.Index < len(lx.text) {
		lx.ch = lx.text[lx.pos.Index]
		lx.eof = false
	} else {
		lx.ch = 0
		lx.eof = true
	}
}

func (lx *lexer) peek() (byte, bool) {
	if lx.pos.Index+1 < len(lx.text) {
		return lx.text[lx.pos.Index+1], true
	}
	return 0, false
}

// Tokenize converts source text into a token sequence ending with EOF,
// or returns the first lexical error.
func Tokenize(filename, text string) ([]Token, error) {
	lx := newLexer(filename, text)
	var tokens []Token
	for !lx.eof {
		switch {
		case lx.ch == ' ' || lx.ch == '\t' || lx.ch == '\r':
			lx.advance()
		case lx.ch == '#':
			if err := lx.skipComment(); err != nil {
				return nil, err
			}
		case lx.ch == ';' || lx.ch == '\n':
			tokens = append(tokens, lx.single(TokenNewline))
		case source.IsDigit(rune(lx.ch)):
			tok, err := lx.number()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case source.IsLetter(rune(lx.ch)):
			tokens = append(tokens, lx.identifier())
		case lx.ch == '"':
			tok, err := lx.str()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case lx.ch == '+':
			tokens = append(tokens, lx.single(TokenPlus))
		case lx.ch == '-':
			tokens = append(tokens, lx.pair('>', TokenMinus, TokenArrow))
		case lx.ch == '*':
			tokens = append(tokens, lx.single(TokenStar))
		case lx.ch == '/':
			tokens = append(tokens, lx.single(TokenSlash))
		case lx.ch == '%':
			tokens = append(tokens, lx.single(TokenPercent))
		case lx.ch == '^':
			tokens = append(tokens, lx.single(TokenCaret))
		case lx.ch == '(':
			tokens = append(tokens, lx.single(TokenLParen))
		case lx.ch == ')':
			tokens = append(tokens, lx.single(TokenRParen))
		case lx.ch == '[':
			tokens = append(tokens, lx.single(TokenLBracket))
		case lx.ch == ']':
			tokens = append(tokens, lx.single(TokenRBracket))
		case lx.ch == ',':
			tokens = append(tokens, lx.single(TokenComma))
		case lx.ch == '=':
			tokens = append(tokens, lx.pair('=', TokenAssign, TokenEqEq))
		case lx.ch == '<':
			tokens = append(tokens, lx.pair('=', TokenLess, TokenLessEq))
		case lx.ch == '>':
			tokens = append(tokens, lx.pair('=', TokenGreater, TokenGreaterEq))
		case lx.ch == '!':
			start := lx.pos
			lx.advance()
			if lx.eof || lx.ch != '=' {
				return nil, source.NewLexError(source.ExpectedChar, start, lx.pos,
					"'=' (after '!')")
			}
			lx.advance()
			tokens = append(tokens, Token{Type: TokenNotEq, Span: source.NewSpan(start, lx.pos)})
		default:
			start := lx.pos
			ch := lx.ch
			lx.advance()
			return nil, source.NewLexError(source.IllegalChar, start, lx.pos,
				fmt.Sprintf("'%c'", ch))
		}
	}
	tokens = append(tokens, Token{Type: TokenEOF, Span: source.NewSpan(lx.pos, lx.pos)})
	return tokens, nil
}

// single emits a one-character token.
func (lx *lexer) single(tt TokenType) Token {
	start := lx.pos
	lx.advance()
	return Token{Type: tt, Span: source.NewSpan(start, lx.pos)}
}

// pair emits a two-character token when the next character matches,
// else the one-character token.
func (lx *lexer) pair(next byte, alone, joined TokenType) Token {
	start := lx.pos
	lx.advance()
	tt := alone
	if !lx.eof && lx.ch == next {
		lx.advance()
		tt = joined
	}
	return Token{Type: tt, Span: source.NewSpan(start, lx.pos)}
}

// skipComment consumes a '#' line comment or a '#* ... *#' block comment.
// The newline ending a line comment is left for the main loop so it still
// becomes a NEWLINE token.
func (lx *lexer) skipComment() error {
	start := lx.pos
	lx.advance()
	if !lx.eof && lx.ch == '*' {
		lx.advance()
		afterOpen := lx.pos
		for {
			if lx.eof {
				return source.NewLexError(source.UnterminatedComment, start, afterOpen,
					source.MsgUnterminatedComment)
			}
			if lx.ch == '*' {
				if next, ok := lx.peek(); ok && next == '#' {
					lx.advance()
					lx.advance()
					return nil
				}
			}
			lx.advance()
		}
	}
	for !lx.eof && lx.ch != '\n' {
		lx.advance()
	}
	return nil
}

// number scans digits with at most one '.' and an optional exponent
// suffix. Range limits are checked against the literal's own decimal
// exponent: magnitudes reaching 1e308 fail with an overflow error and
// magnitudes at or below 1e-308 with an underflow error, before the
// token is emitted.
func (lx *lexer) number() (Token, error) {
	start := lx.pos
	var sb strings.Builder
	dots := 0
	for !lx.eof && (source.IsDigit(rune(lx.ch)) || lx.ch == '.') {
		if lx.ch == '.' {
			if dots == 1 {
				break
			}
			dots++
		}
		sb.WriteByte(lx.ch)
		lx.advance()
	}

	hasExp := false
	if !lx.eof && (lx.ch == 'e' || lx.ch == 'E') {
		if rest, ok := lx.peekExponent(); ok {
			hasExp = true
			sb.WriteByte(lx.ch)
			lx.advance()
			for i := 0; i < rest; i++ {
				sb.WriteByte(lx.ch)
				lx.advance()
			}
		}
	}

	literal := sb.String()
	span := source.NewSpan(start, lx.pos)

	exp, powerOfTen, zero := literalExponent(literal)
	if !zero {
		// Magnitude >= 1e308 overflows; magnitude <= 1e-308 underflows.
		if exp >= 308 {
			details := source.MsgNumberOverflow
			if hasExp {
				details = source.MsgExponentOverflow
			}
			return Token{}, source.NewLexError(source.NumberOverflow, start, lx.pos, details)
		}
		if exp < -308 || exp == -308 && powerOfTen {
			return Token{}, source.NewLexError(source.NumberUnderflow, start, lx.pos,
				source.MsgExponentUnderflow)
		}
	}

	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Token{}, source.NewLexError(source.NumberConversion, start, lx.pos,
			source.MsgNumberConversion)
	}

	tt := TokenInt
	if dots > 0 || hasExp {
		tt = TokenFloat
	}
	return Token{Type: tt, Value: literal, Num: v, Span: span}, nil
}

// peekExponent reports whether the characters after the current 'e'/'E'
// form a valid exponent, and how many of them to consume. A bare 'e'
// is left alone so it can start an identifier.
func (lx *lexer) peekExponent() (int, bool) {
	i := lx.pos.Index + 1
	n := 0
	if i < len(lx.text) && (lx.text[i] == '+' || lx.text[i] == '-') {
		i++
		n++
	}
	if i >= len(lx.text) || !source.IsDigit(rune(lx.text[i])) {
		return 0, false
	}
	for i < len(lx.text) && source.IsDigit(rune(lx.text[i])) {
		i++
		n++
	}
	return n, true
}

// literalExponent computes a number literal's normalized base-10
// exponent from its text, so the range checks do not depend on float64
// rounding, which is unreliable next to the subnormal boundary.
// powerOfTen reports a mantissa of exactly one leading 1 (the literal
// names 10^exp precisely), and zero reports an all-zero mantissa.
func literalExponent(literal string) (exp int, powerOfTen, zero bool) {
	mant := literal
	suffix := 0
	if i := strings.IndexAny(literal, "eE"); i >= 0 {
		mant = literal[:i]
		s := literal[i+1:]
		n, err := strconv.Atoi(s)
		if err != nil {
			// An exponent beyond int range is far outside either bound.
			n = 1 << 20
			if strings.HasPrefix(s, "-") {
				n = -n
			}
		}
		suffix = n
	}

	intDigits := len(mant)
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		intDigits = i
		mant = mant[:i] + mant[i+1:]
	}

	first := strings.IndexFunc(mant, func(r rune) bool { return r != '0' })
	if first < 0 {
		return 0, false, true
	}

	powerOfTen = mant[first] == '1' && strings.Trim(mant[first+1:], "0") == ""
	return intDigits - 1 - first + suffix, powerOfTen, false
}

// identifier scans a name and classifies it as keyword or identifier.
func (lx *lexer) identifier() Token {
	start := lx.pos
	var sb strings.Builder
	for !lx.eof && source.IsIdentChar(rune(lx.ch)) {
		sb.WriteByte(lx.ch)
		lx.advance()
	}
	name := sb.String()
	tt := TokenIdentifier
	if IsKeyword(name) {
		tt = TokenKeyword
	}
	return Token{Type: tt, Value: name, Span: source.NewSpan(start, lx.pos)}
}

// str scans a double-quoted string literal, decoding '\n', '\t' and
// '\xHH' escapes. Unknown escapes stand for themselves. An unterminated
// literal is reported at the opening quote.
func (lx *lexer) str() (Token, error) {
	start := lx.pos
	lx.advance()
	var sb strings.Builder
	for {
		if lx.eof {
			return Token{}, source.NewLexError(source.UnterminatedString,
				start, start.Advance('"'), source.MsgUnterminatedString)
		}
		switch {
		case lx.ch == '"':
			lx.advance()
			return Token{Type: TokenString, Value: sb.String(),
				Span: source.NewSpan(start, lx.pos)}, nil
		case lx.ch == '\\':
			escStart := lx.pos
			lx.advance()
			if lx.eof {
				return Token{}, source.NewLexError(source.UnterminatedString,
					start, start.Advance('"'), source.MsgUnterminatedString)
			}
			if lx.ch == 'x' {
				lx.advance()
				b, err := lx.hexPair(escStart)
				if err != nil {
					return Token{}, err
				}
				// The pair names a code point, so values past 0x7F must
				// become a UTF-8 sequence, not a raw byte.
				sb.WriteRune(rune(b))
			} else {
				sb.WriteRune(source.EscapeChar(rune(lx.ch)))
				lx.advance()
			}
		default:
			sb.WriteByte(lx.ch)
			lx.advance()
		}
	}
}

// hexPair consumes exactly two hexadecimal digits after '\x'.
func (lx *lexer) hexPair(escStart source.Position) (byte, error) {
	var digits [2]byte
	for i := range digits {
		if lx.eof || !source.IsHexDigit(rune(lx.ch)) {
			return 0, source.NewLexError(source.ExpectedChar, escStart, lx.pos,
				source.MsgIllegalHexChar)
		}
		digits[i] = lx.ch
		lx.advance()
	}
	v, err := strconv.ParseUint(string(digits[:]), 16, 8)
	if err != nil {
		return 0, source.NewLexError(source.ExpectedChar, escStart, lx.pos,
			source.MsgIllegalHexChar)
	}
	return byte(v), nil
}
