package parser

import "github.com/vkuzmin/basil/source"

// TokenType enumerates lexical categories recognised by the Basil lexer.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNewline

	TokenInt
	TokenFloat
	TokenString
	TokenIdentifier
	TokenKeyword

	// Operators and punctuation
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenCaret     // ^
	TokenAssign    // =
	TokenEqEq      // ==
	TokenNotEq     // !=
	TokenLess      // <
	TokenGreater   // >
	TokenLessEq    // <=
	TokenGreaterEq // >=
	TokenComma     // ,
	TokenArrow     // ->
	TokenLParen    // (
	TokenRParen    // )
	TokenLBracket  // [
	TokenRBracket  // ]
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "newline"
	case TokenInt:
		return "int"
	case TokenFloat:
		return "float"
	case TokenString:
		return "string"
	case TokenIdentifier:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenCaret:
		return "^"
	case TokenAssign:
		return "="
	case TokenEqEq:
		return "=="
	case TokenNotEq:
		return "!="
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenLessEq:
		return "<="
	case TokenGreaterEq:
		return ">="
	case TokenComma:
		return ","
	case TokenArrow:
		return "->"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	default:
		return "unknown"
	}
}

// Keywords of the language. Identifiers are matched against this set.
var keywords = map[string]bool{
	"VAR":      true,
	"AND":      true,
	"OR":       true,
	"NOT":      true,
	"IF":       true,
	"ELIF":     true,
	"ELSE":     true,
	"FOR":      true,
	"TO":       true,
	"STEP":     true,
	"WHILE":    true,
	"FUN":      true,
	"THEN":     true,
	"END":      true,
	"RETURN":   true,
	"CONTINUE": true,
	"BREAK":    true,
	"IMPORT":   true,
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool {
	return keywords[name]
}

// Token is a single lexical unit produced by the lexer. Value holds the
// identifier, keyword spelling or decoded string literal; Num holds the
// parsed magnitude for number tokens.
type Token struct {
	Type  TokenType
	Value string
	Num   float64
	Span  source.Span
}

// Matches reports whether the token has the given type and spelling.
// Used to test for specific keywords.
func (t Token) Matches(tt TokenType, value string) bool {
	return t.Type == tt && t.Value == value
}

func (t Token) String() string {
	if t.Value != "" {
		return t.Type.String() + ":" + t.Value
	}
	return t.Type.String()
}
