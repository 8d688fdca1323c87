package source

// Character classes used by the lexer.

// IsDigit reports whether ch is a decimal digit.
func IsDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// IsLetter reports whether ch may start an identifier.
func IsLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// IsIdentChar reports whether ch may continue an identifier.
func IsIdentChar(ch rune) bool {
	return IsLetter(ch) || IsDigit(ch) || ch == '_'
}

// IsHexDigit reports whether ch is a hexadecimal digit.
func IsHexDigit(ch rune) bool {
	return IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// EscapeChar maps the character following a backslash in a string literal
// to its replacement. Unknown escapes stand for themselves.
func EscapeChar(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return ch
	}
}
