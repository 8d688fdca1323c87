package source

// Human-readable diagnostic texts shared by the lexer, parser and
// interpreter. Kept in one place so wording stays consistent.
const (
	MsgNumberOverflow      = "Number too large (magnitude reaches 1e308)"
	MsgExponentOverflow    = "Exponent too large (magnitude reaches 1e308)"
	MsgExponentUnderflow   = "Exponent too small (magnitude below 1e-308)"
	MsgNumberConversion    = "Cannot convert this to a number"
	MsgUnterminatedString  = "Unterminated string, expected closing '\"'"
	MsgIllegalHexChar      = "Expected two hexadecimal digits after '\\x'"
	MsgUnterminatedComment = "Unterminated multiline comment, expected '*#'"

	MsgTokensOutOfPlace = "Token cannot appear here"
	MsgStatementSyntax  = "Expected 'RETURN', 'CONTINUE', 'BREAK', 'IMPORT', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	MsgExprSyntax       = "Expected 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	MsgCompSyntax       = "Expected int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	MsgAtomSyntax       = "Expected int, float, identifier, '+', '-', '(', '[', 'IF', 'FOR', 'WHILE' or 'FUN'"
	MsgArgSyntax        = "Expected ')', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	MsgListElemSyntax   = "Expected ']', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"

	MsgBadReturn   = "'RETURN' can only be used within a function"
	MsgBadContinue = "'CONTINUE' can only be used within a loop"
	MsgBadBreak    = "'BREAK' can only be used within a loop"

	MsgIdentifierExpected    = "Expected an identifier"
	MsgEqualExpected         = "Expected '='"
	MsgStringExpected        = "Expected a string"
	MsgRParenExpected        = "Expected ')'"
	MsgLParenExpected        = "Expected '('"
	MsgCommaRParenExpected   = "Expected ',' or ')'"
	MsgLBracketExpected      = "Expected '['"
	MsgCommaRBracketExpected = "Expected ',' or ']'"
	MsgThenExpected          = "Expected 'THEN'"
	MsgEndExpected           = "Expected 'END'"
	MsgForExpected           = "Expected 'FOR'"
	MsgToExpected            = "Expected 'TO'"
	MsgWhileExpected         = "Expected 'WHILE'"
	MsgFunExpected           = "Expected 'FUN'"
	MsgIdentLParenExpected   = "Expected an identifier or '('"
	MsgIdentRParenExpected   = "Expected an identifier or ')'"
	MsgArrowNewlineExpected  = "Expected '->' or a new line"

	MsgDivisionByZero  = "Division by zero"
	MsgModulusByZero   = "Modulus by zero"
	MsgListIndexError  = "Cannot remove element from list: index is out of range"
	MsgFetchIndexError = "Cannot fetch element from list: index is out of range"

	MsgArg1ListExpected   = "First argument must be a list"
	MsgArg2ListExpected   = "Second argument must be a list"
	MsgArg2NumberExpected = "Second argument must be a number"
	MsgArgListExpected    = "Argument must be a list"
	MsgArgStringExpected  = "Argument must be a string"
)
