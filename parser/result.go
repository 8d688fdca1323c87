package parser

// ParseResult threads node-or-error through every recursive parse call
// and counts how many tokens each attempt consumed. The counts implement
// the backtracking rule: an attempt that failed without consuming a
// token may be abandoned and its error discarded, while an attempt that
// failed after consuming tokens keeps its error authoritative.
type ParseResult struct {
	Node Node
	Err  error

	// AdvanceCount is the total number of tokens this attempt consumed,
	// including through registered sub-results.
	AdvanceCount int

	// ToReverseCount is how far the cursor must rewind after an
	// abandoned TryRegister.
	ToReverseCount int

	lastRegistered int
}

// RegisterAdvancement records one directly consumed token.
func (pr *ParseResult) RegisterAdvancement() {
	pr.lastRegistered = 1
	pr.AdvanceCount++
}

// Register absorbs a sub-result, accumulating its token count and
// adopting its error if it has one.
func (pr *ParseResult) Register(res *ParseResult) Node {
	pr.lastRegistered = res.AdvanceCount
	pr.AdvanceCount += res.AdvanceCount
	if res.Err != nil {
		pr.Err = res.Err
	}
	return res.Node
}

// TryRegister absorbs a sub-result only if it succeeded. On failure it
// records how many tokens must be rewound and reports false, leaving
// the sub-result's error unadopted.
func (pr *ParseResult) TryRegister(res *ParseResult) (Node, bool) {
	if res.Err != nil {
		pr.ToReverseCount = res.AdvanceCount
		return nil, false
	}
	return pr.Register(res), true
}

// Success finishes the attempt with a node.
func (pr *ParseResult) Success(node Node) *ParseResult {
	pr.Node = node
	return pr
}

// Failure records err unless a registered sub-result that consumed
// tokens already supplied a deeper error.
func (pr *ParseResult) Failure(err error) *ParseResult {
	if pr.Err == nil || pr.lastRegistered == 0 {
		pr.Err = err
	}
	return pr
}
