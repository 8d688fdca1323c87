package source

import "strings"

// Excerpt renders the source line(s) covered by span with a run of carets
// underneath the offending region.
func Excerpt(text string, span Span) string {
	var b strings.Builder

	idxStart := strings.LastIndexByte(text[:clamp(span.Start.Index, 0, len(text))], '\n') + 1
	idxEnd := strings.IndexByte(text[idxStart:], '\n')
	if idxEnd < 0 {
		idxEnd = len(text)
	} else {
		idxEnd += idxStart
	}

	lineCount := span.End.Line - span.Start.Line + 1
	if lineCount < 1 {
		lineCount = 1
	}
	for i := 0; i < lineCount; i++ {
		line := text[idxStart:idxEnd]

		colStart := 0
		if i == 0 {
			colStart = span.Start.Col
		}
		colEnd := len(line) - 1
		if i == lineCount-1 {
			colEnd = span.End.Col
		}
		if colEnd < colStart {
			colEnd = colStart
		}
		if colEnd-colStart == 0 {
			colEnd = colStart + 1
		}

		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", colStart))
		b.WriteString(strings.Repeat("^", colEnd-colStart))

		if idxEnd >= len(text) {
			break
		}
		idxStart = idxEnd + 1
		idxEnd = strings.IndexByte(text[idxStart:], '\n')
		if idxEnd < 0 {
			idxEnd = len(text)
		} else {
			idxEnd += idxStart
		}
	}

	return strings.ReplaceAll(b.String(), "\t", "")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
