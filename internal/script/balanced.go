package script

import "strings"

// Span is a half-open byte range [Start, End) in a text
type Span struct {
	Start int
	End   int
}

// Text returns the part of s covered by the span
func (sp Span) Text(s string) string {
	return s[sp.Start:sp.End]
}

// Contains reports whether other lies completely inside sp
func (sp Span) Contains(other Span) bool {
	return other.Start >= sp.Start && other.End <= sp.End
}

// scanCode walks text from start and calls visit for every byte that is
// code: outside "...", '...' and `...` literals and outside // and /* */
// comments. A character preceded by an unescaped backslash is never
// visited. The walk stops when visit returns false.
func scanCode(text string, start int, visit func(i int, ch byte) bool) {
	var quote byte
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}

		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}

		if ch == '/' && i+1 < len(text) {
			switch text[i+1] {
			case '/':
				nl := strings.IndexByte(text[i:], '\n')
				if nl < 0 {
					return
				}
				i += nl
				continue
			case '*':
				end := strings.Index(text[i+2:], "*/")
				if end < 0 {
					return
				}
				i += end + 3
				continue
			}
		}

		switch ch {
		case '"', '\'', '`':
			quote = ch
			continue
		}

		if !visit(i, ch) {
			return
		}
	}
}

// Balanced finds the block that opens at the first '{' at or after start and
// returns the span from start through the matching '}' inclusive.
//
// Braces inside string literals and comments are ignored. The scan is a
// single forward pass; if the text ends before the depth returns to zero the
// block is reported as not found.
func Balanced(text string, start int) (Span, bool) {
	if start < 0 || start >= len(text) {
		return Span{}, false
	}

	depth := 0
	var (
		span  Span
		found bool
	)

	scanCode(text, start, func(i int, ch byte) bool {
		switch ch {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				// Closing brace before any opening one; not our block.
				return false
			}
			depth--
			if depth == 0 {
				span, found = Span{Start: start, End: i + 1}, true
				return false
			}
		}
		return true
	})

	return span, found
}

// braceDepths returns the brace nesting depth in front of every byte of
// text. Bytes inside string literals and comments get -1.
func braceDepths(text string) []int {
	depths := make([]int, len(text))
	for i := range depths {
		depths[i] = -1
	}

	depth := 0
	scanCode(text, 0, func(i int, ch byte) bool {
		depths[i] = depth
		switch ch {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		return true
	})

	return depths
}
