// Package script converts a legacy style behavior file into the newer
// template format. It locates custom code in the legacy file, classifies it,
// and splices it into the selected target template.
//
// Everything here is a pure function over in-memory text, so callers may run
// conversions for different styles concurrently.
package script

import "strings"

// Source is an immutable legacy script.
type Source struct {
	Text string
}

// NewSource wraps legacy script text
func NewSource(text string) Source {
	return Source{Text: text}
}

// Empty reports whether the source has no content besides whitespace
func (s Source) Empty() bool {
	return strings.TrimSpace(s.Text) == ""
}

// Lines returns the total number of lines in the source
func (s Source) Lines() int {
	if s.Text == "" {
		return 0
	}
	n := strings.Count(s.Text, "\n")
	if !strings.HasSuffix(s.Text, "\n") {
		n++
	}
	return n
}

// CodeLines counts lines that are neither blank nor comment-only.
// Lines inside a /* ... */ block are comment-only until the line that
// closes the block has code after the closing marker.
func (s Source) CodeLines() int {
	count := 0
	inBlock := false

	for _, line := range strings.Split(s.Text, "\n") {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			end := strings.Index(trimmed, "*/")
			if end < 0 {
				continue
			}
			inBlock = false
			trimmed = strings.TrimSpace(trimmed[end+2:])
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if strings.HasPrefix(trimmed, "/*") {
			end := strings.Index(trimmed[2:], "*/")
			if end < 0 {
				inBlock = true
				continue
			}
			rest := strings.TrimSpace(trimmed[2+end+2:])
			if rest == "" || strings.HasPrefix(rest, "//") {
				continue
			}
		}

		count++
	}

	return count
}
