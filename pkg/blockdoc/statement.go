package blockdoc

import "strings"

// Statement locates one top-level statement inside a run's text.
type Statement struct {
	// Start is the offset of the statement's first byte.
	Start int
	// End is the offset just past the statement's last code byte, excluding
	// trailing whitespace and comments.
	End int
}

// Statements splits text into statements. A statement ends at a newline or
// `;` that is not nested in parentheses, brackets or braces. Comments are
// skipped and quoted strings are treated as single tokens.
func Statements(text string) []Statement {
	var out []Statement

	depth := 0
	start := -1
	end := -1

	closeStmt := func() {
		if start >= 0 {
			out = append(out, Statement{Start: start, End: end})
		}

		start = -1
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c == '/' && strings.HasPrefix(text[i:], "//"):
			j := strings.IndexByte(text[i:], '\n')
			if j < 0 {
				i = len(text)
			} else {
				i += j - 1
			}

			continue

		case c == '/' && strings.HasPrefix(text[i:], "/*"):
			j := strings.Index(text[i+2:], "*/")
			if j < 0 {
				i = len(text)
			} else {
				i += j + 3
			}

			continue

		case c == '\n':
			if depth == 0 {
				closeStmt()
			}

			continue

		case c == ';' && depth == 0:
			closeStmt()

			continue

		case c == ' ' || c == '\t' || c == '\r':
			continue

		case c == '"' || c == '\'':
			if start < 0 {
				start = i
			}

			i = skipQuoted(text, i)
			end = i + 1

			continue

		case c == '(' || c == '[' || c == '{':
			depth++

		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		}

		if start < 0 {
			start = i
		}

		end = i + 1
	}

	closeStmt()

	return out
}

// skipQuoted returns the offset of the quote closing the literal opened at i.
// Unterminated single-line literals stop before the end of the line.
func skipQuoted(text string, i int) int {
	if strings.HasPrefix(text[i:], `"""`) {
		j := strings.Index(text[i+3:], `"""`)
		if j < 0 {
			return len(text) - 1
		}

		return i + 3 + j + 2
	}

	q := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case q:
			return j
		case '\n':
			return j - 1
		}
	}

	return len(text) - 1
}
