package dsl

import (
	"strings"

	"github.com/depictlang/depict/pkg/depicterrors"
)

const tabWidth = 8

// rawLine is one logical line after comment stripping and tab expansion,
// with enough position bookkeeping to build spans and diagnose indentation.
type rawLine struct {
	indent  int    // column of the first non-blank character, tabs expanded to tabWidth
	pipes   int    // count of leading '|' hierarchy markers after the indent
	content string // statement text after indent/pipes, comment already stripped
	line    int    // 1-indexed source line number
	col     int    // 1-indexed column where content begins
	offset  int    // byte offset into source where content begins
}

// scanLines splits source into logical lines, stripping `%`-comments and
// escaped-newline continuations (a trailing '\' joins the next
// physical line into the current logical line, per spec.md §4.1's "a
// logical line runs until an unescaped newline").
func scanLines(source string) []rawLine {
	var out []rawLine

	physical := strings.Split(source, "\n")
	lineNum := 0
	offset := 0

	for i := 0; i < len(physical); i++ {
		lineNum++
		text := physical[i]
		startOffset := offset
		offset += len(text) + 1 // +1 for the newline consumed by Split

		// Join escaped-newline continuations.
		for strings.HasSuffix(text, `\`) && i+1 < len(physical) {
			text = text[:len(text)-1] + " " + physical[i+1]
			i++
			lineNum++
			offset += len(physical[i]) + 1
		}

		text = stripComment(text)
		if strings.TrimSpace(text) == "" {
			continue
		}

		indent, pipes, rest, restCol := splitIndent(text)
		out = append(out, rawLine{
			indent:  indent,
			pipes:   pipes,
			content: rest,
			line:    lineNum,
			col:     restCol,
			offset:  startOffset + restCol - 1,
		})
	}

	return out
}

// stripComment removes a `%`-introduced comment running to end of line.
func stripComment(text string) string {
	if i := strings.IndexByte(text, '%'); i >= 0 {
		return text[:i]
	}
	return text
}

// splitIndent measures leading whitespace (tabs expanded to tabWidth
// columns) and any leading `|` hierarchy markers, returning the indent
// column, the pipe count, the remaining content, and the 1-indexed column
// at which the content begins.
func splitIndent(text string) (indent, pipes int, rest string, col int) {
	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		if text[i] == '\t' {
			indent += tabWidth - (indent % tabWidth)
		} else {
			indent++
		}
		i++
	}

	for i < len(text) && text[i] == '|' {
		pipes++
		i++
		for i < len(text) && text[i] == ' ' {
			i++
		}
	}

	return indent, pipes, strings.TrimRight(text[i:], " \t\r"), i + 1
}

// span builds a depicterrors.Span covering length bytes starting at the
// rawLine's content position, offset by extra columns/bytes within the
// content (used to point at a specific token within a statement).
func (rl rawLine) span(colOffset, byteOffset, length int) depicterrors.Span {
	return depicterrors.Span{
		Start: rl.offset + byteOffset,
		End:   rl.offset + byteOffset + length,
		Line:  rl.line,
		Col:   rl.col + colOffset,
	}
}
