package dsl

import "github.com/depictlang/depict/pkg/depicterrors"

// indentTracker converts a stream of (indent, pipe) pairs into (level,
// parent) pairs, implementing spec.md §4.1's "a statement indented more
// than the previous non-blank statement is a child" rule.
//
// Dedents must land exactly on a previously established indent width — a
// dedent that lands strictly between two known widths is ambiguous and
// reported as MismatchedIndent, the same rule Python's tokenizer applies.
type indentTracker struct {
	widths     []int // indent width at each currently open level
	stmtAtWidth []int // statement index last seen at each level, parallel to widths
	rootWidth  int
	haveRoot   bool
}

// effectiveIndent folds the `|` hierarchy marker into the column-based
// indent: each pipe counts as one additional tab stop of nesting.
func effectiveIndent(indent, pipes int) int {
	return indent + pipes*tabWidth
}

// push records stmtIdx at effInd, returning its (level, parent) and an
// error if the indent is ambiguous relative to previously seen widths.
func (t *indentTracker) push(effInd, stmtIdx int) (level, parent int, err *depicterrors.ParseError) {
	if !t.haveRoot {
		t.rootWidth = effInd
		t.haveRoot = true
	}

	popped := 0
	for len(t.widths) > 0 && effInd < t.widths[len(t.widths)-1] {
		t.widths = t.widths[:len(t.widths)-1]
		t.stmtAtWidth = t.stmtAtWidth[:len(t.stmtAtWidth)-1]
		popped++
	}

	switch {
	case popped > 0 && len(t.widths) == 0 && effInd != t.rootWidth:
		return 0, 0, &depicterrors.ParseError{Kind: depicterrors.MismatchedIndent, Detail: "dedent does not match any enclosing indentation level"}
	case popped > 0 && len(t.widths) > 0 && effInd != t.widths[len(t.widths)-1]:
		return 0, 0, &depicterrors.ParseError{Kind: depicterrors.MismatchedIndent, Detail: "dedent does not match any enclosing indentation level"}
	case len(t.widths) > 0 && effInd == t.widths[len(t.widths)-1]:
		level = len(t.widths) - 1
		if level > 0 {
			parent = t.stmtAtWidth[level-1]
		} else {
			parent = -1
		}
		t.stmtAtWidth[level] = stmtIdx
		return level, parent, nil
	default:
		// A genuine new, deeper level (or the very first statement).
		level = len(t.widths)
		if level > 0 {
			parent = t.stmtAtWidth[level-1]
		} else {
			parent = -1
		}
		t.widths = append(t.widths, effInd)
		t.stmtAtWidth = append(t.stmtAtWidth, stmtIdx)
		return level, parent, nil
	}
}
